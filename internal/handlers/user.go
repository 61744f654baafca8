package handlers

import (
	"log/slog"
	"net/http"

	"github.com/learnmath/learnmath/internal/models"
	"github.com/learnmath/learnmath/internal/repo"
)

// ==========================
// User Handler
// ==========================
type UserHandler struct {
	Repo *repo.UserRepo
}

// ==========================
// List Users
// ==========================
// GET /users returns every user. The original app exposed this without
// authentication; that behavior is kept, but the projection excludes the
// password hash. Whether the listing should require auth at all is an open
// question (user enumeration).
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.List(r.Context())
	if err != nil {
		slog.Error("list users", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	JSON(w, http.StatusOK, users)
}
