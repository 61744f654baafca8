package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/learnmath/learnmath/internal/metrics"
	"github.com/learnmath/learnmath/internal/middleware"
	"github.com/learnmath/learnmath/internal/repo"
)

// ==========================
// Profile Handler
// ==========================
type ProfileHandler struct {
	UserRepo *repo.UserRepo
}

// ==========================
// Get Profile
// ==========================
// GET /profile -> 200 {username, createdAt, profile}.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		JSONError(w, "missing authorization", http.StatusUnauthorized)
		return
	}

	user, err := h.UserRepo.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "User not found", http.StatusNotFound)
			return
		}
		slog.Error("get profile", "error", err, "user_id", userID)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"username":  user.Username,
		"createdAt": user.CreatedAt,
		"profile":   user.Profile,
	})
}

// ==========================
// Update About
// ==========================
// PUT /profile {about} -> 200 {message}.
func (h *ProfileHandler) UpdateAbout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		JSONError(w, "missing authorization", http.StatusUnauthorized)
		return
	}

	var input struct {
		About string `json:"about"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := h.UserRepo.UpdateAbout(r.Context(), userID, input.About); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "User not found", http.StatusNotFound)
			return
		}
		slog.Error("update about", "error", err, "user_id", userID)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, map[string]string{"message": "Profile updated"})
}

// ==========================
// Update Score
// ==========================
// PUT /update-score {correct} -> 200 {message, updated:true}.
// The "correct" field must be a JSON boolean; anything else is a 400 and
// leaves the store untouched. The increment itself is a single atomic UPDATE.
func (h *ProfileHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		JSONError(w, "missing authorization", http.StatusUnauthorized)
		return
	}

	var input struct {
		Correct *bool `json:"correct"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Correct == nil {
		JSONError(w, "The 'correct' field must be a boolean", http.StatusBadRequest)
		return
	}

	profile, err := h.UserRepo.RecordAnswer(r.Context(), userID, *input.Correct)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "User not found", http.StatusNotFound)
			return
		}
		slog.Error("record answer", "error", err, "user_id", userID)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.RecordAnswer(*input.Correct)

	JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Score updated",
		"updated": true,
		"profile": profile,
	})
}
