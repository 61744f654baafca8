package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/learnmath/learnmath/internal/auth"
	"github.com/learnmath/learnmath/internal/repo"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	UserRepo *repo.UserRepo
	Hasher   *auth.Hasher
	Tokens   *auth.TokenService
}

// ==========================
// Register
// ==========================
// POST /register {username, email, password} -> 201 {message, userId}.
// Uniqueness of username and email is enforced by the store's unique
// constraints, so concurrent registrations cannot both succeed.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if input.Username == "" || input.Email == "" || input.Password == "" {
		JSONError(w, "username, email and password are required", http.StatusBadRequest)
		return
	}

	hash, err := h.Hasher.Hash(input.Password)
	if err != nil {
		slog.Error("register: hash password", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.UserRepo.Create(r.Context(), input.Username, input.Email, hash)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicateEmail):
			JSONError(w, "Email already registered", http.StatusBadRequest)
		case errors.Is(err, repo.ErrDuplicateUsername):
			JSONError(w, "Username already taken", http.StatusBadRequest)
		default:
			slog.Error("register: create user", "error", err)
			JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		}
		return
	}

	JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"userId":  user.ID,
	})
}

// ==========================
// Login
// ==========================
// POST /login {username, password} -> 200 {token, userId, message}.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	user, err := h.UserRepo.GetByUsername(r.Context(), input.Username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "User not found", http.StatusBadRequest)
			return
		}
		slog.Error("login: get user", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if !h.Hasher.Verify(input.Password, user.PasswordHash) {
		JSONError(w, "Invalid password", http.StatusBadRequest)
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		slog.Error("login: issue token", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"token":   token,
		"userId":  user.ID,
		"message": "Login successful",
	})
}
