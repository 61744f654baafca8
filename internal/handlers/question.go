package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/learnmath/learnmath/internal/genai"
	"github.com/learnmath/learnmath/internal/metrics"
	"github.com/learnmath/learnmath/internal/models"
	"github.com/learnmath/learnmath/internal/repo"
	"github.com/learnmath/learnmath/internal/scheduler"
)

// ==========================
// Question Handler
// ==========================
type QuestionHandler struct {
	Repo      *repo.QuestionRepo
	Generator genai.Generator        // nil when GENAI_API_KEY is not set
	Daily     *scheduler.DailyRotation
}

// ==========================
// List Questions
// ==========================
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.Repo.List(r.Context())
	if err != nil {
		slog.Error("list questions", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if questions == nil {
		questions = []models.Question{}
	}
	JSON(w, http.StatusOK, questions)
}

// ==========================
// Random Question
// ==========================
// GET /questions/random?difficulty=entry|mid|advanced (difficulty optional).
func (h *QuestionHandler) RandomQuestion(w http.ResponseWriter, r *http.Request) {
	difficulty := r.URL.Query().Get("difficulty")
	if difficulty != "" && !models.ValidDifficulty(difficulty) {
		JSONError(w, "difficulty must be entry, mid or advanced", http.StatusBadRequest)
		return
	}

	q, err := h.Repo.Random(r.Context(), difficulty)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "no questions available", http.StatusNotFound)
			return
		}
		slog.Error("random question", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, q)
}

// ==========================
// Daily Question
// ==========================
func (h *QuestionHandler) DailyQuestion(w http.ResponseWriter, r *http.Request) {
	if h.Daily == nil {
		JSONError(w, "no daily question available", http.StatusNotFound)
		return
	}
	q, ok := h.Daily.Current()
	if !ok {
		JSONError(w, "no daily question available", http.StatusNotFound)
		return
	}
	JSON(w, http.StatusOK, q)
}

// ==========================
// Generate Question
// ==========================
// POST /questions/generate {questionId, difficulty} -> 201 with the stored
// generated question. The generator is an external collaborator with
// non-deterministic output; its failures surface as 502, never as a crash.
func (h *QuestionHandler) GenerateQuestion(w http.ResponseWriter, r *http.Request) {
	if h.Generator == nil {
		JSONError(w, "question generation is not configured", http.StatusServiceUnavailable)
		return
	}

	var input struct {
		QuestionID int64  `json:"questionId"`
		Difficulty string `json:"difficulty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if !models.ValidDifficulty(input.Difficulty) {
		JSONError(w, "difficulty must be entry, mid or advanced", http.StatusBadRequest)
		return
	}

	original, err := h.Repo.GetByID(r.Context(), input.QuestionID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "question not found", http.StatusNotFound)
			return
		}
		slog.Error("generate: get original", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	generated, err := h.Generator.GenerateSimilar(r.Context(), *original, input.Difficulty)
	if err != nil {
		metrics.RecordGeneration(false)
		slog.Error("generate: generator call", "error", err, "question_id", input.QuestionID)
		JSONError(w, "question generation failed", http.StatusBadGateway)
		return
	}

	stored, err := h.Repo.Create(r.Context(), generated)
	if err != nil {
		metrics.RecordGeneration(false)
		slog.Error("generate: store question", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.RecordGeneration(true)
	JSON(w, http.StatusCreated, stored)
}
