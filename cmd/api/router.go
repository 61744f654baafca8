package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/learnmath/learnmath/internal/auth"
	"github.com/learnmath/learnmath/internal/config"
	"github.com/learnmath/learnmath/internal/genai"
	"github.com/learnmath/learnmath/internal/handlers"
	"github.com/learnmath/learnmath/internal/middleware"
	"github.com/learnmath/learnmath/internal/repo"
	"github.com/learnmath/learnmath/internal/scheduler"
)

// newRouter wires repositories, services, and handlers into the HTTP API.
// daily may be nil (no daily-question rotation, e.g. in tests).
func newRouter(db *sql.DB, cfg config.Config, daily *scheduler.DailyRotation) http.Handler {
	userRepo := repo.NewUserRepo(db)
	questionRepo := repo.NewQuestionRepo(db)

	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), time.Duration(cfg.JWTExpireHours)*time.Hour)

	var generator genai.Generator
	if cfg.GenAIAPIKey != "" {
		generator = genai.NewOpenAIGenerator(cfg.GenAIBaseURL, cfg.GenAIAPIKey)
	}

	authHandler := &handlers.AuthHandler{UserRepo: userRepo, Hasher: auth.NewHasher(), Tokens: tokens}
	profileHandler := &handlers.ProfileHandler{UserRepo: userRepo}
	questionHandler := &handlers.QuestionHandler{Repo: questionRepo, Generator: generator, Daily: daily}
	userHandler := &handlers.UserHandler{Repo: userRepo}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			handlers.JSONError(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Credential endpoints, rate limited per IP.
	authLimiter := middleware.AuthRateLimiter()
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Unauthenticated in the original app; see handlers.UserHandler.ListUsers.
	r.Get("/users", userHandler.ListUsers)

	// Authenticated
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))
		r.Get("/profile", profileHandler.GetProfile)
		r.Put("/profile", profileHandler.UpdateAbout)
		r.Put("/update-score", profileHandler.UpdateScore)
		r.Get("/questions", questionHandler.ListQuestions)
		r.Get("/questions/random", questionHandler.RandomQuestion)
		r.Get("/questions/daily", questionHandler.DailyQuestion)
		r.Post("/questions/generate", questionHandler.GenerateQuestion)
	})

	return r
}
