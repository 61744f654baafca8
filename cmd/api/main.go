package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/learnmath/learnmath/internal/config"
	"github.com/learnmath/learnmath/internal/db"
	"github.com/learnmath/learnmath/internal/questions"
	"github.com/learnmath/learnmath/internal/repo"
	"github.com/learnmath/learnmath/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogFormat)

	// Connect to the store FIRST; the process must not accept requests
	// without it.
	database, err := db.Connect(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		slog.Error("run migrations", "error", err)
		os.Exit(1)
	}

	questionRepo := repo.NewQuestionRepo(database)
	if n, err := questions.Seed(context.Background(), questionRepo); err != nil {
		slog.Error("seed questions", "error", err)
		os.Exit(1)
	} else if n > 0 {
		slog.Info("seeded question bank", "count", n)
	}

	daily := scheduler.NewDailyRotation(questionRepo)
	if err := daily.Start(); err != nil {
		slog.Error("start daily rotation", "error", err)
		os.Exit(1)
	}
	defer daily.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(database, cfg, daily),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
}

func setupLogger(format string) {
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}
}
