// Package scheduler rotates the daily featured question. The current pick is
// held in memory; the cron job replaces it at midnight and on startup.
package scheduler

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/learnmath/learnmath/internal/models"
	"github.com/learnmath/learnmath/internal/repo"
	"github.com/robfig/cron/v3"
)

// DailyRotation picks a random question once a day.
type DailyRotation struct {
	questions *repo.QuestionRepo
	current   atomic.Pointer[models.Question]
	cron      *cron.Cron
}

func NewDailyRotation(questions *repo.QuestionRepo) *DailyRotation {
	return &DailyRotation{questions: questions, cron: cron.New()}
}

// Start picks an initial question and schedules a refresh at midnight.
func (d *DailyRotation) Start() error {
	d.refresh()
	if _, err := d.cron.AddFunc("0 0 * * *", d.refresh); err != nil {
		return err
	}
	d.cron.Start()
	return nil
}

// Stop halts the cron scheduler. Safe to call once after Start.
func (d *DailyRotation) Stop() {
	d.cron.Stop()
}

// Current returns today's question, or false if none has been picked yet
// (empty question table).
func (d *DailyRotation) Current() (*models.Question, bool) {
	q := d.current.Load()
	return q, q != nil
}

func (d *DailyRotation) refresh() {
	q, err := d.questions.Random(context.Background(), "")
	if err != nil {
		slog.Error("daily rotation: pick question", "error", err)
		return
	}
	d.current.Store(q)
	slog.Info("daily rotation: picked question", "question_id", q.ID, "difficulty", q.Difficulty)
}
