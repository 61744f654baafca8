package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/learnmath/learnmath/internal/models"
	"github.com/lib/pq"
)

func questionColumns() []string {
	return []string{
		"id", "difficulty", "question", "answer", "explanation",
		"generated_from", "steps", "concepts", "mistakes", "created_at",
	}
}

func TestQuestionRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO questions`).
		WithArgs("entry", "What is 5 + 3", "8", "Count up 3 from 5.", "",
			pq.Array([]string(nil)), pq.Array([]string(nil)), pq.Array([]string(nil))).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))

	repo := NewQuestionRepo(db)
	q, err := repo.Create(context.Background(), &models.Question{
		Difficulty:  "entry",
		Question:    "What is 5 + 3",
		Answer:      "8",
		Explanation: "Count up 3 from 5.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if q.ID != 1 {
		t.Errorf("unexpected question: %+v", q)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestQuestionRepo_Random_ByDifficulty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, difficulty, question`).
		WithArgs("mid").
		WillReturnRows(sqlmock.NewRows(questionColumns()).
			AddRow(7, "mid", "What is 13 × 4?", "52", "(10 × 4) + (3 × 4) = 52.", "",
				"{}", "{}", "{}", now))

	repo := NewQuestionRepo(db)
	q, err := repo.Random(context.Background(), "mid")
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	if q.ID != 7 || q.Difficulty != "mid" {
		t.Errorf("unexpected question: %+v", q)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestQuestionRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, difficulty, question`).
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows(questionColumns()))

	repo := NewQuestionRepo(db)
	_, err = repo.GetByID(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestQuestionRepo_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, difficulty, question`).
		WillReturnRows(sqlmock.NewRows(questionColumns()).
			AddRow(1, "entry", "What is 5 + 3", "8", "", "", "{}", "{}", "{}", now).
			AddRow(2, "advanced", "Solve for x: 2x + 7 = 15", "4", "", "", "{}", "{}", "{}", now))

	repo := NewQuestionRepo(db)
	questions, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(questions) != 2 || questions[1].Answer != "4" {
		t.Errorf("unexpected questions: %+v", questions)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
