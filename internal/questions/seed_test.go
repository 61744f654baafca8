package questions

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/learnmath/learnmath/internal/models"
	"github.com/learnmath/learnmath/internal/repo"
)

func TestBank(t *testing.T) {
	bank, err := Bank()
	if err != nil {
		t.Fatalf("Bank: %v", err)
	}
	if len(bank) != 20 {
		t.Fatalf("bank size: got %d, want 20", len(bank))
	}
	for i, q := range bank {
		if !models.ValidDifficulty(q.Difficulty) {
			t.Errorf("question %d: bad difficulty %q", i, q.Difficulty)
		}
		if q.Question == "" || q.Answer == "" {
			t.Errorf("question %d: missing question or answer", i)
		}
	}
}

func TestSeed_SkipsNonEmptyStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM questions`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(20))

	n, err := Seed(context.Background(), repo.NewQuestionRepo(db))
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n != 0 {
		t.Errorf("seed of non-empty store inserted %d questions", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
