// Package questions holds the built-in question bank.
package questions

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/learnmath/learnmath/internal/models"
	"github.com/learnmath/learnmath/internal/repo"
)

//go:embed seed.json
var seedFS embed.FS

// Bank returns the embedded seed questions.
func Bank() ([]models.Question, error) {
	data, err := seedFS.ReadFile("seed.json")
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	var bank []models.Question
	if err := json.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return bank, nil
}

// Seed inserts the embedded bank into an empty question store. It is a no-op
// when questions already exist, so it is safe to run on every start.
func Seed(ctx context.Context, questionRepo *repo.QuestionRepo) (int, error) {
	count, err := questionRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	bank, err := Bank()
	if err != nil {
		return 0, err
	}

	inserted := 0
	for i := range bank {
		if _, err := questionRepo.Create(ctx, &bank[i]); err != nil {
			return inserted, fmt.Errorf("seed question %d: %w", i, err)
		}
		inserted++
	}
	return inserted, nil
}
