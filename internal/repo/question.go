package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/learnmath/learnmath/internal/models"
	"github.com/lib/pq"
)

// ==========================
// QuestionRepo
// ==========================
type QuestionRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewQuestionRepo(db *sql.DB) *QuestionRepo {
	return &QuestionRepo{DB: db}
}

// ==========================
// Create Question
// ==========================
func (r *QuestionRepo) Create(ctx context.Context, q *models.Question) (*models.Question, error) {
	query := `
		INSERT INTO questions (difficulty, question, answer, explanation, generated_from, steps, concepts, mistakes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		q.Difficulty, q.Question, q.Answer, q.Explanation, q.GeneratedFrom,
		pq.Array(q.Steps), pq.Array(q.Concepts), pq.Array(q.Mistakes)).
		Scan(&q.ID, &q.CreatedAt)

	if err != nil {
		return nil, err
	}

	return q, nil
}

// ==========================
// Get By ID
// ==========================
func (r *QuestionRepo) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	query := selectQuestion + ` WHERE id = $1`
	return r.scanQuestion(r.DB.QueryRowContext(ctx, query, id))
}

// ==========================
// Random Question
// ==========================
// Random returns a random question, optionally restricted to a difficulty.
func (r *QuestionRepo) Random(ctx context.Context, difficulty string) (*models.Question, error) {
	if difficulty == "" {
		query := selectQuestion + ` ORDER BY random() LIMIT 1`
		return r.scanQuestion(r.DB.QueryRowContext(ctx, query))
	}
	query := selectQuestion + ` WHERE difficulty = $1 ORDER BY random() LIMIT 1`
	return r.scanQuestion(r.DB.QueryRowContext(ctx, query, difficulty))
}

// ==========================
// List Questions
// ==========================
func (r *QuestionRepo) List(ctx context.Context) ([]models.Question, error) {
	rows, err := r.DB.QueryContext(ctx, selectQuestion+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Difficulty, &q.Question, &q.Answer, &q.Explanation,
			&q.GeneratedFrom, pq.Array(&q.Steps), pq.Array(&q.Concepts), pq.Array(&q.Mistakes),
			&q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// ==========================
// Count Questions
// ==========================
func (r *QuestionRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

const selectQuestion = `
	SELECT id, difficulty, question, answer, explanation, generated_from, steps, concepts, mistakes, created_at
	FROM questions`

func (r *QuestionRepo) scanQuestion(row *sql.Row) (*models.Question, error) {
	q := &models.Question{}

	err := row.Scan(&q.ID, &q.Difficulty, &q.Question, &q.Answer, &q.Explanation,
		&q.GeneratedFrom, pq.Array(&q.Steps), pq.Array(&q.Concepts), pq.Array(&q.Mistakes),
		&q.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return q, nil
}
