package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/learnmath/learnmath/internal/models"
	"github.com/lib/pq"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// Postgres unique_violation.
const uniqueViolation = "23505"

// ==========================
// Create User
// ==========================
// Create inserts a user with zeroed profile stats. A unique-constraint
// violation is mapped to ErrDuplicateUsername or ErrDuplicateEmail by
// constraint name.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	user := &models.User{Username: username, Email: email, PasswordHash: passwordHash}

	err := r.DB.QueryRowContext(ctx, query, username, email, passwordHash).
		Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			switch pqErr.Constraint {
			case "users_email_key":
				return nil, ErrDuplicateEmail
			default:
				return nil, ErrDuplicateUsername
			}
		}
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, about,
		       correct_answers, incorrect_answers, total_questions, created_at
		FROM users
		WHERE id = $1
	`

	return r.scanUser(r.DB.QueryRowContext(ctx, query, id))
}

// ==========================
// Get By Username
// ==========================
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, about,
		       correct_answers, incorrect_answers, total_questions, created_at
		FROM users
		WHERE username = $1
	`

	return r.scanUser(r.DB.QueryRowContext(ctx, query, username))
}

// ==========================
// Update About
// ==========================
func (r *UserRepo) UpdateAbout(ctx context.Context, id int64, about string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE users SET about = $1 WHERE id = $2`, about, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ==========================
// Record Answer
// ==========================
// RecordAnswer increments total_questions and exactly one of the outcome
// counters in a single UPDATE, so concurrent updates for the same user are
// serialized by the store and total = correct + incorrect always holds.
func (r *UserRepo) RecordAnswer(ctx context.Context, id int64, correct bool) (*models.Profile, error) {
	query := `
		UPDATE users
		SET correct_answers   = correct_answers   + CASE WHEN $2 THEN 1 ELSE 0 END,
		    incorrect_answers = incorrect_answers + CASE WHEN $2 THEN 0 ELSE 1 END,
		    total_questions   = total_questions + 1
		WHERE id = $1
		RETURNING about, correct_answers, incorrect_answers, total_questions
	`

	profile := &models.Profile{}

	err := r.DB.QueryRowContext(ctx, query, id, correct).
		Scan(&profile.About, &profile.CorrectAnswers, &profile.IncorrectAnswers, &profile.TotalQuestions)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return profile, nil
}

// ==========================
// List Users
// ==========================
// List returns all users without password hashes.
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, username, email, about,
		       correct_answers, incorrect_answers, total_questions, created_at
		FROM users
		ORDER BY id
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Profile.About,
			&u.Profile.CorrectAnswers, &u.Profile.IncorrectAnswers, &u.Profile.TotalQuestions,
			&u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *UserRepo) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}

	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Profile.About, &user.Profile.CorrectAnswers, &user.Profile.IncorrectAnswers,
		&user.Profile.TotalQuestions, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user, nil
}
