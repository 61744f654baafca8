package models

import "time"

// User is a registered learner. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	Profile      Profile   `json:"profile"`
}

// Profile holds the user's running quiz statistics.
// TotalQuestions is always CorrectAnswers + IncorrectAnswers.
type Profile struct {
	About            string `json:"about"`
	CorrectAnswers   int    `json:"correctAnswers"`
	IncorrectAnswers int    `json:"incorrectAnswers"`
	TotalQuestions   int    `json:"totalQuestions"`
}
