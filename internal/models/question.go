package models

import "time"

// Question difficulty levels.
const (
	DifficultyEntry    = "entry"
	DifficultyMid      = "mid"
	DifficultyAdvanced = "advanced"
)

// ValidDifficulty reports whether d is one of the known difficulty levels.
func ValidDifficulty(d string) bool {
	return d == DifficultyEntry || d == DifficultyMid || d == DifficultyAdvanced
}

// Question is a quiz question, either seeded or generated from another
// question (GeneratedFrom set). Steps, Concepts, and Mistakes are optional
// teaching aids that generated questions may carry.
type Question struct {
	ID            int64     `json:"id"`
	Difficulty    string    `json:"difficulty"`
	Question      string    `json:"question"`
	Answer        string    `json:"answer"`
	Explanation   string    `json:"explanation"`
	GeneratedFrom string    `json:"generatedFrom,omitempty"`
	Steps         []string  `json:"steps,omitempty"`
	Concepts      []string  `json:"concepts,omitempty"`
	Mistakes      []string  `json:"mistakes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
