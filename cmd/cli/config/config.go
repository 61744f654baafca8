package config

import (
	"os"
	"path/filepath"
)

const defaultAPIURL = "http://localhost:8080"

const tokenFileName = ".learnmath_token"

// APIURL returns the base URL for the LearnMath API.
// It can be overridden with the LEARNMATH_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("LEARNMATH_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// SaveToken stores the JWT token in the user's home directory for later commands.
func SaveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0600)
}

// LoadToken reads the locally stored JWT token.
func LoadToken() (string, error) {
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RemoveToken deletes the locally stored JWT token.
func RemoveToken() error {
	return os.Remove(tokenPath())
}

// TokenExists reports whether a token is stored locally.
func TokenExists() bool {
	_, err := os.Stat(tokenPath())
	return err == nil
}

func tokenPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, tokenFileName)
}
