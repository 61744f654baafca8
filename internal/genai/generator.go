// Package genai isolates the external text-generation collaborator behind a
// small interface. The model's output is unstructured text; parsing it is
// best-effort and every parse failure is an explicit error, never a panic or
// a half-filled question.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/learnmath/learnmath/internal/models"
)

// ErrUnparsable is returned when the model's reply cannot be decoded into a question.
var ErrUnparsable = errors.New("generator response is not a valid question")

// Generator produces a new question similar to an existing one.
type Generator interface {
	GenerateSimilar(ctx context.Context, original models.Question, difficulty string) (*models.Question, error)
}

// OpenAIGenerator talks to an OpenAI-compatible chat-completions endpoint.
type OpenAIGenerator struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewOpenAIGenerator(baseURL, apiKey string) *OpenAIGenerator {
	return &OpenAIGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   "gpt-4o-mini",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

const promptTemplate = `Generate a math question similar to the one below at %q difficulty.
Respond with ONLY a JSON object with these fields:
"question", "answer", "explanation", "steps" (array of strings),
"concepts" (array of strings), "mistakes" (array of common mistakes as strings).

Original question: %s
Original answer: %s`

func (g *OpenAIGenerator) GenerateSimilar(ctx context.Context, original models.Question, difficulty string) (*models.Question, error) {
	reqBody, err := json.Marshal(map[string]interface{}{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "user", "content": fmt.Sprintf(promptTemplate, difficulty, original.Question, original.Answer)},
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generator request: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generator status %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &out); err != nil || len(out.Choices) == 0 {
		return nil, fmt.Errorf("%w: bad completion envelope", ErrUnparsable)
	}

	return parseQuestion(out.Choices[0].Message.Content, original, difficulty)
}

// parseQuestion decodes the model's reply into a Question. The reply is
// expected to be a JSON object, possibly wrapped in a markdown code fence.
func parseQuestion(content string, original models.Question, difficulty string) (*models.Question, error) {
	content = stripCodeFence(content)

	var parsed struct {
		Question    string   `json:"question"`
		Answer      string   `json:"answer"`
		Explanation string   `json:"explanation"`
		Steps       []string `json:"steps"`
		Concepts    []string `json:"concepts"`
		Mistakes    []string `json:"mistakes"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}
	if parsed.Question == "" || parsed.Answer == "" {
		return nil, fmt.Errorf("%w: missing question or answer", ErrUnparsable)
	}

	return &models.Question{
		Difficulty:    difficulty,
		Question:      parsed.Question,
		Answer:        parsed.Answer,
		Explanation:   parsed.Explanation,
		GeneratedFrom: original.Question,
		Steps:         parsed.Steps,
		Concepts:      parsed.Concepts,
		Mistakes:      parsed.Mistakes,
	}, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
