package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/learnmath/learnmath/cmd/cli/config"
	"github.com/learnmath/learnmath/cmd/cli/output"
	"github.com/learnmath/learnmath/cmd/cli/root"
	"github.com/learnmath/learnmath/internal/db"
	"github.com/learnmath/learnmath/internal/models"
	"github.com/learnmath/learnmath/internal/questions"
	"github.com/learnmath/learnmath/internal/repo"
	"github.com/spf13/cobra"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	questionsCmd := &cobra.Command{
		Use:   "questions",
		Short: "Browse and seed the question bank",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all questions",
		Long:  "List the question bank. Requires a prior login.",
		RunE:  runList,
	}

	randomCmd := &cobra.Command{
		Use:   "random",
		Short: "Fetch a random question",
		Long:  "Fetch a random question, optionally filtered by difficulty.",
		RunE:  runRandom,
	}
	randomCmd.Flags().String("difficulty", "", "entry, mid or advanced")

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the question bank directly into the database",
		Long: `Connect to the database given by DATABASE_URL, run migrations
and insert the built-in question bank. Does nothing if questions already exist.`,
		RunE: runSeed,
	}

	questionsCmd.AddCommand(listCmd, randomCmd, seedCmd)
	root.GetRoot().AddCommand(questionsCmd)
}

func authedGet(url string) (*http.Response, error) {
	token, err := config.LoadToken()
	if err != nil {
		return nil, fmt.Errorf("not logged in, run 'learnmath users login' first")
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return http.DefaultClient.Do(req)
}

// ==========================
// List Questions
// ==========================
func runList(cmd *cobra.Command, args []string) error {
	resp, err := authedGet(config.APIURL() + "/questions")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(b))
	}

	var list []models.Question
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(list))
	for _, q := range list {
		rows = append(rows, []interface{}{q.ID, q.Difficulty, q.Question, q.Answer})
	}
	output.RenderTable([]string{"ID", "Difficulty", "Question", "Answer"}, rows)
	return nil
}

// ==========================
// Random Question
// ==========================
func runRandom(cmd *cobra.Command, args []string) error {
	difficulty, _ := cmd.Flags().GetString("difficulty")

	url := config.APIURL() + "/questions/random"
	if difficulty != "" {
		url += "?difficulty=" + difficulty
	}

	resp, err := authedGet(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(b))
	}

	var q models.Question
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		return err
	}

	fmt.Printf("[%s] %s\n", q.Difficulty, q.Question)
	fmt.Printf("Answer: %s\n", q.Answer)
	if q.Explanation != "" {
		fmt.Printf("Explanation: %s\n", q.Explanation)
	}
	return nil
}

// ==========================
// Seed Question Bank
// ==========================
func runSeed(cmd *cobra.Command, args []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	conn, err := db.Connect(databaseURL, 5, 2)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer conn.Close()

	if err := db.Migrate(databaseURL); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := questions.Seed(ctx, repo.NewQuestionRepo(conn))
	if err != nil {
		return fmt.Errorf("seed questions: %w", err)
	}

	if n == 0 {
		fmt.Println("Question bank already seeded, nothing to do.")
	} else {
		fmt.Printf("Seeded %d questions.\n", n)
	}
	return nil
}
