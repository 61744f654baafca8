package users

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/learnmath/learnmath/cmd/cli/config"
	"github.com/learnmath/learnmath/cmd/cli/output"
	"github.com/learnmath/learnmath/cmd/cli/root"
	"github.com/spf13/cobra"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users and authentication",
		Long: `Register or login a user to the LearnMath API.
Stores the JWT token locally for future commands.`,
	}

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Long:  "Register a new user with username, email and password.",
		RunE:  runRegister,
	}

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Login an existing user",
		Long:  "Login and save the JWT token locally for future CLI commands.",
		RunE:  runLogin,
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Logout current user",
		Long:  "Remove the locally saved JWT token.",
		RunE:  runLogout,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE:  runList,
	}

	usersCmd.AddCommand(registerCmd, loginCmd, logoutCmd, listCmd)
	root.GetRoot().AddCommand(usersCmd)
}

// ==========================
// Register User
// ==========================
func runRegister(cmd *cobra.Command, args []string) error {
	var username, email, password string
	fmt.Print("Username: ")
	fmt.Scanln(&username)
	fmt.Print("Email: ")
	fmt.Scanln(&email)
	fmt.Print("Password: ")
	fmt.Scanln(&password)

	payload := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(config.APIURL()+"/register", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(b))
	}

	fmt.Println("User registered successfully! You can now login.")
	return nil
}

// ==========================
// Login User
// ==========================
func runLogin(cmd *cobra.Command, args []string) error {
	var username, password string
	fmt.Print("Username: ")
	fmt.Scanln(&username)
	fmt.Print("Password: ")
	fmt.Scanln(&password)

	payload := map[string]string{
		"username": username,
		"password": password,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(config.APIURL()+"/login", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(b))
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	token, ok := result["token"].(string)
	if !ok || token == "" {
		return fmt.Errorf("token not returned by API")
	}

	if err := config.SaveToken(token); err != nil {
		return err
	}

	fmt.Println("Login successful! JWT token saved locally.")
	return nil
}

// ==========================
// Logout User
// ==========================
func runLogout(cmd *cobra.Command, args []string) error {
	if !config.TokenExists() {
		fmt.Println("No user logged in.")
		return nil
	}

	if err := config.RemoveToken(); err != nil {
		return err
	}

	fmt.Println("Logged out successfully.")
	return nil
}

// ==========================
// List Users
// ==========================
func runList(cmd *cobra.Command, args []string) error {
	resp, err := http.Get(config.APIURL() + "/users")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s", string(b))
	}

	var users []struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Profile  struct {
			CorrectAnswers   int `json:"correctAnswers"`
			IncorrectAnswers int `json:"incorrectAnswers"`
			TotalQuestions   int `json:"totalQuestions"`
		} `json:"profile"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(users))
	for _, u := range users {
		rows = append(rows, []interface{}{
			u.ID, u.Username, u.Email,
			u.Profile.CorrectAnswers, u.Profile.IncorrectAnswers, u.Profile.TotalQuestions,
		})
	}
	output.RenderTable([]string{"ID", "Username", "Email", "Correct", "Incorrect", "Total"}, rows)
	return nil
}
