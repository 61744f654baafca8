package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/learnmath/learnmath/internal/auth"
	"github.com/learnmath/learnmath/internal/repo"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

func newAuthHandler(db *sqlmockDB) *AuthHandler {
	return &AuthHandler{
		UserRepo: repo.NewUserRepo(db.DB),
		Hasher:   auth.NewHasher(),
		Tokens:   auth.NewTokenService([]byte("test-secret"), time.Hour),
	}
}

func TestAuthHandler_Register(t *testing.T) {
	db := newSQLMock(t)
	defer db.Close()

	db.Mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "a@x.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

	h := newAuthHandler(db)

	body, _ := json.Marshal(map[string]string{"username": "alice", "email": "a@x.com", "password": "secret1"})
	req := httptest.NewRequest("POST", "/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Register(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("Register status: got %d, want 201 (body %s)", rr.Code, rr.Body.String())
	}
	var out struct {
		Message string `json:"message"`
		UserID  int64  `json:"userId"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.UserID != 1 || out.Message == "" {
		t.Errorf("unexpected response: %+v", out)
	}
	if err := db.Mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	db := newSQLMock(t)
	defer db.Close()

	db.Mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("bob", "a@x.com", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	h := newAuthHandler(db)

	body, _ := json.Marshal(map[string]string{"username": "bob", "email": "a@x.com", "password": "pw"})
	req := httptest.NewRequest("POST", "/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Register(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
	var out map[string]string
	json.NewDecoder(rr.Body).Decode(&out)
	if out["error"] != "Email already registered" {
		t.Errorf("unexpected error: %q", out["error"])
	}
	if err := db.Mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	db := newSQLMock(t)
	defer db.Close()

	h := newAuthHandler(db)

	body, _ := json.Marshal(map[string]string{"username": "alice"})
	req := httptest.NewRequest("POST", "/register", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Register(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
	if err := db.Mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func userRow(t *testing.T, id int64, username, email, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "about",
		"correct_answers", "incorrect_answers", "total_questions", "created_at",
	}).AddRow(id, username, email, string(hash), "", 0, 0, 0, time.Now())
}

func TestAuthHandler_Login(t *testing.T) {
	db := newSQLMock(t)
	defer db.Close()

	db.Mock.ExpectQuery(`SELECT id, username, email, password_hash`).
		WithArgs("alice").
		WillReturnRows(userRow(t, 1, "alice", "a@x.com", "secret1"))

	h := newAuthHandler(db)

	body, _ := json.Marshal(map[string]string{"username": "alice", "password": "secret1"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Login status: got %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}
	var out struct {
		Token  string `json:"token"`
		UserID int64  `json:"userId"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Token == "" || out.UserID != 1 {
		t.Errorf("unexpected response: %+v", out)
	}

	// The returned token must verify against the same service.
	claims, err := h.Tokens.Verify(out.Token)
	if err != nil {
		t.Fatalf("Verify issued token: %v", err)
	}
	if claims.UserID != 1 || claims.Username != "alice" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if err := db.Mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	db := newSQLMock(t)
	defer db.Close()

	db.Mock.ExpectQuery(`SELECT id, username, email, password_hash`).
		WithArgs("alice").
		WillReturnRows(userRow(t, 1, "alice", "a@x.com", "secret1"))

	h := newAuthHandler(db)

	body, _ := json.Marshal(map[string]string{"username": "alice", "password": "wrong"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
	var out map[string]string
	json.NewDecoder(rr.Body).Decode(&out)
	if out["error"] != "Invalid password" {
		t.Errorf("unexpected error: %q", out["error"])
	}
	if out["token"] != "" {
		t.Error("no token may be issued on failed login")
	}
	if err := db.Mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_Login_UserNotFound(t *testing.T) {
	db := newSQLMock(t)
	defer db.Close()

	db.Mock.ExpectQuery(`SELECT id, username, email, password_hash`).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	h := newAuthHandler(db)

	body, _ := json.Marshal(map[string]string{"username": "nobody", "password": "pw"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
	var out map[string]string
	json.NewDecoder(rr.Body).Decode(&out)
	if out["error"] != "User not found" {
		t.Errorf("unexpected error: %q", out["error"])
	}
	if err := db.Mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
