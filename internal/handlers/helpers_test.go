package handlers

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// sqlmockDB bundles the mock handle with its *sql.DB for handler tests.
type sqlmockDB struct {
	DB   *sql.DB
	Mock sqlmock.Sqlmock
}

func newSQLMock(t *testing.T) *sqlmockDB {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	return &sqlmockDB{DB: db, Mock: mock}
}

func (s *sqlmockDB) Close() {
	s.DB.Close()
}
