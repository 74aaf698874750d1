// Package sqlite_test contains integration tests for SQLite repositories.
// Test setup loads db.GetSchemaSQL so test schemas cannot drift from the
// authoritative one; do not hardcode CREATE TABLE statements here.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/taysr/internal/db"
	"github.com/example/taysr/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// :memory: databases are per-connection; pin to one so every query
	// sees the same database.
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// testTask builds a minimal valid task record.
func testTask(guildID, taskID, title string, dueAt time.Time) *secondary.TaskRecord {
	return &secondary.TaskRecord{
		TaskID:    taskID,
		GuildID:   guildID,
		Title:     title,
		CreatorID: "creator-1",
		DueAt:     dueAt,
		Status:    secondary.StatusOpen,
	}
}
