package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vytor/studyflash/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// It runs the same embedded migrations as production, with foreign keys on.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.Open(":memory:")
	require.NoError(t, err)
	return d.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// InsertProfile creates a learner row and returns its id.
func InsertProfile(t *testing.T, sqlDB *sql.DB, username string) int64 {
	t.Helper()
	res, err := sqlDB.ExecContext(context.Background(), `INSERT INTO profiles (username) VALUES (?)`, username)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// InsertNote creates a note owned by profileID and returns its id.
func InsertNote(t *testing.T, sqlDB *sql.DB, profileID int64, title, content string, createdAt time.Time) int64 {
	t.Helper()
	res, err := sqlDB.ExecContext(context.Background(), `
INSERT INTO notes (profile_id, title, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
`, profileID, title, content, createdAt.UTC(), createdAt.UTC())
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}
