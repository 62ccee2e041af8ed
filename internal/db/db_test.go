package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/studyflash/internal/db"
)

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	ctx := context.Background()
	d, err := db.Open(":memory:")
	require.NoError(t, err)
	defer d.Close()

	versions, err := d.AppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_indexes.sql"}, versions)

	// Re-running is a no-op.
	require.NoError(t, d.Migrate(ctx))
	again, err := d.AppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, versions, again)
}

func TestOpen_ForeignKeysCascade(t *testing.T) {
	ctx := context.Background()
	d, err := db.Open(":memory:")
	require.NoError(t, err)
	defer d.Close()

	res, err := d.ExecContext(ctx, `INSERT INTO profiles (username) VALUES ('ana')`)
	require.NoError(t, err)
	profileID, err := res.LastInsertId()
	require.NoError(t, err)

	_, err = d.ExecContext(ctx, `INSERT INTO notes (profile_id, title, content) VALUES (?, 'Cells', 'Mitochondria')`, profileID)
	require.NoError(t, err)

	_, err = d.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, profileID)
	require.NoError(t, err)

	var notes int
	require.NoError(t, d.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&notes))
	assert.Zero(t, notes)
}

func TestOpen_RejectsOrphanNotes(t *testing.T) {
	d, err := db.Open(":memory:")
	require.NoError(t, err)
	defer d.Close()

	_, err = d.ExecContext(context.Background(), `INSERT INTO notes (profile_id, title, content) VALUES (999, 't', 'c')`)
	assert.Error(t, err)
}
