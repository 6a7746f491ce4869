package sqlite

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"phases",
		"categories",
		"tasks",
		"entries",
		"activity_log",
		"api_keys",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}

	require.NoError(t, db.RunMigrations(), "migrations must be re-runnable")
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestTasksTable verifies the status constraint and entry cascade
func TestTasksTable(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO tasks (id, name, category_id, recurrence_type) VALUES (?, ?, ?, ?)`,
		"t1", "Weekly Test", "c1", "weekly")
	require.NoError(t, err)

	var status string
	err = db.QueryRowContext(ctx, `SELECT status FROM tasks WHERE id = ?`, "t1").Scan(&status)
	require.NoError(t, err)
	require.Equal(t, "no_entries", status)

	_, err = db.ExecContext(ctx, `UPDATE tasks SET status = ? WHERE id = ?`, "late", "t1")
	require.Error(t, err, "should fail with invalid status")

	_, err = db.ExecContext(ctx,
		`INSERT INTO entries (id, task_id, timestamp) VALUES (?, ?, CURRENT_TIMESTAMP)`, "e1", "t1")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO entries (id, task_id, timestamp) VALUES (?, ?, CURRENT_TIMESTAMP)`, "e2", "missing")
	require.Error(t, err, "should fail with invalid task_id")
	require.True(t, isForeignKeyViolation(err))

	_, err = db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, "t1")
	require.NoError(t, err)

	var count int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count, "entries should cascade with their task")
}

func TestDSN(t *testing.T) {
	require.Equal(t, ":memory:", DSN(":memory:"))
	require.Equal(t, "file:test.db?mode=ro", DSN("file:test.db?mode=ro"))

	dsn := DSN("data/upkeep.db")
	require.True(t, strings.HasPrefix(dsn, "file:///"), dsn)
	require.Contains(t, dsn, "mode=rwc")
	require.Contains(t, dsn, "busy_timeout")
}
