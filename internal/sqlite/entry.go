package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/upkeep/internal/domain/facility"
	"github.com/rpggio/upkeep/internal/domain/logbook"
	"github.com/rpggio/upkeep/internal/repository"
)

// EntryRepository implements logbook.Repository for SQLite
type EntryRepository struct {
	db *DB
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(db *DB) *EntryRepository {
	return &EntryRepository{db: db}
}

const entryColumns = `
	SELECT id, task_id, timestamp, run_time, notes, category, created_at
	FROM entries`

// Get retrieves an entry by ID
func (r *EntryRepository) Get(ctx context.Context, id string) (*logbook.Entry, error) {
	entry, err := scanEntry(r.db.QueryRowContext(ctx, entryColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}

// ListByTask returns a task's entries, newest first
func (r *EntryRepository) ListByTask(ctx context.Context, taskID string) ([]logbook.Entry, error) {
	entries, err := listEntries(ctx, r.db, entryColumns+` WHERE task_id = ?`, taskID)
	if err != nil {
		return nil, err
	}
	return logbook.SortNewestFirst(entries), nil
}

// CreateWithCache inserts an entry and, when cache is non-nil, rewrites the
// task's cached completion in the same transaction
func (r *EntryRepository) CreateWithCache(ctx context.Context, entry *logbook.Entry, cache *facility.CompletionCache) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	entry.Timestamp = entry.Timestamp.UTC()
	entry.CreatedAt = stamp(entry.CreatedAt)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO entries (id, task_id, timestamp, run_time, notes, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID,
		entry.TaskID,
		entry.Timestamp,
		entry.RunTime,
		entry.Notes,
		entry.Category,
		entry.CreatedAt,
	)
	if err != nil {
		return writeError("create entry", err)
	}

	if err := writeCache(ctx, tx, cache); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteWithCache removes an entry and, when cache is non-nil, rewrites the
// owning task's cached completion in the same transaction
func (r *EntryRepository) DeleteWithCache(ctx context.Context, id string, cache *facility.CompletionCache) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if err := requireRow(result); err != nil {
		return err
	}

	if err := writeCache(ctx, tx, cache); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func writeCache(ctx context.Context, tx *sql.Tx, cache *facility.CompletionCache) error {
	if cache == nil {
		return nil
	}
	result, err := tx.ExecContext(ctx,
		`UPDATE tasks SET last_completed = ?, status = ? WHERE id = ?`,
		timeOrNil(cache.LastCompleted), cache.Status, cache.TaskID)
	if err != nil {
		return fmt.Errorf("failed to update task cache: %w", err)
	}
	return requireRow(result)
}

func scanEntry(row scanner) (*logbook.Entry, error) {
	var entry logbook.Entry
	var runTime sql.NullFloat64
	var notes, category sql.NullString
	if err := row.Scan(
		&entry.ID,
		&entry.TaskID,
		&entry.Timestamp,
		&runTime,
		&notes,
		&category,
		&entry.CreatedAt,
	); err != nil {
		return nil, err
	}
	entry.RunTime = nullFloat(runTime)
	entry.Notes = nullString(notes)
	entry.Category = nullString(category)
	return &entry, nil
}

func listEntries(ctx context.Context, q querier, query string, args ...any) ([]logbook.Entry, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	entries := []logbook.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return entries, nil
}
