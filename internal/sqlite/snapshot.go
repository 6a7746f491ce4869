package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/upkeep/internal/domain/board"
)

// SnapshotRepository implements board.SnapshotRepository for SQLite
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// FetchAll reads all four collections inside one transaction so they are
// mutually consistent
func (r *SnapshotRepository) FetchAll(ctx context.Context) (*board.Snapshot, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	phases, err := listPhases(ctx, tx)
	if err != nil {
		return nil, err
	}
	cats, err := listCategories(ctx, tx)
	if err != nil {
		return nil, err
	}
	tasks, err := listTasks(ctx, tx)
	if err != nil {
		return nil, err
	}
	entries, err := listEntries(ctx, tx, entryColumns)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &board.Snapshot{
		Phases:     phases,
		Categories: cats,
		Tasks:      tasks,
		Entries:    entries,
	}, nil
}
