package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/upkeep/internal/domain/facility"
	"github.com/rpggio/upkeep/internal/domain/status"
	"github.com/rpggio/upkeep/internal/repository"
)

// FacilityRepository implements facility.Repository for SQLite
type FacilityRepository struct {
	db *DB
}

// NewFacilityRepository creates a new FacilityRepository
func NewFacilityRepository(db *DB) *FacilityRepository {
	return &FacilityRepository{db: db}
}

// CreatePhase inserts a phase
func (r *FacilityRepository) CreatePhase(ctx context.Context, phase *facility.Phase) error {
	phase.CreatedAt = stamp(phase.CreatedAt)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO phases (id, name, created_at) VALUES (?, ?, ?)`,
		phase.ID, phase.Name, phase.CreatedAt)
	if err != nil {
		return writeError("create phase", err)
	}
	return nil
}

// GetPhase retrieves a phase by ID
func (r *FacilityRepository) GetPhase(ctx context.Context, id string) (*facility.Phase, error) {
	var phase facility.Phase
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM phases WHERE id = ?`, id,
	).Scan(&phase.ID, &phase.Name, &phase.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get phase: %w", err)
	}
	return &phase, nil
}

// ListPhases returns every phase
func (r *FacilityRepository) ListPhases(ctx context.Context) ([]facility.Phase, error) {
	return listPhases(ctx, r.db)
}

// CreateCategory inserts a category
func (r *FacilityRepository) CreateCategory(ctx context.Context, cat *facility.Category) error {
	cat.CreatedAt = stamp(cat.CreatedAt)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, phase_id, created_at) VALUES (?, ?, ?, ?)`,
		cat.ID, cat.Name, cat.PhaseID, cat.CreatedAt)
	if err != nil {
		return writeError("create category", err)
	}
	return nil
}

// GetCategory retrieves a category by ID
func (r *FacilityRepository) GetCategory(ctx context.Context, id string) (*facility.Category, error) {
	var cat facility.Category
	var phaseID sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, phase_id, created_at FROM categories WHERE id = ?`, id,
	).Scan(&cat.ID, &cat.Name, &phaseID, &cat.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	cat.PhaseID = nullString(phaseID)
	return &cat, nil
}

// ListCategories returns every category
func (r *FacilityRepository) ListCategories(ctx context.Context) ([]facility.Category, error) {
	return listCategories(ctx, r.db)
}

// CreateTask inserts a task
func (r *FacilityRepository) CreateTask(ctx context.Context, task *facility.Task) error {
	task.CreatedAt = stamp(task.CreatedAt)
	if task.Status == "" {
		task.Status = status.NoEntries
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (
			id, name, category_id, recurrence_type, requires_time,
			last_completed, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		task.ID,
		task.Name,
		task.CategoryID,
		task.RecurrenceType,
		task.RequiresTime,
		timeOrNil(task.LastCompleted),
		task.Status,
		task.CreatedAt,
	)
	if err != nil {
		return writeError("create task", err)
	}
	return nil
}

// GetTask retrieves a task by ID
func (r *FacilityRepository) GetTask(ctx context.Context, id string) (*facility.Task, error) {
	row := r.db.QueryRowContext(ctx, taskColumns+` WHERE id = ?`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// ListTasks returns every task
func (r *FacilityRepository) ListTasks(ctx context.Context) ([]facility.Task, error) {
	return listTasks(ctx, r.db)
}

// RenameTask changes a task's name
func (r *FacilityRepository) RenameTask(ctx context.Context, id, name string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE tasks SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("failed to rename task: %w", err)
	}
	return requireRow(result)
}

// DeleteTask removes a task; its entries go with it through ON DELETE CASCADE
func (r *FacilityRepository) DeleteTask(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireRow(result)
}

// querier is satisfied by both *DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const taskColumns = `
	SELECT id, name, category_id, recurrence_type, requires_time,
		last_completed, status, created_at
	FROM tasks`

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*facility.Task, error) {
	var task facility.Task
	var last sql.NullTime
	if err := row.Scan(
		&task.ID,
		&task.Name,
		&task.CategoryID,
		&task.RecurrenceType,
		&task.RequiresTime,
		&last,
		&task.Status,
		&task.CreatedAt,
	); err != nil {
		return nil, err
	}
	task.LastCompleted = nullTime(last)
	return &task, nil
}

func listPhases(ctx context.Context, q querier) ([]facility.Phase, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name, created_at FROM phases ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list phases: %w", err)
	}
	defer rows.Close()

	phases := []facility.Phase{}
	for rows.Next() {
		var phase facility.Phase
		if err := rows.Scan(&phase.ID, &phase.Name, &phase.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan phase: %w", err)
		}
		phases = append(phases, phase)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating phase rows: %w", err)
	}
	return phases, nil
}

func listCategories(ctx context.Context, q querier) ([]facility.Category, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name, phase_id, created_at FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	cats := []facility.Category{}
	for rows.Next() {
		var cat facility.Category
		var phaseID sql.NullString
		if err := rows.Scan(&cat.ID, &cat.Name, &phaseID, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		cat.PhaseID = nullString(phaseID)
		cats = append(cats, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return cats, nil
}

func listTasks(ctx context.Context, q querier) ([]facility.Task, error) {
	rows, err := q.QueryContext(ctx, taskColumns+` ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []facility.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
