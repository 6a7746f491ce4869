package facility

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/upkeep/internal/domain/activity"
	"github.com/rpggio/upkeep/internal/domain/recurrence"
	"github.com/rpggio/upkeep/internal/domain/status"
	"github.com/rpggio/upkeep/internal/repository"
)

// Service handles facility management commands.
type Service struct {
	repo       Repository
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a new facility service.
func NewService(repo Repository, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, activities: activities, logger: logger}
}

// AddPhaseRequest defines phase creation inputs.
type AddPhaseRequest struct {
	Name string
}

// AddCategoryRequest defines category creation inputs. A nil PhaseID creates
// an ungrouped (generator) category.
type AddCategoryRequest struct {
	Name    string
	PhaseID *string
}

// AddTaskRequest defines task creation inputs.
type AddTaskRequest struct {
	CategoryID     string
	Name           string
	RecurrenceType string
	RequiresTime   bool
}

// AddPhase creates a phase.
func (s *Service) AddPhase(ctx context.Context, req AddPhaseRequest) (*Phase, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	phase := &Phase{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreatePhase(ctx, phase); err != nil {
		return nil, fmt.Errorf("creating phase: %w", err)
	}

	s.record(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypePhaseAdded,
		Summary:      fmt.Sprintf("added phase %q", phase.Name),
	})
	return phase, nil
}

// AddCategory creates a category inside a phase, or ungrouped when PhaseID is nil.
func (s *Service) AddCategory(ctx context.Context, req AddCategoryRequest) (*Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	var phaseID *string
	if req.PhaseID != nil && strings.TrimSpace(*req.PhaseID) != "" {
		if _, err := s.repo.GetPhase(ctx, *req.PhaseID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrPhaseNotFound
			}
			return nil, fmt.Errorf("loading phase: %w", err)
		}
		id := *req.PhaseID
		phaseID = &id
	}

	cat := &Category{
		ID:        uuid.NewString(),
		Name:      name,
		PhaseID:   phaseID,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateCategory(ctx, cat); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	s.record(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeCategoryAdded,
		Summary:      fmt.Sprintf("added category %q", cat.Name),
	})
	return cat, nil
}

// AddTask creates a task in a category. The recurrence label is stored as
// given; a blank label is stored as monthly.
func (s *Service) AddTask(ctx context.Context, req AddTaskRequest) (*Task, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || strings.TrimSpace(req.CategoryID) == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.repo.GetCategory(ctx, req.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("loading category: %w", err)
	}

	recurrenceType := strings.TrimSpace(req.RecurrenceType)
	if recurrenceType == "" {
		recurrenceType = string(recurrence.Default)
	}

	task := &Task{
		ID:             uuid.NewString(),
		Name:           name,
		CategoryID:     req.CategoryID,
		RecurrenceType: recurrenceType,
		RequiresTime:   req.RequiresTime,
		Status:         status.NoEntries,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.record(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeTaskAdded,
		TaskID:       &task.ID,
		Summary:      fmt.Sprintf("added task %q (%s)", task.Name, recurrenceType),
	})
	return task, nil
}

// RenameTask changes a task's display name.
func (s *Service) RenameTask(ctx context.Context, id, name string) (*Task, error) {
	name = strings.TrimSpace(name)
	if strings.TrimSpace(id) == "" || name == "" {
		return nil, ErrInvalidInput
	}

	current, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.RenameTask(ctx, id, name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("renaming task: %w", err)
	}

	s.record(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeTaskRenamed,
		TaskID:       &current.ID,
		Summary:      fmt.Sprintf("renamed task %q to %q", current.Name, name),
	})

	renamed := *current
	renamed.Name = name
	return &renamed, nil
}

// DeleteTask removes a task. Whether its entries go with it is decided by
// the storage layer's integrity policy.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}

	current, err := s.GetTask(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteTask(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("deleting task: %w", err)
	}

	s.record(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeTaskDeleted,
		TaskID:       &current.ID,
		Summary:      fmt.Sprintf("deleted task %q", current.Name),
	})
	return nil
}

// GetTask fetches a task by ID.
func (s *Service) GetTask(ctx context.Context, id string) (*Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return task, nil
}

func (s *Service) record(ctx context.Context, entry *activity.ActivityEntry) {
	if s.activities == nil {
		return
	}
	activity.Record(ctx, s.activities, s.logger, entry)
}
