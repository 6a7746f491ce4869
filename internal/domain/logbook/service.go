package logbook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/upkeep/internal/domain/activity"
	"github.com/rpggio/upkeep/internal/domain/facility"
	"github.com/rpggio/upkeep/internal/domain/status"
	"github.com/rpggio/upkeep/internal/repository"
)

// Service logs and removes task completions and keeps each task's cached
// completion in step with its entries.
type Service struct {
	entries    Repository
	tasks      TaskRepository
	activities ActivityRepository
	logger     *slog.Logger

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// NewService creates a new logbook service.
func NewService(entries Repository, tasks TaskRepository, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{
		entries:    entries,
		tasks:      tasks,
		activities: activities,
		logger:     logger,
		Clock:      time.Now,
	}
}

// LogRequest describes a completion to record. A nil Timestamp means now.
type LogRequest struct {
	TaskID    string
	Timestamp *time.Time
	RunTime   *float64
	Notes     *string
	Category  *string
}

// DeleteResult reports the outcome of a delete and the task's recomputed state.
type DeleteResult struct {
	Deleted       bool          `json:"deleted"`
	Entry         *Entry        `json:"entry,omitempty"`
	TaskID        string        `json:"task_id,omitempty"`
	LastCompleted *time.Time    `json:"last_completed,omitempty"`
	Status        status.Status `json:"status,omitempty"`
	Remaining     string        `json:"remaining,omitempty"`
}

// TaskStatus is a task's compliance state computed from its entries.
type TaskStatus struct {
	Task   facility.Task `json:"task"`
	Last   *Entry        `json:"last,omitempty"`
	Result status.Result `json:"result"`
}

// Log records a completion of a task.
//
// The task's cached completion is only overwritten when the new entry is
// more recent than the cached one, or when nothing is cached yet, so that
// back-dated entries never move it backwards. Timestamps after the current
// time are rejected.
func (s *Service) Log(ctx context.Context, req LogRequest) (*Entry, error) {
	if strings.TrimSpace(req.TaskID) == "" {
		return nil, ErrInvalidInput
	}
	if req.RunTime != nil && *req.RunTime < 0 {
		return nil, ErrInvalidInput
	}

	now := s.now()
	ts := now
	if req.Timestamp != nil && !req.Timestamp.IsZero() {
		ts = *req.Timestamp
	}
	if ts.After(now) {
		return nil, fmt.Errorf("%w: timestamp %s is in the future", ErrInvalidInput, ts.Format(time.RFC3339))
	}

	task, err := s.loadTask(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}
	if task.RequiresTime && req.RunTime == nil {
		return nil, ErrRunTimeRequired
	}

	entry := &Entry{
		ID:        uuid.NewString(),
		TaskID:    task.ID,
		Timestamp: ts,
		RunTime:   req.RunTime,
		Notes:     trimmed(req.Notes),
		Category:  trimmed(req.Category),
		CreatedAt: now,
	}

	var cache *facility.CompletionCache
	if task.LastCompleted == nil || ts.After(*task.LastCompleted) {
		cache = &facility.CompletionCache{
			TaskID:        task.ID,
			LastCompleted: &entry.Timestamp,
			Status:        status.Compute(&entry.Timestamp, task.RecurrenceType, now),
		}
	}

	if err := s.entries.CreateWithCache(ctx, entry, cache); err != nil {
		return nil, fmt.Errorf("logging entry: %w", err)
	}

	s.record(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeEntryLogged,
		TaskID:       &task.ID,
		EntryID:      &entry.ID,
		Summary:      fmt.Sprintf("logged %q", task.Name),
	})
	return entry, nil
}

// Delete removes an entry and recomputes the owning task's last completion
// from the entries that remain. Deleting an unknown entry is not an error:
// the result reports Deleted=false.
func (s *Service) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}

	entry, err := s.entries.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.debug("delete of unknown entry ignored", "entry_id", id)
			return &DeleteResult{Deleted: false}, nil
		}
		return nil, fmt.Errorf("loading entry: %w", err)
	}

	siblings, err := s.entries.ListByTask(ctx, entry.TaskID)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	remaining := make([]Entry, 0, len(siblings))
	for _, e := range siblings {
		if e.ID != entry.ID {
			remaining = append(remaining, e)
		}
	}

	now := s.now()
	result := &DeleteResult{Deleted: true, Entry: entry, TaskID: entry.TaskID}

	var cache *facility.CompletionCache
	task, err := s.entriesTask(ctx, entry.TaskID)
	if err != nil {
		return nil, err
	}
	if task != nil {
		var last *time.Time
		if latest := Latest(remaining); latest != nil {
			last = &latest.Timestamp
		}
		eval := status.Evaluate(last, task.RecurrenceType, now)
		cache = &facility.CompletionCache{TaskID: task.ID, LastCompleted: last, Status: eval.Status}
		result.LastCompleted = last
		result.Status = eval.Status
		result.Remaining = eval.Remaining
	}

	if err := s.entries.DeleteWithCache(ctx, id, cache); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &DeleteResult{Deleted: false}, nil
		}
		return nil, fmt.Errorf("deleting entry: %w", err)
	}

	s.record(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeEntryDeleted,
		TaskID:       &entry.TaskID,
		EntryID:      &entry.ID,
		Summary:      fmt.Sprintf("deleted entry from %s", entry.Timestamp.Format(time.DateOnly)),
	})
	return result, nil
}

// TaskStatus computes a task's status from its entries, ignoring the cache.
func (s *Service) TaskStatus(ctx context.Context, taskID string) (*TaskStatus, error) {
	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	latest := Latest(entries)
	var last *time.Time
	if latest != nil {
		last = &latest.Timestamp
	}
	return &TaskStatus{
		Task:   *task,
		Last:   latest,
		Result: status.Evaluate(last, task.RecurrenceType, s.now()),
	}, nil
}

func (s *Service) loadTask(ctx context.Context, id string) (*facility.Task, error) {
	task, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, facility.ErrTaskNotFound
		}
		return nil, fmt.Errorf("loading task: %w", err)
	}
	return task, nil
}

// entriesTask loads the owner of an entry; an orphaned entry yields nil.
func (s *Service) entriesTask(ctx context.Context, id string) (*facility.Task, error) {
	task, err := s.loadTask(ctx, id)
	if errors.Is(err, facility.ErrTaskNotFound) {
		return nil, nil
	}
	return task, err
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

func (s *Service) record(ctx context.Context, entry *activity.ActivityEntry) {
	if s.activities == nil {
		return
	}
	activity.Record(ctx, s.activities, s.logger, entry)
}

func (s *Service) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
