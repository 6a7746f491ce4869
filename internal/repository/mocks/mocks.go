package mocks

import (
	"context"

	"github.com/rpggio/upkeep/internal/domain/activity"
	"github.com/rpggio/upkeep/internal/domain/board"
	"github.com/rpggio/upkeep/internal/domain/facility"
	"github.com/rpggio/upkeep/internal/domain/logbook"
	"github.com/stretchr/testify/mock"
)

// FacilityRepository is a mock for facility.Repository.
type FacilityRepository struct {
	mock.Mock
}

func (m *FacilityRepository) CreatePhase(ctx context.Context, phase *facility.Phase) error {
	args := m.Called(ctx, phase)
	return args.Error(0)
}

func (m *FacilityRepository) GetPhase(ctx context.Context, id string) (*facility.Phase, error) {
	args := m.Called(ctx, id)
	if phase, ok := args.Get(0).(*facility.Phase); ok {
		return phase, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FacilityRepository) ListPhases(ctx context.Context) ([]facility.Phase, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]facility.Phase); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FacilityRepository) CreateCategory(ctx context.Context, cat *facility.Category) error {
	args := m.Called(ctx, cat)
	return args.Error(0)
}

func (m *FacilityRepository) GetCategory(ctx context.Context, id string) (*facility.Category, error) {
	args := m.Called(ctx, id)
	if cat, ok := args.Get(0).(*facility.Category); ok {
		return cat, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FacilityRepository) ListCategories(ctx context.Context) ([]facility.Category, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]facility.Category); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FacilityRepository) CreateTask(ctx context.Context, task *facility.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *FacilityRepository) GetTask(ctx context.Context, id string) (*facility.Task, error) {
	args := m.Called(ctx, id)
	if task, ok := args.Get(0).(*facility.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FacilityRepository) ListTasks(ctx context.Context) ([]facility.Task, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]facility.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FacilityRepository) RenameTask(ctx context.Context, id, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *FacilityRepository) DeleteTask(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// EntryRepository is a mock for logbook.Repository.
type EntryRepository struct {
	mock.Mock
}

func (m *EntryRepository) Get(ctx context.Context, id string) (*logbook.Entry, error) {
	args := m.Called(ctx, id)
	if entry, ok := args.Get(0).(*logbook.Entry); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) ListByTask(ctx context.Context, taskID string) ([]logbook.Entry, error) {
	args := m.Called(ctx, taskID)
	if list, ok := args.Get(0).([]logbook.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) CreateWithCache(ctx context.Context, entry *logbook.Entry, cache *facility.CompletionCache) error {
	args := m.Called(ctx, entry, cache)
	return args.Error(0)
}

func (m *EntryRepository) DeleteWithCache(ctx context.Context, id string, cache *facility.CompletionCache) error {
	args := m.Called(ctx, id, cache)
	return args.Error(0)
}

// SnapshotRepository is a mock for board.SnapshotRepository.
type SnapshotRepository struct {
	mock.Mock
}

func (m *SnapshotRepository) FetchAll(ctx context.Context) (*board.Snapshot, error) {
	args := m.Called(ctx)
	if snap, ok := args.Get(0).(*board.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
