package logbook

import (
	"context"

	"github.com/rpggio/upkeep/internal/domain/activity"
	"github.com/rpggio/upkeep/internal/domain/facility"
)

// Repository provides persistence for entries. Both write methods must apply
// the entry change and the task cache change in a single transaction.
type Repository interface {
	Get(ctx context.Context, id string) (*Entry, error)
	ListByTask(ctx context.Context, taskID string) ([]Entry, error)
	CreateWithCache(ctx context.Context, entry *Entry, cache *facility.CompletionCache) error
	DeleteWithCache(ctx context.Context, id string, cache *facility.CompletionCache) error
}

// TaskRepository loads the task an entry belongs to.
type TaskRepository interface {
	GetTask(ctx context.Context, id string) (*facility.Task, error)
}

// ActivityRepository logs entry activity.
type ActivityRepository interface {
	activity.Sink
}
