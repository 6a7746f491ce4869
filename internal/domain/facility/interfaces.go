package facility

import (
	"context"

	"github.com/rpggio/upkeep/internal/domain/activity"
)

// Repository provides persistence for phases, categories and tasks.
type Repository interface {
	CreatePhase(ctx context.Context, phase *Phase) error
	GetPhase(ctx context.Context, id string) (*Phase, error)
	ListPhases(ctx context.Context) ([]Phase, error)
	CreateCategory(ctx context.Context, cat *Category) error
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasks(ctx context.Context) ([]Task, error)
	RenameTask(ctx context.Context, id, name string) error
	DeleteTask(ctx context.Context, id string) error
}

// ActivityRepository logs management activity.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}
