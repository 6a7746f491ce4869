package activity

import "context"

// Repository provides persistence operations for activity entries.
type Repository interface {
	Log(ctx context.Context, entry *ActivityEntry) error
	List(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error)
}

// Sink is the write half of Repository, used by services that only record activity.
type Sink interface {
	Log(ctx context.Context, entry *ActivityEntry) error
}
