package facility

import (
	"time"

	"github.com/rpggio/upkeep/internal/domain/status"
)

// GeneratorsTab names the dashboard tab holding categories outside any phase.
const GeneratorsTab = "Generators"

// Phase is a top-level building zone grouping categories.
type Phase struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Category groups related tasks. A nil PhaseID marks a standalone
// generator-style category.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PhaseID   *string   `json:"phase_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Ungrouped reports whether the category sits outside the phase hierarchy.
func (c Category) Ungrouped() bool {
	return c.PhaseID == nil
}

// Task is a recurring maintenance activity.
//
// LastCompleted and Status are a denormalized cache maintained by the
// logbook. They are hints for storage-side queries only; status is always
// recomputed from entries when it matters.
type Task struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	CategoryID     string        `json:"category_id"`
	RecurrenceType string        `json:"recurrence_type"`
	RequiresTime   bool          `json:"requires_time"`
	LastCompleted  *time.Time    `json:"last_completed,omitempty"`
	Status         status.Status `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}

// CompletionCache is the denormalized completion state written back onto a task.
type CompletionCache struct {
	TaskID        string
	LastCompleted *time.Time
	Status        status.Status
}
