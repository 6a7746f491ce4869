package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypePhaseAdded    ActivityType = "phase_added"
	TypeCategoryAdded ActivityType = "category_added"
	TypeTaskAdded     ActivityType = "task_added"
	TypeTaskRenamed   ActivityType = "task_renamed"
	TypeTaskDeleted   ActivityType = "task_deleted"
	TypeEntryLogged   ActivityType = "entry_logged"
	TypeEntryDeleted  ActivityType = "entry_deleted"
)

// ActivityEntry represents an event in the activity trail
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ActivityType ActivityType `json:"type"`
	Actor        string       `json:"actor"`
	TaskID       *string      `json:"task_id,omitempty"`
	EntryID      *string      `json:"entry_id,omitempty"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
