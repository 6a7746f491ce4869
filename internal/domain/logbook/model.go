package logbook

import (
	"sort"
	"time"
)

// Entry records one completed instance of a task. Entries are immutable
// once written; they can only be deleted.
type Entry struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Timestamp time.Time `json:"timestamp"`
	RunTime   *float64  `json:"run_time,omitempty"` // minutes
	Notes     *string   `json:"notes,omitempty"`
	Category  *string   `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// newerFirst orders entries by timestamp descending, then ID ascending so
// equal timestamps still sort deterministically.
func newerFirst(a, b Entry) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	return a.ID < b.ID
}

// SortNewestFirst returns a copy of entries ordered most recent first.
func SortNewestFirst(entries []Entry) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return newerFirst(sorted[i], sorted[j]) })
	return sorted
}

// Latest returns the entry with the greatest timestamp, or nil when there
// are none. It always agrees with the head of SortNewestFirst.
func Latest(entries []Entry) *Entry {
	var latest *Entry
	for i := range entries {
		if latest == nil || newerFirst(entries[i], *latest) {
			latest = &entries[i]
		}
	}
	if latest == nil {
		return nil
	}
	found := *latest
	return &found
}

// GroupByTask indexes entries by task ID, each group newest first.
func GroupByTask(entries []Entry) map[string][]Entry {
	grouped := make(map[string][]Entry)
	for _, e := range entries {
		grouped[e.TaskID] = append(grouped[e.TaskID], e)
	}
	for id, group := range grouped {
		grouped[id] = SortNewestFirst(group)
	}
	return grouped
}
