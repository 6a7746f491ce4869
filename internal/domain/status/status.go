package status

import (
	"fmt"
	"math"
	"time"

	"github.com/rpggio/upkeep/internal/domain/recurrence"
)

// Status is the derived compliance state of a task.
type Status string

const (
	NoEntries  Status = "no_entries"
	OnSchedule Status = "on_schedule"
	DueSoon    Status = "due_soon"
	Overdue    Status = "overdue"
)

// PendingLabel is shown for tasks that have never been logged.
const PendingLabel = "Pending"

// OverdueLabel is shown once no days remain.
const OverdueLabel = "Overdue"

const day = 24 * time.Hour

// Urgency ranks statuses so callers can compare them; higher is more urgent.
func (s Status) Urgency() int {
	switch s {
	case OnSchedule:
		return 1
	case DueSoon:
		return 2
	case Overdue:
		return 3
	default:
		return 0
	}
}

// Label returns a display label for the status.
func (s Status) Label() string {
	switch s {
	case OnSchedule:
		return "On schedule"
	case DueSoon:
		return "Due soon"
	case Overdue:
		return "Overdue"
	default:
		return "No entries"
	}
}

// Result bundles everything the presentation layer needs about one task.
type Result struct {
	Status      Status            `json:"status"`
	Label       string            `json:"label"`
	Remaining   string            `json:"remaining"`
	ElapsedDays *int              `json:"elapsed_days,omitempty"`
	Policy      recurrence.Policy `json:"policy"`
}

// ElapsedDays returns whole days between last and now using pure duration.
func ElapsedDays(last, now time.Time) int {
	return int(math.Floor(float64(now.Sub(last)) / float64(day)))
}

// Compute derives the status of a task last completed at last.
// Both thresholds are inclusive: reaching warn days is DueSoon and reaching
// due days is Overdue.
func Compute(last *time.Time, recurrenceType string, now time.Time) Status {
	if last == nil {
		return NoEntries
	}
	p := recurrence.Resolve(recurrenceType)
	elapsed := ElapsedDays(*last, now)
	switch {
	case elapsed >= p.DueDays:
		return Overdue
	case elapsed >= p.WarnDays:
		return DueSoon
	default:
		return OnSchedule
	}
}

// RemainingLabel renders how many days remain until the task falls due.
func RemainingLabel(last *time.Time, recurrenceType string, now time.Time) string {
	if last == nil {
		return PendingLabel
	}
	p := recurrence.Resolve(recurrenceType)
	remaining := p.DueDays - ElapsedDays(*last, now)
	if remaining <= 0 {
		return OverdueLabel
	}
	return fmt.Sprintf("%dd left", remaining)
}

// Evaluate computes status, remaining label and policy in one pass.
func Evaluate(last *time.Time, recurrenceType string, now time.Time) Result {
	st := Compute(last, recurrenceType, now)
	res := Result{
		Status:    st,
		Label:     st.Label(),
		Remaining: RemainingLabel(last, recurrenceType, now),
		Policy:    recurrence.Resolve(recurrenceType),
	}
	if last != nil {
		elapsed := ElapsedDays(*last, now)
		res.ElapsedDays = &elapsed
	}
	return res
}
