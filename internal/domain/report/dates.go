package report

import (
	"fmt"
	"strings"
	"time"
)

// Period is a calendar date range. End is inclusive through the whole day.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewPeriod builds a period from two calendar dates; times of day are
// dropped.
func NewPeriod(start, end time.Time) Period {
	return Period{Start: startOfDay(start), End: startOfDay(end)}
}

// PastYear is the default report period: the year up to and including today.
func PastYear(now time.Time) Period {
	return NewPeriod(now.AddDate(-1, 0, 0), now)
}

// Empty reports whether the period starts after it ends.
func (p Period) Empty() bool {
	return p.Start.After(p.End)
}

// Contains reports whether ts falls on or after Start and before the day
// following End.
func (p Period) Contains(ts time.Time) bool {
	if p.Empty() {
		return false
	}
	return !ts.Before(p.Start) && ts.Before(p.End.AddDate(0, 0, 1))
}

// String renders the period as two ISO dates.
func (p Period) String() string {
	return p.Start.Format(time.DateOnly) + " to " + p.End.Format(time.DateOnly)
}

// ParseDate parses a YYYY-MM-DD date in loc. A blank string yields nil.
func ParseDate(value string, loc *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidRange, value)
	}
	return &t, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
