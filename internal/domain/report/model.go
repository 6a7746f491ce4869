package report

import (
	"time"

	"github.com/rpggio/upkeep/internal/domain/logbook"
)

// Default result caps for history panels.
const (
	DefaultTaskHistoryLimit = 20
	DefaultActivityLimit    = 50
)

// Compliance statuses.
const (
	ComplianceOK      = "OK"
	ComplianceMissing = "Missing"
	NoRecordInRange   = "No record in range"
)

// Row is one entry labelled with its place in the hierarchy.
type Row struct {
	EntryID    string    `json:"entry_id"`
	Date       time.Time `json:"date"`
	TaskID     string    `json:"task_id"`
	Task       string    `json:"task"`
	CategoryID string    `json:"category_id,omitempty"`
	Category   string    `json:"category"`
	Phase      string    `json:"phase"`
	RunTime    *float64  `json:"run_time,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	Tag        *string   `json:"tag,omitempty"`
}

// ComplianceRow is one task's standing within a reporting period.
type ComplianceRow struct {
	TaskID         string         `json:"task_id"`
	Task           string         `json:"task"`
	Category       string         `json:"category"`
	Phase          string         `json:"phase"`
	RecurrenceType string         `json:"recurrence_type"`
	LastInRange    *logbook.Entry `json:"last_in_range,omitempty"`
	Status         string         `json:"status"`
}

// RangeReport is a range query and its rows.
type RangeReport struct {
	Scope  Scope  `json:"scope"`
	Period Period `json:"period"`
	Rows   []Row  `json:"rows"`
}

// ComplianceReport is the printable per-task inspection summary.
type ComplianceReport struct {
	Scope   Scope           `json:"scope"`
	Period  Period          `json:"period"`
	Rows    []ComplianceRow `json:"rows"`
	OK      int             `json:"ok"`
	Missing int             `json:"missing"`
}
