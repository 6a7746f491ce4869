package export

import (
	"strconv"
	"time"

	"github.com/rpggio/upkeep/internal/domain/report"
)

// EntryStatus is the status column value of every backed-up entry.
const EntryStatus = "Completed"

func formatDate(loc *time.Location) func(time.Time) string {
	if loc == nil {
		loc = time.UTC
	}
	return func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.In(loc).Format(time.DateOnly)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func minutes(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// BackupColumns covers the full entry set.
func BackupColumns(loc *time.Location) []Column[report.Row] {
	day := formatDate(loc)
	return []Column[report.Row]{
		{Header: "Date", Value: func(r report.Row) string { return day(r.Date) }},
		{Header: "Task Name", Value: func(r report.Row) string { return r.Task }},
		{Header: "Category ID", Value: func(r report.Row) string { return r.CategoryID }},
		{Header: "Status", Value: func(report.Row) string { return EntryStatus }},
		{Header: "Notes", Value: func(r report.Row) string { return deref(r.Notes) }},
	}
}

// RangeColumns covers a range report.
func RangeColumns(loc *time.Location) []Column[report.Row] {
	day := formatDate(loc)
	return []Column[report.Row]{
		{Header: "Date", Value: func(r report.Row) string { return day(r.Date) }},
		{Header: "Phase", Value: func(r report.Row) string { return r.Phase }},
		{Header: "Category", Value: func(r report.Row) string { return r.Category }},
		{Header: "Task", Value: func(r report.Row) string { return r.Task }},
		{Header: "Run Time (min)", Value: func(r report.Row) string { return minutes(r.RunTime) }},
		{Header: "Notes", Value: func(r report.Row) string { return deref(r.Notes) }},
	}
}

// ComplianceColumns covers a compliance report.
func ComplianceColumns(loc *time.Location) []Column[report.ComplianceRow] {
	day := formatDate(loc)
	return []Column[report.ComplianceRow]{
		{Header: "System / Task", Value: func(r report.ComplianceRow) string { return r.Task }},
		{Header: "Phase", Value: func(r report.ComplianceRow) string { return r.Phase }},
		{Header: "Category", Value: func(r report.ComplianceRow) string { return r.Category }},
		{Header: "Frequency", Value: func(r report.ComplianceRow) string { return r.RecurrenceType }},
		{Header: "Last Inspection (In Range)", Value: func(r report.ComplianceRow) string {
			if r.LastInRange == nil {
				return report.NoRecordInRange
			}
			return day(r.LastInRange.Timestamp)
		}},
		{Header: "Status", Value: func(r report.ComplianceRow) string { return r.Status }},
	}
}
