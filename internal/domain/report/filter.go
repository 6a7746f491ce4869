package report

import (
	"sort"
	"strings"

	"github.com/rpggio/upkeep/internal/domain/board"
	"github.com/rpggio/upkeep/internal/domain/logbook"
)

// TaskHistory returns a task's entries, newest first, capped at limit.
// A non-positive limit uses DefaultTaskHistoryLimit.
func TaskHistory(snap board.Snapshot, taskID string, limit int) []logbook.Entry {
	if limit <= 0 {
		limit = DefaultTaskHistoryLimit
	}
	var matched []logbook.Entry
	for _, e := range snap.Entries {
		if e.TaskID == taskID {
			matched = append(matched, e)
		}
	}
	return capEntries(logbook.SortNewestFirst(matched), limit)
}

// Activity returns labelled entries within a scope, newest first, capped
// at limit. A non-positive limit uses DefaultActivityLimit.
func Activity(snap board.Snapshot, scope Scope, limit int) []Row {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	rows := rows(snap, scope, nil)
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// PhaseActivity returns recent entries for every task in a phase.
func PhaseActivity(snap board.Snapshot, phaseID string, limit int) []Row {
	return Activity(snap, Scope{Kind: ScopePhase, ID: phaseID}, limit)
}

// Range returns labelled entries within scope and period, newest first.
// A period whose start falls after its end yields no rows.
func Range(snap board.Snapshot, scope Scope, period Period) []Row {
	if period.Empty() {
		return []Row{}
	}
	return rows(snap, scope, &period)
}

// Compliance lists every in-scope task with its most recent entry inside
// the period, marking tasks without one as missing. Rows are ordered by
// task name.
func Compliance(snap board.Snapshot, scope Scope, period Period) []ComplianceRow {
	idx := board.NewIndex(snap)
	grouped := logbook.GroupByTask(snap.Entries)

	out := []ComplianceRow{}
	for _, task := range snap.Tasks {
		loc := idx.Locate(task.ID)
		if !scope.Includes(loc) {
			continue
		}
		row := ComplianceRow{
			TaskID:         task.ID,
			Task:           task.Name,
			Category:       loc.Category,
			Phase:          loc.Phase,
			RecurrenceType: task.RecurrenceType,
			Status:         ComplianceMissing,
		}
		for _, e := range grouped[task.ID] {
			if period.Contains(e.Timestamp) {
				found := e
				row.LastInRange = &found
				row.Status = ComplianceOK
				break
			}
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Task), strings.ToLower(out[j].Task)
		if a != b {
			return a < b
		}
		return out[i].TaskID < out[j].TaskID
	})
	return out
}

// Tally counts OK and missing compliance rows.
func Tally(rows []ComplianceRow) (ok, missing int) {
	for _, r := range rows {
		if r.Status == ComplianceOK {
			ok++
		} else {
			missing++
		}
	}
	return ok, missing
}

func rows(snap board.Snapshot, scope Scope, period *Period) []Row {
	idx := board.NewIndex(snap)
	out := []Row{}
	for _, e := range logbook.SortNewestFirst(snap.Entries) {
		if period != nil && !period.Contains(e.Timestamp) {
			continue
		}
		loc := idx.Locate(e.TaskID)
		if !scope.Includes(loc) {
			continue
		}
		out = append(out, Row{
			EntryID:    e.ID,
			Date:       e.Timestamp,
			TaskID:     e.TaskID,
			Task:       loc.Task,
			CategoryID: loc.CategoryID,
			Category:   loc.Category,
			Phase:      loc.Phase,
			RunTime:    e.RunTime,
			Notes:      e.Notes,
			Tag:        e.Category,
		})
	}
	return out
}

func capEntries(entries []logbook.Entry, limit int) []logbook.Entry {
	if len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
