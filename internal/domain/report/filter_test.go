package report_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/rpggio/upkeep/internal/domain/board"
	"github.com/rpggio/upkeep/internal/domain/facility"
	"github.com/rpggio/upkeep/internal/domain/logbook"
	"github.com/rpggio/upkeep/internal/domain/report"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func date(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func fixture() board.Snapshot {
	return board.Snapshot{
		Phases: []facility.Phase{{ID: "p1", Name: "Phase 1"}, {ID: "p2", Name: "Phase 2"}},
		Categories: []facility.Category{
			{ID: "c1", Name: "Exit Signs", PhaseID: ptr("p1")},
			{ID: "c2", Name: "Sump Pumps", PhaseID: ptr("p2")},
			{ID: "g", Name: "Generator East"},
		},
		Tasks: []facility.Task{
			{ID: "t1", Name: "Monthly Battery Test", CategoryID: "c1", RecurrenceType: "monthly"},
			{ID: "t2", Name: "Pump Check", CategoryID: "c2", RecurrenceType: "quarterly"},
			{ID: "t3", Name: "Weekly Test", CategoryID: "g", RecurrenceType: "weekly"},
			{ID: "t4", Name: "annual service", CategoryID: "g", RecurrenceType: "annual"},
		},
		Entries: []logbook.Entry{
			{ID: "e1", TaskID: "t1", Timestamp: date(2024, 3, 1, 9, 0)},
			{ID: "e2", TaskID: "t1", Timestamp: date(2024, 3, 31, 23, 30)},
			{ID: "e3", TaskID: "t2", Timestamp: date(2024, 3, 15, 12, 0)},
			{ID: "e4", TaskID: "t3", Timestamp: date(2024, 4, 1, 0, 0)},
			{ID: "e5", TaskID: "gone", Timestamp: date(2024, 3, 20, 8, 0)},
		},
	}
}

func entryIDs(rows []report.Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.EntryID)
	}
	return out
}

func TestRange_EndDateIncludesWholeDay(t *testing.T) {
	period := report.NewPeriod(date(2024, 3, 1, 0, 0), date(2024, 3, 31, 0, 0))

	rows := report.Range(fixture(), report.All, period)
	require.Equal(t, []string{"e2", "e5", "e3", "e1"}, entryIDs(rows))

	narrow := report.NewPeriod(date(2024, 3, 2, 0, 0), date(2024, 3, 31, 0, 0))
	require.NotContains(t, entryIDs(report.Range(fixture(), report.All, narrow)), "e1")
}

func TestRange_EndDayBoundaryToTheSecond(t *testing.T) {
	lastSecond := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	snap := fixture()
	snap.Entries = []logbook.Entry{
		{ID: "first", TaskID: "t1", Timestamp: date(2024, 3, 1, 0, 0)},
		{ID: "last", TaskID: "t1", Timestamp: lastSecond},
		{ID: "after", TaskID: "t1", Timestamp: lastSecond.Add(time.Second)},
		{ID: "before", TaskID: "t1", Timestamp: date(2024, 3, 1, 0, 0).Add(-time.Second)},
	}

	period := report.NewPeriod(date(2024, 3, 1, 0, 0), date(2024, 3, 31, 0, 0))
	require.Equal(t, []string{"last", "first"}, entryIDs(report.Range(snap, report.All, period)))
	require.True(t, period.Contains(lastSecond))
	require.False(t, period.Contains(lastSecond.Add(time.Second)))
}

func TestRange_StartAfterEndIsEmpty(t *testing.T) {
	period := report.NewPeriod(date(2024, 4, 1, 0, 0), date(2024, 3, 1, 0, 0))
	rows := report.Range(fixture(), report.All, period)
	require.NotNil(t, rows)
	require.Empty(t, rows)
}

func TestRange_Scopes(t *testing.T) {
	period := report.NewPeriod(date(2024, 1, 1, 0, 0), date(2024, 12, 31, 0, 0))
	snap := fixture()

	tests := []struct {
		scope report.Scope
		want  []string
	}{
		{report.Scope{Kind: report.ScopePhase, ID: "p1"}, []string{"e2", "e1"}},
		{report.Scope{Kind: report.ScopeCategory, ID: "c2"}, []string{"e3"}},
		{report.Scope{Kind: report.ScopeTask, ID: "t3"}, []string{"e4"}},
		{report.Scope{Kind: report.ScopeGenerators}, []string{"e4"}},
		{report.All, []string{"e4", "e2", "e5", "e3", "e1"}},
	}
	for _, tt := range tests {
		t.Run(tt.scope.Label(), func(t *testing.T) {
			require.Equal(t, tt.want, entryIDs(report.Range(snap, tt.scope, period)))
		})
	}
}

func TestRange_Labels(t *testing.T) {
	period := report.NewPeriod(date(2024, 1, 1, 0, 0), date(2024, 12, 31, 0, 0))
	rows := report.Range(fixture(), report.All, period)

	byID := make(map[string]report.Row)
	for _, r := range rows {
		byID[r.EntryID] = r
	}
	require.Equal(t, "Phase 1", byID["e1"].Phase)
	require.Equal(t, "Exit Signs", byID["e1"].Category)
	require.Equal(t, board.GeneratorLabel, byID["e4"].Phase)
	require.Equal(t, board.UnknownTask, byID["e5"].Task)
	require.Equal(t, board.NoCategoryLabel, byID["e5"].Category)
}

func TestTaskHistory_LimitAndOrder(t *testing.T) {
	snap := board.Snapshot{}
	base := date(2024, 1, 1, 8, 0)
	for i := 0; i < 30; i++ {
		snap.Entries = append(snap.Entries, logbook.Entry{
			ID:        fmt.Sprintf("e%02d", i),
			TaskID:    "t1",
			Timestamp: base.AddDate(0, 0, i),
		})
	}
	snap.Entries = append(snap.Entries, logbook.Entry{ID: "other", TaskID: "t2", Timestamp: base.AddDate(1, 0, 0)})

	history := report.TaskHistory(snap, "t1", 0)
	require.Len(t, history, report.DefaultTaskHistoryLimit)
	require.Equal(t, "e29", history[0].ID)
	for i := 1; i < len(history); i++ {
		require.False(t, history[i].Timestamp.After(history[i-1].Timestamp))
	}

	require.Len(t, report.TaskHistory(snap, "t1", 5), 5)
	require.Empty(t, report.TaskHistory(snap, "nobody", 0))
}

func TestPhaseActivity_Limit(t *testing.T) {
	snap := fixture()
	base := date(2023, 1, 1, 8, 0)
	for i := 0; i < 60; i++ {
		snap.Entries = append(snap.Entries, logbook.Entry{
			ID:        fmt.Sprintf("bulk%02d", i),
			TaskID:    "t1",
			Timestamp: base.AddDate(0, 0, i),
		})
	}

	rows := report.PhaseActivity(snap, "p1", 0)
	require.Len(t, rows, report.DefaultActivityLimit)
	require.Equal(t, "e2", rows[0].EntryID)
	require.Empty(t, report.PhaseActivity(snap, "nope", 0))
}

func TestCompliance(t *testing.T) {
	period := report.NewPeriod(date(2024, 3, 10, 0, 0), date(2024, 3, 31, 0, 0))
	rows := report.Compliance(fixture(), report.All, period)

	var names []string
	for _, r := range rows {
		names = append(names, r.Task)
	}
	require.Equal(t, []string{"annual service", "Monthly Battery Test", "Pump Check", "Weekly Test"}, names)

	require.Equal(t, report.ComplianceMissing, rows[0].Status)
	require.Nil(t, rows[0].LastInRange)
	require.Equal(t, report.ComplianceOK, rows[1].Status)
	require.Equal(t, "e2", rows[1].LastInRange.ID)
	require.Equal(t, report.ComplianceOK, rows[2].Status)
	require.Equal(t, report.ComplianceMissing, rows[3].Status)

	ok, missing := report.Tally(rows)
	require.Equal(t, 2, ok)
	require.Equal(t, 2, missing)

	gens := report.Compliance(fixture(), report.Scope{Kind: report.ScopeGenerators}, period)
	require.Len(t, gens, 2)
}

func TestParseScope(t *testing.T) {
	s, err := report.ParseScope("", "")
	require.NoError(t, err)
	require.Equal(t, report.All, s)

	s, err = report.ParseScope(" Phase ", "p1")
	require.NoError(t, err)
	require.Equal(t, report.Scope{Kind: report.ScopePhase, ID: "p1"}, s)
	require.Equal(t, "phase-p1", s.Label())

	_, err = report.ParseScope("task", "")
	require.ErrorIs(t, err, report.ErrInvalidScope)
	_, err = report.ParseScope("building", "x")
	require.ErrorIs(t, err, report.ErrInvalidScope)
}

func TestParseDate(t *testing.T) {
	d, err := report.ParseDate("2024-03-31", time.UTC)
	require.NoError(t, err)
	require.Equal(t, date(2024, 3, 31, 0, 0), *d)

	d, err = report.ParseDate("  ", time.UTC)
	require.NoError(t, err)
	require.Nil(t, d)

	_, err = report.ParseDate("03/31/2024", time.UTC)
	require.ErrorIs(t, err, report.ErrInvalidRange)
}
