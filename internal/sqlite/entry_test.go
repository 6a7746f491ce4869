package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/upkeep/internal/domain/facility"
	"github.com/rpggio/upkeep/internal/domain/logbook"
	"github.com/rpggio/upkeep/internal/domain/status"
	"github.com/rpggio/upkeep/internal/repository"
	"github.com/stretchr/testify/require"
)

func newEntry(id, taskID string, ts time.Time) *logbook.Entry {
	return &logbook.Entry{ID: id, TaskID: taskID, Timestamp: ts}
}

func TestEntryRepository_CreateWithCache(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	tasks := seedFacility(t, db)
	repo := NewEntryRepository(db)

	ts := time.Date(2024, 4, 28, 9, 30, 0, 0, time.UTC)
	runTime := 30.5
	notes := "ran under load"
	entry := newEntry("e1", "t2", ts)
	entry.RunTime = &runTime
	entry.Notes = &notes

	cache := &facility.CompletionCache{TaskID: "t2", LastCompleted: &ts, Status: status.OnSchedule}
	require.NoError(t, repo.CreateWithCache(ctx, entry, cache))

	got, err := repo.Get(ctx, "e1")
	require.NoError(t, err)
	require.True(t, ts.Equal(got.Timestamp))
	require.Equal(t, 30.5, *got.RunTime)
	require.Equal(t, notes, *got.Notes)
	require.Nil(t, got.Category)

	task, err := tasks.GetTask(ctx, "t2")
	require.NoError(t, err)
	require.NotNil(t, task.LastCompleted)
	require.True(t, ts.Equal(*task.LastCompleted))
	require.Equal(t, status.OnSchedule, task.Status)
}

func TestEntryRepository_CreateRollsBackOnCacheFailure(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	seedFacility(t, db)
	repo := NewEntryRepository(db)

	ts := time.Now()
	cache := &facility.CompletionCache{TaskID: "missing", LastCompleted: &ts, Status: status.OnSchedule}
	err := repo.CreateWithCache(ctx, newEntry("e1", "t1", ts), cache)
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Get(ctx, "e1")
	require.ErrorIs(t, err, repository.ErrNotFound, "entry insert must roll back")
}

func TestEntryRepository_CreateForMissingTask(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEntryRepository(db)

	err := repo.CreateWithCache(context.Background(), newEntry("e1", "ghost", time.Now()), nil)
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}

func TestEntryRepository_ListByTaskNewestFirst(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	seedFacility(t, db)
	repo := NewEntryRepository(db)

	base := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateWithCache(ctx, newEntry("old", "t1", base), nil))
	require.NoError(t, repo.CreateWithCache(ctx, newEntry("new", "t1", base.Add(48*time.Hour)), nil))
	require.NoError(t, repo.CreateWithCache(ctx, newEntry("mid", "t1", base.Add(time.Hour+500*time.Millisecond)), nil))
	require.NoError(t, repo.CreateWithCache(ctx, newEntry("other", "t2", base), nil))

	entries, err := repo.ListByTask(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "new", entries[0].ID)
	require.Equal(t, "mid", entries[1].ID)
	require.Equal(t, "old", entries[2].ID)
}

func TestEntryRepository_DeleteWithCache(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	tasks := seedFacility(t, db)
	repo := NewEntryRepository(db)

	ts := time.Date(2024, 4, 28, 9, 30, 0, 0, time.UTC)
	require.NoError(t, repo.CreateWithCache(ctx, newEntry("e1", "t1", ts),
		&facility.CompletionCache{TaskID: "t1", LastCompleted: &ts, Status: status.OnSchedule}))

	require.NoError(t, repo.DeleteWithCache(ctx, "e1",
		&facility.CompletionCache{TaskID: "t1", Status: status.NoEntries}))

	task, err := tasks.GetTask(ctx, "t1")
	require.NoError(t, err)
	require.Nil(t, task.LastCompleted)
	require.Equal(t, status.NoEntries, task.Status)

	require.ErrorIs(t, repo.DeleteWithCache(ctx, "e1", nil), repository.ErrNotFound)
}

// TestLogbookOverSQLite walks a weekly task through log and delete with the
// real storage layer underneath.
func TestLogbookOverSQLite(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	tasks := seedFacility(t, db)
	entries := NewEntryRepository(db)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := logbook.NewService(entries, tasks, NewActivityRepository(db), nil)
	svc.Clock = func() time.Time { return now }

	runTime := 25.0
	logged := now.Add(-3 * 24 * time.Hour)
	entry, err := svc.Log(ctx, logbook.LogRequest{TaskID: "t2", Timestamp: &logged, RunTime: &runTime})
	require.NoError(t, err)

	st, err := svc.TaskStatus(ctx, "t2")
	require.NoError(t, err)
	require.Equal(t, status.OnSchedule, st.Result.Status)
	require.Equal(t, "4d left", st.Result.Remaining)

	res, err := svc.Delete(ctx, entry.ID)
	require.NoError(t, err)
	require.True(t, res.Deleted)
	require.Equal(t, status.NoEntries, res.Status)
	require.Equal(t, status.PendingLabel, res.Remaining)

	task, err := tasks.GetTask(ctx, "t2")
	require.NoError(t, err)
	require.Nil(t, task.LastCompleted)
	require.Equal(t, status.NoEntries, task.Status)

	again, err := svc.Delete(ctx, entry.ID)
	require.NoError(t, err)
	require.False(t, again.Deleted)
}
