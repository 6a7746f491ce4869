package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/upkeep/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	entry1 := &activity.ActivityEntry{
		ActivityType: activity.TypeTaskAdded,
		Actor:        "jan",
		Summary:      "added task",
	}
	entry2 := &activity.ActivityEntry{
		ActivityType: activity.TypeEntryLogged,
		Summary:      "logged entry",
		Details:      `{"run_time":30}`,
	}

	require.NoError(t, repo.Log(ctx, entry1))
	require.NoError(t, repo.Log(ctx, entry2))
	require.NotZero(t, entry1.ID)

	entries, err := repo.List(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, entry2.ActivityType, entries[0].ActivityType)
	require.Equal(t, activity.DefaultActor, entries[0].Actor)
	require.Equal(t, "jan", entries[1].Actor)
}

func TestActivityRepository_Filters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	taskID := "t1"
	entryID := "e1"
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeEntryLogged,
		TaskID:       &taskID,
		EntryID:      &entryID,
		Summary:      "logged",
	}))
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypePhaseAdded,
		Summary:      "added phase",
	}))

	activityType := activity.TypeEntryLogged
	entries, err := repo.List(ctx, activity.ListActivityOptions{TaskID: &taskID, ActivityType: &activityType})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, entryID, *entries[0].EntryID)

	entries, err = repo.List(ctx, activity.ListActivityOptions{Offset: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, activity.TypeEntryLogged, entries[0].ActivityType)

	entries, err = repo.List(ctx, activity.ListActivityOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, activity.TypePhaseAdded, entries[0].ActivityType)
}
