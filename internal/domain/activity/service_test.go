package activity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/upkeep/internal/domain/activity"
	"github.com/rpggio/upkeep/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_LogAndList(t *testing.T) {
	ctx := activity.WithActor(context.Background(), "dana")

	repo := &mocks.ActivityRepository{}
	entry := &activity.ActivityEntry{
		ActivityType: activity.TypeTaskAdded,
		Summary:      "added task",
	}

	repo.On("Log", ctx, entry).Return(nil)
	repo.On("List", ctx, activity.ListActivityOptions{Limit: 50}).Return([]activity.ActivityEntry{}, nil)

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.LogActivity(ctx, entry))
	require.Equal(t, "dana", entry.Actor)
	require.False(t, entry.CreatedAt.IsZero())

	_, err := svc.GetRecentActivity(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestActivityService_LogInvalid(t *testing.T) {
	svc := activity.NewService(&mocks.ActivityRepository{}, nil)
	require.ErrorIs(t, svc.LogActivity(context.Background(), nil), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.LogActivity(context.Background(), &activity.ActivityEntry{}), activity.ErrInvalidInput)
}

func TestRecord_SwallowsFailures(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	repo.On("Log", ctx, mock.Anything).Return(errors.New("disk full"))

	entry := &activity.ActivityEntry{ActivityType: activity.TypeEntryLogged}
	activity.Record(ctx, repo, nil, entry)
	require.Equal(t, activity.DefaultActor, entry.Actor)
	repo.AssertExpectations(t)
}
