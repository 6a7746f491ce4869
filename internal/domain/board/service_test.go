package board_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpggio/upkeep/internal/domain/board"
	"github.com/rpggio/upkeep/internal/domain/facility"
	"github.com/rpggio/upkeep/internal/domain/logbook"
	"github.com/rpggio/upkeep/internal/domain/status"
	"github.com/rpggio/upkeep/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

func TestBoardService_Board(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.SnapshotRepository{}
	repo.On("FetchAll", ctx).Return(&board.Snapshot{
		Categories: []facility.Category{{ID: "g", Name: "Generator East"}},
		Tasks:      []facility.Task{{ID: "t1", Name: "Weekly Test", CategoryID: "g", RecurrenceType: "weekly"}},
		Entries:    []logbook.Entry{{ID: "e1", TaskID: "t1", Timestamp: at(-6)}},
	}, nil)

	svc := board.NewService(repo, nil)
	svc.Clock = func() time.Time { return now }

	view, err := svc.Board(ctx)
	require.NoError(t, err)
	require.Len(t, view.Generators, 1)
	tv := view.Generators[0].Tasks[0]
	require.Equal(t, "t1", tv.Task.ID)
	require.Equal(t, status.DueSoon, tv.Result.Status)
	require.Equal(t, "1d left", tv.Result.Remaining)

	_, ok := view.Tab("Phase 9")
	require.False(t, ok)
}

func TestBoardService_StoreUnavailable(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("disk I/O error")

	repo := &mocks.SnapshotRepository{}
	repo.On("FetchAll", ctx).Return((*board.Snapshot)(nil), cause)

	svc := board.NewService(repo, nil)
	_, err := svc.Board(ctx)
	require.ErrorIs(t, err, board.ErrStoreUnavailable)
	require.ErrorIs(t, err, cause)
	repo.AssertNumberOfCalls(t, "FetchAll", 1)
}
