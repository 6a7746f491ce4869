package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSnapshotRepository_FetchAll(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	seedFacility(t, db)
	entries := NewEntryRepository(db)
	require.NoError(t, entries.CreateWithCache(ctx, newEntry("e1", "t1", time.Now()), nil))

	snap, err := NewSnapshotRepository(db).FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Phases, 1)
	require.Len(t, snap.Categories, 2)
	require.Len(t, snap.Tasks, 2)
	require.Len(t, snap.Entries, 1)
	require.Equal(t, "t1", snap.Entries[0].TaskID)
}

func TestSnapshotRepository_Empty(t *testing.T) {
	db := NewTestDB(t)

	snap, err := NewSnapshotRepository(db).FetchAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap.Phases)
	require.Empty(t, snap.Phases)
	require.Empty(t, snap.Entries)
}
