package board

import "context"

// SnapshotRepository is the read boundary: one full pull of every collection.
type SnapshotRepository interface {
	FetchAll(ctx context.Context) (*Snapshot, error)
}
