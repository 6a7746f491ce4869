package board

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Service reads snapshots and builds dashboard views from them.
type Service struct {
	repo   SnapshotRepository
	logger *slog.Logger

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// NewService creates a new board service.
func NewService(repo SnapshotRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, Clock: time.Now}
}

// Snapshot pulls every collection. Store failures are returned wrapped in
// ErrStoreUnavailable and never retried.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap, err := s.repo.FetchAll(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("snapshot fetch failed", "error", err)
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if snap == nil {
		snap = &Snapshot{}
	}
	return snap, nil
}

// Board builds the full dashboard.
func (s *Service) Board(ctx context.Context) (*View, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	view := Build(*snap, s.Now())
	if s.logger != nil {
		s.logger.Debug("board built",
			"phases", len(view.Phases),
			"generators", len(view.Generators),
			"tasks", len(snap.Tasks),
			"entries", len(snap.Entries))
	}
	return &view, nil
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}
