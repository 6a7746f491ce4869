package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/upkeep/internal/domain/board"
	"github.com/rpggio/upkeep/internal/domain/facility"
	"github.com/rpggio/upkeep/internal/domain/logbook"
)

// Service answers history and report queries against fresh snapshots.
type Service struct {
	repo     board.SnapshotRepository
	logger   *slog.Logger
	location *time.Location

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// NewService creates a new report service. Calendar dates are interpreted
// in loc; nil means UTC.
func NewService(repo board.SnapshotRepository, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, logger: logger, location: loc, Clock: time.Now}
}

// RangeRequest selects a scope and an optional calendar period. Missing
// dates default to the past year ending today.
type RangeRequest struct {
	Scope Scope
	Start *time.Time
	End   *time.Time
}

// Location returns the time zone used for calendar dates.
func (s *Service) Location() *time.Location {
	return s.location
}

// Period resolves a request's dates against the service clock.
func (s *Service) Period(req RangeRequest) Period {
	now := s.now().In(s.location)
	def := PastYear(now)
	start, end := def.Start, def.End
	if req.End != nil {
		end = req.End.In(s.location)
		if req.Start == nil {
			start = end.AddDate(-1, 0, 0)
		}
	}
	if req.Start != nil {
		start = req.Start.In(s.location)
	}
	return NewPeriod(start, end)
}

// TaskHistory returns a task's most recent entries.
func (s *Service) TaskHistory(ctx context.Context, taskID string, limit int) ([]logbook.Entry, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := board.NewIndex(*snap).Task(taskID); !ok {
		return nil, facility.ErrTaskNotFound
	}
	return TaskHistory(*snap, taskID, limit), nil
}

// PhaseActivity returns the most recent entries across a phase.
func (s *Service) PhaseActivity(ctx context.Context, phaseID string, limit int) ([]Row, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := board.NewIndex(*snap).Phase(phaseID); !ok {
		return nil, facility.ErrPhaseNotFound
	}
	return PhaseActivity(*snap, phaseID, limit), nil
}

// Activity returns the most recent entries within any scope.
func (s *Service) Activity(ctx context.Context, scope Scope, limit int) ([]Row, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return Activity(*snap, scope, limit), nil
}

// Range runs a range report.
func (s *Service) Range(ctx context.Context, req RangeRequest) (*RangeReport, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	period := s.Period(req)
	rows := Range(*snap, req.Scope, period)
	s.debug("range report", "scope", req.Scope.Label(), "period", period.String(), "rows", len(rows))
	return &RangeReport{Scope: normalize(req.Scope), Period: period, Rows: rows}, nil
}

// Compliance runs a compliance report.
func (s *Service) Compliance(ctx context.Context, req RangeRequest) (*ComplianceReport, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	period := s.Period(req)
	rows := Compliance(*snap, req.Scope, period)
	ok, missing := Tally(rows)
	s.debug("compliance report", "scope", req.Scope.Label(), "period", period.String(), "ok", ok, "missing", missing)
	return &ComplianceReport{
		Scope:   normalize(req.Scope),
		Period:  period,
		Rows:    rows,
		OK:      ok,
		Missing: missing,
	}, nil
}

// Backup returns every entry, labelled, newest first.
func (s *Service) Backup(ctx context.Context) ([]Row, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return rows(*snap, All, nil), nil
}

func (s *Service) snapshot(ctx context.Context) (*board.Snapshot, error) {
	snap, err := s.repo.FetchAll(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("snapshot fetch failed", "error", err)
		}
		return nil, fmt.Errorf("%w: %w", board.ErrStoreUnavailable, err)
	}
	if snap == nil {
		snap = &board.Snapshot{}
	}
	return snap, nil
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

func (s *Service) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func normalize(scope Scope) Scope {
	if scope.Kind == "" {
		return All
	}
	return scope
}
