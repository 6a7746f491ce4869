package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/upkeep/internal/domain/report"
)

// Kind selects which data set an export contains.
type Kind string

const (
	KindBackup     Kind = "backup"
	KindRange      Kind = "report"
	KindCompliance Kind = "compliance"
)

// ErrUnknownKind is returned for an export kind other than the three above.
var ErrUnknownKind = errors.New("unknown export kind")

// ContentType is the MIME type of every export.
const ContentType = "text/csv; charset=utf-8"

// Source supplies report rows.
type Source interface {
	Range(ctx context.Context, req report.RangeRequest) (*report.RangeReport, error)
	Compliance(ctx context.Context, req report.RangeRequest) (*report.ComplianceReport, error)
	Backup(ctx context.Context) ([]report.Row, error)
	Location() *time.Location
}

// Request describes one export.
type Request struct {
	Kind  Kind
	Range report.RangeRequest
	Quote bool
}

// File is a rendered export ready to download.
type File struct {
	Name        string `json:"filename"`
	ContentType string `json:"content_type"`
	Rows        int    `json:"rows"`
	Body        []byte `json:"-"`
}

// Service renders report data sets as CSV files.
type Service struct {
	source  Source
	context string
	logger  *slog.Logger

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// NewService creates an export service. backupContext prefixes backup
// filenames; empty means DefaultContext.
func NewService(source Source, backupContext string, logger *slog.Logger) *Service {
	if strings.TrimSpace(backupContext) == "" {
		backupContext = DefaultContext
	}
	return &Service{source: source, context: backupContext, logger: logger, Clock: time.Now}
}

// ParseKind validates an export kind. Empty means backup.
func ParseKind(value string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(value))); k {
	case "":
		return KindBackup, nil
	case KindBackup, KindRange, KindCompliance:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, value)
	}
}

// Export renders the requested data set.
func (s *Service) Export(ctx context.Context, req Request) (*File, error) {
	opts := DefaultOptions()
	if req.Quote {
		opts.Escaping = Quote
	}
	loc := s.source.Location()
	now := s.now().In(loc)

	var buf bytes.Buffer
	var rows int
	var name string

	switch req.Kind {
	case "", KindBackup:
		data, err := s.source.Backup(ctx)
		if err != nil {
			return nil, err
		}
		if err := Write(&buf, data, BackupColumns(loc), opts); err != nil {
			return nil, err
		}
		rows, name = len(data), Filename(s.context, now)

	case KindRange:
		rep, err := s.source.Range(ctx, req.Range)
		if err != nil {
			return nil, err
		}
		if err := Write(&buf, rep.Rows, RangeColumns(loc), opts); err != nil {
			return nil, err
		}
		rows, name = len(rep.Rows), Filename("maintenance_report_"+rep.Scope.Label(), now)

	case KindCompliance:
		rep, err := s.source.Compliance(ctx, req.Range)
		if err != nil {
			return nil, err
		}
		if err := Write(&buf, rep.Rows, ComplianceColumns(loc), opts); err != nil {
			return nil, err
		}
		rows, name = len(rep.Rows), Filename("compliance_report_"+rep.Scope.Label(), now)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}

	if s.logger != nil {
		s.logger.Info("export rendered", "kind", req.Kind, "filename", name, "rows", rows)
	}
	return &File{Name: name, ContentType: ContentType, Rows: rows, Body: buf.Bytes()}, nil
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}
