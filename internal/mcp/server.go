package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/rpggio/upkeep/internal/domain/activity"
	"github.com/rpggio/upkeep/internal/domain/board"
	"github.com/rpggio/upkeep/internal/domain/facility"
	"github.com/rpggio/upkeep/internal/domain/logbook"
	"github.com/rpggio/upkeep/internal/domain/report"
	"github.com/rpggio/upkeep/internal/export"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// BoardService defines dashboard reads needed by MCP.
type BoardService interface {
	Board(ctx context.Context) (*board.View, error)
}

// LogbookService defines entry operations needed by MCP.
type LogbookService interface {
	Log(ctx context.Context, req logbook.LogRequest) (*logbook.Entry, error)
	Delete(ctx context.Context, id string) (*logbook.DeleteResult, error)
	TaskStatus(ctx context.Context, taskID string) (*logbook.TaskStatus, error)
}

// ReportService defines history and report queries needed by MCP.
type ReportService interface {
	TaskHistory(ctx context.Context, taskID string, limit int) ([]logbook.Entry, error)
	PhaseActivity(ctx context.Context, phaseID string, limit int) ([]report.Row, error)
	Activity(ctx context.Context, scope report.Scope, limit int) ([]report.Row, error)
	Range(ctx context.Context, req report.RangeRequest) (*report.RangeReport, error)
	Compliance(ctx context.Context, req report.RangeRequest) (*report.ComplianceReport, error)
	Location() *time.Location
}

// FacilityService defines management commands needed by MCP.
type FacilityService interface {
	AddPhase(ctx context.Context, req facility.AddPhaseRequest) (*facility.Phase, error)
	AddCategory(ctx context.Context, req facility.AddCategoryRequest) (*facility.Category, error)
	AddTask(ctx context.Context, req facility.AddTaskRequest) (*facility.Task, error)
	RenameTask(ctx context.Context, id, name string) (*facility.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// ExportService defines CSV rendering needed by MCP.
type ExportService interface {
	Export(ctx context.Context, req export.Request) (*export.File, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Board    BoardService
	Logbook  LogbookService
	Reports  ReportService
	Facility FacilityService
	Exports  ExportService
	Activity ActivityService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      ActorResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	Version       string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "upkeep",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio mode is local-only and never authenticates.
	if cfg.TransportMode != "stdio" && cfg.AuthEnabled {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	} else {
		server.AddReceivingMiddleware(noAuthMiddleware(activity.DefaultActor))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services, cfg.Logger)

	return server
}
