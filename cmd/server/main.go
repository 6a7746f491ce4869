package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rpggio/upkeep/internal/config"
	"github.com/rpggio/upkeep/internal/domain/activity"
	"github.com/rpggio/upkeep/internal/domain/board"
	"github.com/rpggio/upkeep/internal/domain/facility"
	"github.com/rpggio/upkeep/internal/domain/logbook"
	"github.com/rpggio/upkeep/internal/domain/report"
	"github.com/rpggio/upkeep/internal/export"
	"github.com/rpggio/upkeep/internal/mcp"
	"github.com/rpggio/upkeep/internal/sqlite"
	"github.com/rpggio/upkeep/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var version = "dev"

func main() {
	// A missing .env is normal; anything else is worth a warning.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "env file error: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == config.TransportStdio {
		logWriter = os.Stderr
	}
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	loc, err := cfg.Report.Location()
	if err != nil {
		logger.Error("invalid report timezone", "error", err)
		os.Exit(1)
	}

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(sqlite.DSN(cfg.DB.Path))
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	keys := sqlite.NewAPIKeyRepository(db)
	if len(os.Args) > 1 && os.Args[1] == "add-key" {
		if err := addKey(keys, os.Args[2:]); err != nil {
			logger.Error("failed to add api key", "error", err)
			os.Exit(1)
		}
		return
	}

	facilityRepo := sqlite.NewFacilityRepository(db)
	entryRepo := sqlite.NewEntryRepository(db)
	snapshotRepo := sqlite.NewSnapshotRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	activitySvc := activity.NewService(activityRepo, logger)
	facilitySvc := facility.NewService(facilityRepo, activityRepo, logger)

	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if err := seed(facilitySvc, os.Args[2:]); err != nil {
			logger.Error("failed to seed facility", "error", err)
			os.Exit(1)
		}
		return
	}

	logbookSvc := logbook.NewService(entryRepo, facilityRepo, activityRepo, logger)
	boardSvc := board.NewService(snapshotRepo, logger)
	reportSvc := report.NewService(snapshotRepo, loc, logger)
	exportSvc := export.NewService(reportSvc, cfg.Report.ExportContext, logger)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Board:    boardSvc,
			Logbook:  logbookSvc,
			Reports:  reportSvc,
			Facility: facilitySvc,
			Exports:  exportSvc,
			Activity: activitySvc,
		},
		Resolver:      keys,
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		Version:       version,
		Logger:        logger,
	})

	if cfg.Transport.Mode == config.TransportStdio {
		runStdioMode(logger, mcpServer)
		return
	}

	var auth func(http.Handler) http.Handler
	if cfg.Auth.Enabled {
		auth = transport.AuthMiddleware(keys)
	}
	router := transport.NewServer(transport.Config{
		MCP: sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{
				Stateless:      false,
				SessionTimeout: 30 * time.Minute,
			},
		),
		Exports:  exportSvc,
		Location: loc,
		Auth:     auth,
		Logger:   logger,
	})
	runHTTPMode(logger, router, cfg.Server.Host, cfg.Server.Port, cfg.Auth.Enabled)
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport", "auth", "disabled")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutting down")
}

func runHTTPMode(logger *slog.Logger, router http.Handler, host string, port int, authEnabled bool) {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "auth", authEnabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

// addKey registers a new bearer token for an operator and prints it once.
func addKey(keys *sqlite.APIKeyRepository, args []string) error {
	if len(args) == 0 || args[0] == "" {
		return fmt.Errorf("usage: add-key <operator> [description]")
	}
	description := ""
	if len(args) > 1 {
		description = args[1]
	}
	token := uuid.NewString()
	if err := keys.Create(context.Background(), token, args[0], description); err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

// seed creates the standard facility, or the layout in the given YAML file.
func seed(svc *facility.Service, args []string) error {
	layout := facility.DefaultLayout()
	if len(args) > 0 {
		var err error
		if layout, err = facility.LoadLayout(args[0]); err != nil {
			return err
		}
	}
	res, err := svc.Seed(activity.WithActor(context.Background(), "seed"), layout)
	if err != nil {
		return err
	}
	fmt.Printf("created %d phases, %d categories, %d tasks\n", res.Phases, res.Categories, res.Tasks)
	return nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
