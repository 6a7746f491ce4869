package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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
	"github.com/stretchr/testify/require"
)

// TestServer is the full stack over an in-memory database.
type TestServer struct {
	Server *httptest.Server
	MCP    *sdkmcp.Server
	DB     *sqlite.DB
	Token  string
	Actor  string

	Facility *facility.Service
	Logbook  *logbook.Service
	Board    *board.Service
	Reports  *report.Service
	Exports  *export.Service
}

// New starts a server whose clocks all read now. HTTP requests and MCP
// calls over HTTP need token; in-memory MCP sessions are attributed to
// the default operator.
func New(t *testing.T, token, actor string, now time.Time) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	clock := func() time.Time { return now }

	facilityRepo := sqlite.NewFacilityRepository(db)
	entryRepo := sqlite.NewEntryRepository(db)
	snapshotRepo := sqlite.NewSnapshotRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	keys := sqlite.NewAPIKeyRepository(db)

	activitySvc := activity.NewService(activityRepo, nil)
	facilitySvc := facility.NewService(facilityRepo, activityRepo, nil)
	logbookSvc := logbook.NewService(entryRepo, facilityRepo, activityRepo, nil)
	logbookSvc.Clock = clock
	boardSvc := board.NewService(snapshotRepo, nil)
	boardSvc.Clock = clock
	reportSvc := report.NewService(snapshotRepo, time.UTC, nil)
	reportSvc.Clock = clock
	exportSvc := export.NewService(reportSvc, "", nil)
	exportSvc.Clock = clock

	services := mcp.Services{
		Board:    boardSvc,
		Logbook:  logbookSvc,
		Reports:  reportSvc,
		Facility: facilitySvc,
		Exports:  exportSvc,
		Activity: activitySvc,
	}

	httpMCP := mcp.NewServer(mcp.Config{
		Services:      services,
		Resolver:      keys,
		AuthEnabled:   true,
		TransportMode: "http",
	})
	localMCP := mcp.NewServer(mcp.Config{
		Services:      services,
		TransportMode: "stdio",
	})

	handler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return httpMCP },
		&sdkmcp.StreamableHTTPOptions{Stateless: true},
	)
	server := httptest.NewServer(transport.NewServer(transport.Config{
		MCP:      handler,
		Exports:  exportSvc,
		Location: time.UTC,
		Auth:     transport.AuthMiddleware(keys),
	}))

	ts := &TestServer{
		Server:   server,
		MCP:      localMCP,
		DB:       db,
		Token:    token,
		Actor:    actor,
		Facility: facilitySvc,
		Logbook:  logbookSvc,
		Board:    boardSvc,
		Reports:  reportSvc,
		Exports:  exportSvc,
	}

	require.NoError(t, keys.Create(context.Background(), token, actor, "test"))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// Connect opens an in-memory MCP client session against the server.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := ts.MCP.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
		_ = serverSession.Wait()
	})
	return session
}
