package main

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// TestStdioBinary drives a built server over stdio. Build it first with
// go build -o bin/upkeep ./cmd/server.
func TestStdioBinary(t *testing.T) {
	binaryPath := "../../bin/upkeep"
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skip("server binary not found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Env = append(os.Environ(),
		"UPKEEP_TRANSPORT_MODE=stdio",
		"UPKEEP_DB_PATH=:memory:",
		"UPKEEP_AUTH_ENABLED=false",
	)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "add_phase",
		Arguments: map[string]any{"name": "Phase 1"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "get_board", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.False(t, res.IsError)

	var board struct {
		Tabs []string `json:"tabs"`
	}
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	require.NoError(t, json.Unmarshal([]byte(text.Text), &board))
	require.Equal(t, []string{"Phase 1", "Generators"}, board.Tabs)
}
