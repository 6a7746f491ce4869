package mcp

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestFormatPayload_TruncatesOnRuneBoundary(t *testing.T) {
	out := formatPayload(map[string]string{"notes": strings.Repeat("€", maxLoggedPayload)})

	require.True(t, utf8.ValidString(out), "truncated payload should stay valid UTF-8")
	require.True(t, strings.HasSuffix(out, "…"))
	require.LessOrEqual(t, len(strings.TrimSuffix(out, "…")), maxLoggedPayload)
	require.True(t, strings.HasPrefix(out, `{"notes":"€€`))
}

func TestFormatPayload_ShortPayloadUnchanged(t *testing.T) {
	require.Equal(t, `{"name":"Phase 1"}`, formatPayload(map[string]string{"name": "Phase 1"}))
	require.Equal(t, "<nil>", formatPayload(nil))
}
