package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rpggio/upkeep/internal/domain/board"
	"github.com/rpggio/upkeep/internal/domain/facility"
	"github.com/rpggio/upkeep/internal/domain/logbook"
	"github.com/rpggio/upkeep/internal/domain/report"
	"github.com/rpggio/upkeep/internal/export"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{facility.ErrTaskNotFound, "TASK_NOT_FOUND"},
		{fmt.Errorf("wrapped: %w", facility.ErrCategoryNotFound), "CATEGORY_NOT_FOUND"},
		{facility.ErrPhaseNotFound, "PHASE_NOT_FOUND"},
		{board.ErrTabNotFound, "TAB_NOT_FOUND"},
		{logbook.ErrRunTimeRequired, "RUN_TIME_REQUIRED"},
		{fmt.Errorf("%w: phase scope requires an id", report.ErrInvalidScope), "INVALID_SCOPE"},
		{report.ErrInvalidRange, "INVALID_RANGE"},
		{export.ErrUnknownKind, "INVALID_EXPORT_KIND"},
		{logbook.ErrInvalidInput, "INVALID_INPUT"},
		{facility.ErrInvalidInput, "INVALID_INPUT"},
		{fmt.Errorf("%w: %w", board.ErrStoreUnavailable, errors.New("disk")), "STORE_UNAVAILABLE"},
		{errors.New("boom"), "INTERNAL"},
	}
	for _, tt := range tests {
		got := MapError(tt.err)
		require.NotNil(t, got)
		require.Equal(t, tt.code, got.Code, "error %v", tt.err)
	}
	require.Nil(t, MapError(nil))
}
