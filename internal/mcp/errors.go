package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/upkeep/internal/domain/activity"
	"github.com/rpggio/upkeep/internal/domain/board"
	"github.com/rpggio/upkeep/internal/domain/facility"
	"github.com/rpggio/upkeep/internal/domain/logbook"
	"github.com/rpggio/upkeep/internal/domain/report"
	"github.com/rpggio/upkeep/internal/export"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unrecognized errors
// become INTERNAL.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, facility.ErrTaskNotFound):
		return &APIError{Code: "TASK_NOT_FOUND", Message: "task not found", RecoveryHint: "Call get_board to list task ids"}
	case errors.Is(err, facility.ErrCategoryNotFound):
		return &APIError{Code: "CATEGORY_NOT_FOUND", Message: "category not found", RecoveryHint: "Call get_board to list category ids"}
	case errors.Is(err, facility.ErrPhaseNotFound):
		return &APIError{Code: "PHASE_NOT_FOUND", Message: "phase not found", RecoveryHint: "Call get_board to list phase ids"}
	case errors.Is(err, board.ErrTabNotFound):
		return &APIError{Code: "TAB_NOT_FOUND", Message: "no phase with that name", RecoveryHint: "Use a phase name or \"Generators\""}
	case errors.Is(err, logbook.ErrRunTimeRequired):
		return &APIError{Code: "RUN_TIME_REQUIRED", Message: "this task requires a run time", RecoveryHint: "Pass run_time in minutes"}
	case errors.Is(err, report.ErrInvalidScope):
		return &APIError{Code: "INVALID_SCOPE", Message: err.Error(), RecoveryHint: "Use all, generators, phase, category or task; the last three need an id"}
	case errors.Is(err, report.ErrInvalidRange):
		return &APIError{Code: "INVALID_RANGE", Message: err.Error(), RecoveryHint: "Dates are YYYY-MM-DD"}
	case errors.Is(err, export.ErrUnknownKind):
		return &APIError{Code: "INVALID_EXPORT_KIND", Message: err.Error(), RecoveryHint: "Use backup, report or compliance"}
	case errors.Is(err, facility.ErrInvalidInput),
		errors.Is(err, logbook.ErrInvalidInput),
		errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid input", RecoveryHint: "Names and ids must not be blank"}
	case errors.Is(err, board.ErrStoreUnavailable):
		return &APIError{Code: "STORE_UNAVAILABLE", Message: "storage is unavailable", RecoveryHint: "Retry later"}
	default:
		return &APIError{Code: "INTERNAL", Message: err.Error()}
	}
}
