package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/upkeep/internal/domain/activity"
	"github.com/rpggio/upkeep/internal/domain/board"
	"github.com/rpggio/upkeep/internal/domain/facility"
	"github.com/rpggio/upkeep/internal/domain/logbook"
	"github.com/rpggio/upkeep/internal/domain/report"
	"github.com/rpggio/upkeep/internal/domain/status"
	"github.com/rpggio/upkeep/internal/export"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// toolFunc is the shape every tool body takes: typed input, JSON-able output.
type toolFunc[In any] func(ctx context.Context, in In) (any, error)

func addTool[In any](server *sdkmcp.Server, logger *slog.Logger, name, description string, fn toolFunc[In]) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: name, Description: description},
		func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
			out, err := fn(ctx, in)
			if err != nil {
				apiErr := MapError(err)
				if logger != nil {
					level := slog.LevelDebug
					if apiErr.Code == "INTERNAL" || apiErr.Code == "STORE_UNAVAILABLE" {
						level = slog.LevelError
					}
					logger.Log(ctx, level, "tool failed", "tool", name, "code", apiErr.Code, "error", err)
				}
				return errorResult(apiErr), nil, nil
			}
			res, err := jsonResult(out)
			return res, nil, err
		})
}

func jsonResult(v any) (*sdkmcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}

func errorResult(apiErr *APIError) *sdkmcp.CallToolResult {
	data, err := json.Marshal(apiErr)
	if err != nil {
		data = []byte(apiErr.Error())
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}

// BoardResult is the dashboard plus a count of tasks per status.
type BoardResult struct {
	Tally map[status.Status]int `json:"tally"`
	Tabs  []string              `json:"tabs"`
	Board *board.View           `json:"board,omitempty"`
	Tab   []board.CategoryView  `json:"tab,omitempty"`
}

func registerTools(server *sdkmcp.Server, svc Services, logger *slog.Logger) {
	// Dashboard
	addTool(server, logger, "get_board",
		"Get the maintenance board: phases, categories and tasks with their status and days remaining",
		func(ctx context.Context, in GetBoardParams) (any, error) {
			view, err := svc.Board.Board(ctx)
			if err != nil {
				return nil, err
			}
			res := BoardResult{Tally: view.Tally(), Tabs: view.Tabs()}
			if strings.TrimSpace(in.Tab) == "" {
				res.Board = view
				return res, nil
			}
			tab, ok := view.Tab(in.Tab)
			if !ok {
				return nil, board.ErrTabNotFound
			}
			res.Tab = tab
			return res, nil
		})
	addTool(server, logger, "get_task_status",
		"Compute one task's status from its logged entries",
		func(ctx context.Context, in TaskParams) (any, error) {
			return svc.Logbook.TaskStatus(ctx, in.TaskID)
		})

	// Logbook
	addTool(server, logger, "log_entry",
		"Record a completion of a task. Timed tasks need run_time",
		func(ctx context.Context, in LogEntryParams) (any, error) {
			ts, err := parseTimestamp(in.Timestamp, svc.Reports.Location())
			if err != nil {
				return nil, err
			}
			return svc.Logbook.Log(ctx, logbook.LogRequest{
				TaskID:    in.TaskID,
				Timestamp: ts,
				RunTime:   in.RunTime,
				Notes:     in.Notes,
				Category:  in.Category,
			})
		})
	addTool(server, logger, "delete_entry",
		"Delete a logged entry and recompute its task's last completion",
		func(ctx context.Context, in DeleteEntryParams) (any, error) {
			return svc.Logbook.Delete(ctx, in.EntryID)
		})

	// History and reports
	addTool(server, logger, "get_task_history",
		"List a task's entries, newest first",
		func(ctx context.Context, in TaskHistoryParams) (any, error) {
			return svc.Reports.TaskHistory(ctx, in.TaskID, in.Limit)
		})
	addTool(server, logger, "get_phase_activity",
		"List recent entries across every task in a phase, newest first",
		func(ctx context.Context, in PhaseActivityParams) (any, error) {
			return svc.Reports.PhaseActivity(ctx, in.PhaseID, in.Limit)
		})
	addTool(server, logger, "get_activity",
		"List recent entries within a scope, newest first",
		func(ctx context.Context, in ActivityParams) (any, error) {
			sc, err := report.ParseScope(in.Scope, in.ID)
			if err != nil {
				return nil, err
			}
			return svc.Reports.Activity(ctx, sc, in.Limit)
		})
	addTool(server, logger, "get_range_report",
		"List entries in a date range for a scope, newest first",
		func(ctx context.Context, in RangeParams) (any, error) {
			req, err := rangeRequest(in.Scope, in.ID, in.Start, in.End, svc.Reports.Location())
			if err != nil {
				return nil, err
			}
			return svc.Reports.Range(ctx, req)
		})
	addTool(server, logger, "get_compliance_report",
		"Show, per task in scope, the latest completion inside a date range and whether one exists",
		func(ctx context.Context, in RangeParams) (any, error) {
			req, err := rangeRequest(in.Scope, in.ID, in.Start, in.End, svc.Reports.Location())
			if err != nil {
				return nil, err
			}
			return svc.Reports.Compliance(ctx, req)
		})
	addTool(server, logger, "export_csv",
		"Render a backup, range report or compliance report as CSV",
		func(ctx context.Context, in ExportParams) (any, error) {
			kind, err := export.ParseKind(in.Kind)
			if err != nil {
				return nil, err
			}
			req := export.Request{Kind: kind, Quote: in.Quote}
			if kind != export.KindBackup {
				if req.Range, err = rangeRequest(in.Scope, in.ID, in.Start, in.End, svc.Reports.Location()); err != nil {
					return nil, err
				}
			}
			file, err := svc.Exports.Export(ctx, req)
			if err != nil {
				return nil, err
			}
			return ExportResult{
				Filename:    file.Name,
				ContentType: file.ContentType,
				Rows:        file.Rows,
				CSV:         string(file.Body),
			}, nil
		})

	// Facility management
	addTool(server, logger, "add_phase",
		"Create a phase",
		func(ctx context.Context, in AddPhaseParams) (any, error) {
			return svc.Facility.AddPhase(ctx, facility.AddPhaseRequest{Name: in.Name})
		})
	addTool(server, logger, "add_category",
		"Create a category in a phase, or a generator category when phase_id is omitted",
		func(ctx context.Context, in AddCategoryParams) (any, error) {
			return svc.Facility.AddCategory(ctx, facility.AddCategoryRequest{Name: in.Name, PhaseID: in.PhaseID})
		})
	addTool(server, logger, "add_task",
		"Create a recurring task in a category",
		func(ctx context.Context, in AddTaskParams) (any, error) {
			return svc.Facility.AddTask(ctx, facility.AddTaskRequest{
				CategoryID:     in.CategoryID,
				Name:           in.Name,
				RecurrenceType: in.RecurrenceType,
				RequiresTime:   in.RequiresTime,
			})
		})
	addTool(server, logger, "rename_task",
		"Rename a task",
		func(ctx context.Context, in RenameTaskParams) (any, error) {
			return svc.Facility.RenameTask(ctx, in.TaskID, in.Name)
		})
	addTool(server, logger, "delete_task",
		"Delete a task together with its logged entries",
		func(ctx context.Context, in TaskParams) (any, error) {
			if err := svc.Facility.DeleteTask(ctx, in.TaskID); err != nil {
				return nil, err
			}
			return DeleteTaskResult{Deleted: true, TaskID: in.TaskID}, nil
		})

	// Activity
	addTool(server, logger, "get_recent_activity",
		"List recent changes with the operator who made them",
		func(ctx context.Context, in RecentActivityParams) (any, error) {
			return svc.Activity.GetRecentActivity(ctx, activity.ListActivityOptions{
				TaskID: in.TaskID,
				Limit:  in.Limit,
				Offset: in.Offset,
			})
		})
}

func rangeRequest(scope, id, start, end string, loc *time.Location) (report.RangeRequest, error) {
	sc, err := report.ParseScope(scope, id)
	if err != nil {
		return report.RangeRequest{}, err
	}
	from, err := report.ParseDate(start, loc)
	if err != nil {
		return report.RangeRequest{}, err
	}
	to, err := report.ParseDate(end, loc)
	if err != nil {
		return report.RangeRequest{}, err
	}
	return report.RangeRequest{Scope: sc, Start: from, End: to}, nil
}

// parseTimestamp accepts RFC 3339 or a bare date in loc. Blank means now.
func parseTimestamp(value string, loc *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return &ts, nil
	}
	ts, err := report.ParseDate(value, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: timestamp %q", logbook.ErrInvalidInput, value)
	}
	return ts, nil
}
