package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `upkeep tracks recurring facility maintenance as Phases → Categories → Tasks → Entries.

Core concepts:
- Phase: a building section (Phase 1, Phase 2...). Categories without a phase are generators.
- Task: one recurring job with a cadence (weekly, monthly, quarterly, semi-annual, annual).
- Entry: one logged completion of a task. Timed tasks (generator runs) need run_time in minutes.
- Status: derived from the latest entry. on_schedule, due_soon, overdue, or no_entries ("Pending").

Default workflow:
1) Orient: call get_board (optionally tab="Phase 1" or tab="Generators") to see ids and status.
2) Record work: log_entry(task_id, ...). Omit timestamp for now; back-dated entries never move the last completion backwards.
3) Fix mistakes: delete_entry(entry_id) recomputes the task's last completion from what remains.
4) Review: get_task_history, get_phase_activity, get_activity, get_range_report, get_compliance_report.
5) Export: export_csv(kind=backup|report|compliance) returns CSV text and a suggested filename.

Docs resources:
- upkeep://docs/index
- upkeep://docs/status
- upkeep://docs/reports
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "upkeep://docs/index",
		Name:        "docs_index",
		Title:       "upkeep docs index",
		Description: "Start here: what the tracker holds and which tools to call.",
		Content: `# upkeep

The tracker holds a fixed facility hierarchy and a log of completions.

- Phases group categories by building section.
- Categories with no phase are listed under Generators.
- Tasks carry a recurrence label. Unknown labels are treated as monthly.
- Entries record when a task was done, with optional run time, notes and tag.

See upkeep://docs/status for how status is computed and upkeep://docs/reports for reports and exports.
`,
	},
	{
		URI:         "upkeep://docs/status",
		Name:        "docs_status",
		Title:       "Status rules",
		Description: "Cadence thresholds and the days-remaining label.",
		Content: `# Status rules

Elapsed days are whole days since the latest entry.

| cadence | due soon at | overdue at |
|---|---|---|
| weekly | 5 | 7 |
| monthly | 24 | 31 |
| quarterly | 81 | 91 |
| semi-annual | 167 | 182 |
| annual | 350 | 365 |

The remaining label is "Nd left", "Overdue" once no days remain, or "Pending" when nothing was logged.
Labels are classified by substring: "semi" wins over "annual", "year" means annual, anything else monthly.
`,
	},
	{
		URI:         "upkeep://docs/reports",
		Name:        "docs_reports",
		Title:       "Reports and exports",
		Description: "Scopes, date ranges and CSV formats.",
		Content: `# Reports

Scopes: all, generators, phase (id), category (id), task (id).
Dates are YYYY-MM-DD in the configured timezone. End dates include the whole day.
Without dates a report covers the past year.

- get_range_report lists every entry in range, newest first.
- get_compliance_report lists each task in scope with its latest entry in range, or "Missing".

# CSV

export_csv kinds:
- backup: Date,Task Name,Category ID,Status,Notes for every entry.
- report: the range report rows.
- compliance: the compliance report rows.

Commas are stripped from values unless quote=true. Blank values are written as N/A.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
