package mcp

type GetBoardParams struct {
	Tab string `json:"tab,omitempty" jsonschema:"phase name or Generators; omit for the whole board"`
}

type TaskParams struct {
	TaskID string `json:"task_id" jsonschema:"task id"`
}

type LogEntryParams struct {
	TaskID    string   `json:"task_id" jsonschema:"task id"`
	Timestamp string   `json:"timestamp,omitempty" jsonschema:"RFC 3339 time or YYYY-MM-DD date; omit for now"`
	RunTime   *float64 `json:"run_time,omitempty" jsonschema:"run time in minutes; required for timed tasks"`
	Notes     *string  `json:"notes,omitempty" jsonschema:"free-form notes"`
	Category  *string  `json:"category,omitempty" jsonschema:"optional tag such as Maintenance or Repair"`
}

type DeleteEntryParams struct {
	EntryID string `json:"entry_id" jsonschema:"entry id"`
}

type TaskHistoryParams struct {
	TaskID string `json:"task_id" jsonschema:"task id"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum entries; default 20"`
}

type PhaseActivityParams struct {
	PhaseID string `json:"phase_id" jsonschema:"phase id"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum rows; default 50"`
}

type ActivityParams struct {
	Scope string `json:"scope,omitempty" jsonschema:"all, generators, phase, category or task; default all"`
	ID    string `json:"id,omitempty" jsonschema:"phase, category or task id for scoped activity"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum rows; default 50"`
}

type RangeParams struct {
	Scope string `json:"scope,omitempty" jsonschema:"all, generators, phase, category or task; default all"`
	ID    string `json:"id,omitempty" jsonschema:"phase, category or task id for scoped reports"`
	Start string `json:"start,omitempty" jsonschema:"first day, YYYY-MM-DD; default one year ago"`
	End   string `json:"end,omitempty" jsonschema:"last day inclusive, YYYY-MM-DD; default today"`
}

type ExportParams struct {
	Kind  string `json:"kind" jsonschema:"backup, report or compliance"`
	Scope string `json:"scope,omitempty" jsonschema:"report scope; ignored for backup"`
	ID    string `json:"id,omitempty" jsonschema:"phase, category or task id for scoped reports"`
	Start string `json:"start,omitempty" jsonschema:"first day, YYYY-MM-DD"`
	End   string `json:"end,omitempty" jsonschema:"last day inclusive, YYYY-MM-DD"`
	Quote bool   `json:"quote,omitempty" jsonschema:"quote fields instead of stripping commas"`
}

type AddPhaseParams struct {
	Name string `json:"name" jsonschema:"phase name"`
}

type AddCategoryParams struct {
	Name    string  `json:"name" jsonschema:"category name"`
	PhaseID *string `json:"phase_id,omitempty" jsonschema:"owning phase; omit for a generator category"`
}

type AddTaskParams struct {
	CategoryID     string `json:"category_id" jsonschema:"owning category id"`
	Name           string `json:"name" jsonschema:"task name"`
	RecurrenceType string `json:"recurrence_type,omitempty" jsonschema:"weekly, monthly, quarterly, semi-annual or annual; default monthly"`
	RequiresTime   bool   `json:"requires_time,omitempty" jsonschema:"entries must carry a run time"`
}

type RenameTaskParams struct {
	TaskID string `json:"task_id" jsonschema:"task id"`
	Name   string `json:"name" jsonschema:"new task name"`
}

type RecentActivityParams struct {
	TaskID *string `json:"task_id,omitempty" jsonschema:"only activity for this task"`
	Limit  int     `json:"limit,omitempty" jsonschema:"maximum entries; default 50"`
	Offset int     `json:"offset,omitempty"`
}

// ExportResult carries a rendered CSV file back to the caller.
type ExportResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Rows        int    `json:"rows"`
	CSV         string `json:"csv"`
}

type DeleteTaskResult struct {
	Deleted bool   `json:"deleted"`
	TaskID  string `json:"task_id"`
}
