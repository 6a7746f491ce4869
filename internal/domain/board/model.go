package board

import (
	"time"

	"github.com/rpggio/upkeep/internal/domain/facility"
	"github.com/rpggio/upkeep/internal/domain/logbook"
	"github.com/rpggio/upkeep/internal/domain/status"
)

// Fallback labels for dangling references.
const (
	NoPhaseLabel    = "N/A"
	NoCategoryLabel = "N/A"
	GeneratorLabel  = "Generator"
	UnknownTask     = "Unknown Task"
)

// Snapshot is a full read of the four flat collections.
type Snapshot struct {
	Phases     []facility.Phase    `json:"phases"`
	Categories []facility.Category `json:"categories"`
	Tasks      []facility.Task     `json:"tasks"`
	Entries    []logbook.Entry     `json:"entries"`
}

// View is the dashboard tree: generator categories plus phases, each
// holding categories, tasks and their entries.
type View struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Generators  []CategoryView `json:"generators"`
	Phases      []PhaseView    `json:"phases"`
}

// PhaseView is one phase with its categories. Orphaned categories are
// collected under a phase with an empty ID named NoPhaseLabel.
type PhaseView struct {
	Phase      facility.Phase `json:"phase"`
	Categories []CategoryView `json:"categories"`
}

// CategoryView is one category with its tasks.
type CategoryView struct {
	Category facility.Category `json:"category"`
	Tasks    []TaskView        `json:"tasks"`
}

// TaskView is one task with its entries, most recent first.
type TaskView struct {
	Task    facility.Task   `json:"task"`
	Entries []logbook.Entry `json:"entries"`
	Last    *logbook.Entry  `json:"last,omitempty"`
	Result  status.Result   `json:"result"`
}

// Tab returns the categories shown under one dashboard tab. The name is
// either facility.GeneratorsTab or a phase name, matched case-insensitively.
func (v View) Tab(name string) ([]CategoryView, bool) {
	if equalFold(name, facility.GeneratorsTab) {
		return v.Generators, true
	}
	for _, p := range v.Phases {
		if equalFold(name, p.Phase.Name) {
			return p.Categories, true
		}
	}
	return nil, false
}

// Tabs lists tab names in display order.
func (v View) Tabs() []string {
	names := make([]string, 0, len(v.Phases)+1)
	for _, p := range v.Phases {
		names = append(names, p.Phase.Name)
	}
	return append(names, facility.GeneratorsTab)
}

// Tally counts tasks per status across the whole view.
func (v View) Tally() map[status.Status]int {
	counts := make(map[status.Status]int)
	add := func(cats []CategoryView) {
		for _, c := range cats {
			for _, t := range c.Tasks {
				counts[t.Result.Status]++
			}
		}
	}
	add(v.Generators)
	for _, p := range v.Phases {
		add(p.Categories)
	}
	return counts
}
