package board

import (
	"sort"
	"strings"
	"time"

	"github.com/rpggio/upkeep/internal/domain/facility"
	"github.com/rpggio/upkeep/internal/domain/logbook"
	"github.com/rpggio/upkeep/internal/domain/status"
)

// Build assembles the dashboard tree from a snapshot. It never mutates the
// snapshot and holds no state, so it can be rebuilt on every read and
// tolerates partially loaded snapshots.
//
// Categories pointing at a missing phase are grouped under a fallback phase
// that sorts after every real phase. Tasks whose category is missing and
// entries whose task is missing are left out.
func Build(snap Snapshot, now time.Time) View {
	view := View{
		GeneratedAt: now,
		Generators:  []CategoryView{},
		Phases:      []PhaseView{},
	}

	entriesByTask := logbook.GroupByTask(snap.Entries)

	tasksByCategory := make(map[string][]TaskView)
	for _, task := range snap.Tasks {
		entries := entriesByTask[task.ID]
		if entries == nil {
			entries = []logbook.Entry{}
		}
		tv := TaskView{Task: task, Entries: entries}
		var last *time.Time
		if len(entries) > 0 {
			head := entries[0]
			tv.Last = &head
			last = &head.Timestamp
		}
		tv.Result = status.Evaluate(last, task.RecurrenceType, now)
		tasksByCategory[task.CategoryID] = append(tasksByCategory[task.CategoryID], tv)
	}

	phaseIDs := make(map[string]bool, len(snap.Phases))
	for _, p := range snap.Phases {
		phaseIDs[p.ID] = true
	}

	byPhase := make(map[string][]CategoryView)
	var orphans []CategoryView
	for _, cat := range snap.Categories {
		tasks := tasksByCategory[cat.ID]
		sortTasks(tasks)
		if tasks == nil {
			tasks = []TaskView{}
		}
		cv := CategoryView{Category: cat, Tasks: tasks}
		switch {
		case cat.Ungrouped():
			view.Generators = append(view.Generators, cv)
		case phaseIDs[*cat.PhaseID]:
			byPhase[*cat.PhaseID] = append(byPhase[*cat.PhaseID], cv)
		default:
			orphans = append(orphans, cv)
		}
	}
	sortCategories(view.Generators)

	phases := make([]facility.Phase, len(snap.Phases))
	copy(phases, snap.Phases)
	sort.SliceStable(phases, func(i, j int) bool {
		a, b := phases[i].Name, phases[j].Name
		if NaturalLess(a, b) {
			return true
		}
		if NaturalLess(b, a) {
			return false
		}
		return phases[i].ID < phases[j].ID
	})
	for _, p := range phases {
		cats := byPhase[p.ID]
		sortCategories(cats)
		if cats == nil {
			cats = []CategoryView{}
		}
		view.Phases = append(view.Phases, PhaseView{Phase: p, Categories: cats})
	}

	if len(orphans) > 0 {
		sortCategories(orphans)
		view.Phases = append(view.Phases, PhaseView{
			Phase:      facility.Phase{Name: NoPhaseLabel},
			Categories: orphans,
		})
	}
	return view
}

func sortCategories(cats []CategoryView) {
	sort.SliceStable(cats, func(i, j int) bool {
		if c := compareFold(cats[i].Category.Name, cats[j].Category.Name); c != 0 {
			return c < 0
		}
		return cats[i].Category.ID < cats[j].Category.ID
	})
}

func sortTasks(tasks []TaskView) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if c := compareFold(tasks[i].Task.Name, tasks[j].Task.Name); c != 0 {
			return c < 0
		}
		return tasks[i].Task.ID < tasks[j].Task.ID
	})
}

// Location names where a task sits in the hierarchy.
type Location struct {
	TaskID     string  `json:"task_id"`
	Task       string  `json:"task"`
	CategoryID string  `json:"category_id,omitempty"`
	Category   string  `json:"category"`
	PhaseID    *string `json:"phase_id,omitempty"`
	Phase      string  `json:"phase"`
	Generator  bool    `json:"generator"`
	Known      bool    `json:"known"`
}

// Index resolves task, category and phase labels for flat entries.
type Index struct {
	phases     map[string]facility.Phase
	categories map[string]facility.Category
	tasks      map[string]facility.Task
}

// NewIndex builds lookups over a snapshot.
func NewIndex(snap Snapshot) *Index {
	idx := &Index{
		phases:     make(map[string]facility.Phase, len(snap.Phases)),
		categories: make(map[string]facility.Category, len(snap.Categories)),
		tasks:      make(map[string]facility.Task, len(snap.Tasks)),
	}
	for _, p := range snap.Phases {
		idx.phases[p.ID] = p
	}
	for _, c := range snap.Categories {
		idx.categories[c.ID] = c
	}
	for _, t := range snap.Tasks {
		idx.tasks[t.ID] = t
	}
	return idx
}

// Task returns the task with the given ID.
func (idx *Index) Task(id string) (facility.Task, bool) {
	t, ok := idx.tasks[id]
	return t, ok
}

// Category returns the category with the given ID.
func (idx *Index) Category(id string) (facility.Category, bool) {
	c, ok := idx.categories[id]
	return c, ok
}

// Phase returns the phase with the given ID.
func (idx *Index) Phase(id string) (facility.Phase, bool) {
	p, ok := idx.phases[id]
	return p, ok
}

// Locate labels a task's position, degrading to fallback labels for any
// missing link in the chain.
func (idx *Index) Locate(taskID string) Location {
	loc := Location{
		TaskID:   taskID,
		Task:     UnknownTask,
		Category: NoCategoryLabel,
		Phase:    NoPhaseLabel,
	}
	task, ok := idx.tasks[taskID]
	if !ok {
		return loc
	}
	loc.Known = true
	loc.Task = task.Name
	loc.CategoryID = task.CategoryID

	cat, ok := idx.categories[task.CategoryID]
	if !ok {
		return loc
	}
	loc.Category = cat.Name
	if cat.Ungrouped() {
		loc.Generator = true
		loc.Phase = GeneratorLabel
		return loc
	}
	loc.PhaseID = cat.PhaseID
	if p, ok := idx.phases[*cat.PhaseID]; ok && strings.TrimSpace(p.Name) != "" {
		loc.Phase = p.Name
	}
	return loc
}
