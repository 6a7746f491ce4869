package facility

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout describes a facility to create in one go.
type Layout struct {
	Phases     []PhaseLayout    `yaml:"phases"`
	Generators []CategoryLayout `yaml:"generators"`
}

type PhaseLayout struct {
	Name       string           `yaml:"name"`
	Categories []CategoryLayout `yaml:"categories"`
}

type CategoryLayout struct {
	Name  string       `yaml:"name"`
	Tasks []TaskLayout `yaml:"tasks"`
}

type TaskLayout struct {
	Name         string `yaml:"name"`
	Recurrence   string `yaml:"recurrence"`
	RequiresTime bool   `yaml:"requires_time"`
}

// SeedResult counts what a seed created.
type SeedResult struct {
	Phases     int `json:"phases"`
	Categories int `json:"categories"`
	Tasks      int `json:"tasks"`
}

// DefaultLayout is the standard four-phase building with two generators.
func DefaultLayout() Layout {
	standard := func() []CategoryLayout {
		return []CategoryLayout{
			{Name: "Exit Signs", Tasks: []TaskLayout{{Name: "Placeholder Exit Sign", Recurrence: "monthly"}}},
			{Name: "Uranyl Pads", Tasks: []TaskLayout{{Name: "Uranyl Pad Check", Recurrence: "monthly"}}},
			{Name: "Elevator Pits", Tasks: []TaskLayout{{Name: "Elevator Pit Check", Recurrence: "quarterly"}}},
			{Name: "Seal Plates & Tracks", Tasks: []TaskLayout{{Name: "Seal Plates & Tracks Check", Recurrence: "monthly"}}},
		}
	}
	quarterly := func(names ...string) []TaskLayout {
		tasks := make([]TaskLayout, 0, len(names))
		for _, n := range names {
			tasks = append(tasks, TaskLayout{Name: n, Recurrence: "quarterly"})
		}
		return tasks
	}
	generator := func(name string) CategoryLayout {
		return CategoryLayout{Name: name, Tasks: []TaskLayout{
			{Name: "Weekly Test", Recurrence: "weekly", RequiresTime: true},
			{Name: "Annual Service", Recurrence: "yearly"},
		}}
	}

	phase3 := append(standard(), CategoryLayout{Name: "Sump Pumps", Tasks: quarterly(
		"Lower Level - Janitorial Closet",
		"Lower Level - Under Elevator",
		"Stairwell",
	)})
	phase4 := append(standard(),
		CategoryLayout{Name: "Sump Pumps", Tasks: quarterly(
			"Lower Level - Mechanical Room Pump 1",
			"Lower Level - Mechanical Room Pump 2",
		)},
		CategoryLayout{Name: "Grinder Pumps", Tasks: quarterly(
			"Lower Level - Mechanical Room Grinder 1",
			"Lower Level - Mechanical Room Grinder 2",
		)},
	)

	return Layout{
		Phases: []PhaseLayout{
			{Name: "Phase 1", Categories: standard()},
			{Name: "Phase 2", Categories: standard()},
			{Name: "Phase 3", Categories: phase3},
			{Name: "Phase 4", Categories: phase4},
		},
		Generators: []CategoryLayout{generator("Generator East"), generator("Generator West")},
	}
}

// LoadLayout reads a layout from a YAML file.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("reading layout: %w", err)
	}
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("parsing layout: %w", err)
	}
	return layout, nil
}

// Seed creates every phase, category and task in the layout. It refuses to
// run once the facility has any phase or category.
func (s *Service) Seed(ctx context.Context, layout Layout) (*SeedResult, error) {
	phases, err := s.repo.ListPhases(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	if len(phases) > 0 || len(cats) > 0 {
		return nil, ErrAlreadySeeded
	}

	res := &SeedResult{}
	addCategory := func(cl CategoryLayout, phaseID *string) error {
		cat, err := s.AddCategory(ctx, AddCategoryRequest{Name: cl.Name, PhaseID: phaseID})
		if err != nil {
			return fmt.Errorf("category %q: %w", cl.Name, err)
		}
		res.Categories++
		for _, tl := range cl.Tasks {
			if _, err := s.AddTask(ctx, AddTaskRequest{
				CategoryID:     cat.ID,
				Name:           tl.Name,
				RecurrenceType: tl.Recurrence,
				RequiresTime:   tl.RequiresTime,
			}); err != nil {
				return fmt.Errorf("task %q: %w", tl.Name, err)
			}
			res.Tasks++
		}
		return nil
	}

	for _, pl := range layout.Phases {
		phase, err := s.AddPhase(ctx, AddPhaseRequest{Name: pl.Name})
		if err != nil {
			return res, fmt.Errorf("phase %q: %w", pl.Name, err)
		}
		res.Phases++
		for _, cl := range pl.Categories {
			if err := addCategory(cl, &phase.ID); err != nil {
				return res, err
			}
		}
	}
	for _, cl := range layout.Generators {
		if err := addCategory(cl, nil); err != nil {
			return res, err
		}
	}

	if s.logger != nil {
		s.logger.Info("facility seeded", "phases", res.Phases, "categories", res.Categories, "tasks", res.Tasks)
	}
	return res, nil
}
