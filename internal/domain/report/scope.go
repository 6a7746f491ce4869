package report

import (
	"fmt"
	"strings"

	"github.com/rpggio/upkeep/internal/domain/board"
)

// ScopeKind selects which entries a report covers.
type ScopeKind string

const (
	ScopeAll        ScopeKind = "all"
	ScopeGenerators ScopeKind = "generators"
	ScopePhase      ScopeKind = "phase"
	ScopeCategory   ScopeKind = "category"
	ScopeTask       ScopeKind = "task"
)

// Scope is a report filter: everything, the generator bucket, or a single
// phase, category or task.
type Scope struct {
	Kind ScopeKind `json:"kind"`
	ID   string    `json:"id,omitempty"`
}

// All is the unfiltered scope.
var All = Scope{Kind: ScopeAll}

// ParseScope validates a scope kind and ID. An empty kind means all.
func ParseScope(kind, id string) (Scope, error) {
	k := ScopeKind(strings.ToLower(strings.TrimSpace(kind)))
	id = strings.TrimSpace(id)
	switch k {
	case "", ScopeAll:
		return All, nil
	case ScopeGenerators:
		return Scope{Kind: ScopeGenerators}, nil
	case ScopePhase, ScopeCategory, ScopeTask:
		if id == "" {
			return Scope{}, fmt.Errorf("%w: %s scope requires an id", ErrInvalidScope, k)
		}
		return Scope{Kind: k, ID: id}, nil
	default:
		return Scope{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidScope, kind)
	}
}

// Includes reports whether a located task falls inside the scope. Entries
// with dangling references only appear in the all scope.
func (s Scope) Includes(loc board.Location) bool {
	switch s.Kind {
	case "", ScopeAll:
		return true
	case ScopeGenerators:
		return loc.Generator
	case ScopePhase:
		return loc.PhaseID != nil && *loc.PhaseID == s.ID
	case ScopeCategory:
		return loc.Known && loc.CategoryID == s.ID
	case ScopeTask:
		return loc.Known && loc.TaskID == s.ID
	default:
		return false
	}
}

// Label names the scope for filenames and headings.
func (s Scope) Label() string {
	if s.Kind == "" {
		return string(ScopeAll)
	}
	if s.ID == "" {
		return string(s.Kind)
	}
	return string(s.Kind) + "-" + s.ID
}
