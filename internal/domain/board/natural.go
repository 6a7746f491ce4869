package board

import (
	"strings"

	"github.com/maruel/natural"
)

// NaturalLess orders strings case-insensitively with embedded digit runs
// compared by numeric value, so "Phase 2" sorts before "Phase 10".
func NaturalLess(a, b string) bool {
	return natural.Less(strings.ToLower(a), strings.ToLower(b))
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
