package recurrence

import "strings"

// Kind is a normalized recurrence cadence.
type Kind string

const (
	Weekly     Kind = "weekly"
	Monthly    Kind = "monthly"
	Quarterly  Kind = "quarterly"
	Semiannual Kind = "semiannual"
	Annual     Kind = "annual"
)

// Default is used when a task carries no recognizable recurrence label.
const Default = Monthly

// Policy holds the due and warn thresholds for a cadence, in whole days.
type Policy struct {
	Kind     Kind `json:"kind"`
	DueDays  int  `json:"due_days"`
	WarnDays int  `json:"warn_days"`
}

var table = map[Kind]Policy{
	Weekly:     {Kind: Weekly, DueDays: 7, WarnDays: 5},
	Monthly:    {Kind: Monthly, DueDays: 31, WarnDays: 24},
	Quarterly:  {Kind: Quarterly, DueDays: 91, WarnDays: 81},
	Semiannual: {Kind: Semiannual, DueDays: 182, WarnDays: 167},
	Annual:     {Kind: Annual, DueDays: 365, WarnDays: 350},
}

// matchers are checked in order; the first substring hit wins.
var matchers = []struct {
	needles []string
	kind    Kind
}{
	{needles: []string{"week"}, kind: Weekly},
	{needles: []string{"month"}, kind: Monthly},
	{needles: []string{"quarter"}, kind: Quarterly},
	{needles: []string{"semi"}, kind: Semiannual},
	{needles: []string{"annual", "year"}, kind: Annual},
}

// Classify maps a free-form recurrence label to a Kind.
// Matching is case-insensitive and substring based, so "Bi-Weekly" is weekly
// and "yearly" is annual. Empty or unrecognized labels map to Default.
func Classify(label string) Kind {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" {
		return Default
	}
	for _, m := range matchers {
		for _, needle := range m.needles {
			if strings.Contains(normalized, needle) {
				return m.kind
			}
		}
	}
	return Default
}

// Resolve returns the policy for a recurrence label.
func Resolve(label string) Policy {
	return table[Classify(label)]
}

// For returns the policy for a known Kind, falling back to Default.
func For(kind Kind) Policy {
	if p, ok := table[kind]; ok {
		return p
	}
	return table[Default]
}

// Kinds lists every cadence from shortest to longest.
func Kinds() []Kind {
	return []Kind{Weekly, Monthly, Quarterly, Semiannual, Annual}
}
