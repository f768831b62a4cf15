// Package series defines the named value series drawn as stacked areas and
// the order in which they are stacked.
package series

import (
	"cmp"
	"slices"

	"github.com/matzehuels/skyline/pkg/activity"
)

// Named is one plottable series: a display name, a CSS-style class, and the
// function that extracts its value from a record. Max is filled in by
// [WithMax] from the records being drawn.
type Named struct {
	Name    string
	Class   string
	Extract func(activity.Record) float64
	Max     float64
}

// Built-in series.
var (
	Edits = Named{
		Name:    "Solution Code",
		Class:   "edits",
		Extract: func(r activity.Record) float64 { return r.Edits },
	}
	TestEdits = Named{
		Name:    "Test Code",
		Class:   "testEdits",
		Extract: func(r activity.Record) float64 { return r.TestEdits },
	}
	Launches = Named{
		Name:    "Launches",
		Class:   "launches",
		Extract: func(r activity.Record) float64 { return r.Launches },
	}
)

var builtin = []Named{Edits, TestEdits, Launches}

// Lookup returns the built-in series with the given class.
func Lookup(class string) (Named, bool) {
	for _, s := range builtin {
		if s.Class == class {
			return s, true
		}
	}
	return Named{}, false
}

// Classes returns the classes of all built-in series.
func Classes() []string {
	out := make([]string, len(builtin))
	for i, s := range builtin {
		out[i] = s.Class
	}
	return out
}

// WithMax returns a copy of each series with Max set to the largest value it
// extracts from records. Empty records give a Max of 0.
func WithMax(records []activity.Record, named []Named) []Named {
	out := make([]Named, len(named))
	for i, s := range named {
		s.Max = 0
		for _, r := range records {
			s.Max = max(s.Max, s.Extract(r))
		}
		out[i] = s
	}
	return out
}

// MaxOf returns the largest Max across named, or 0 for none.
func MaxOf(named []Named) float64 {
	var m float64
	for _, s := range named {
		m = max(m, s.Max)
	}
	return m
}

// Order returns the series sorted by Max, largest first, so that smaller
// areas are drawn last and stay visible. Ties keep their input order.
// The input slice is not modified.
func Order(named []Named) []Named {
	out := slices.Clone(named)
	slices.SortStableFunc(out, func(a, b Named) int {
		return cmp.Compare(b.Max, a.Max)
	})
	return out
}
