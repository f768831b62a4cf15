// Package deadline resolves the calendar deadlines of a programming
// assignment (milestones, early-bonus cutoff, final due date) from a
// registry keyed by term and assignment.
//
// Registries are nested tables of epoch-millisecond values:
//
//	{"fall2016": {"assignment3": {"milestone1": 1477350000000, "dueTime": 1478271600000}}}
//
// Any field may be missing from an entry. A missing field resolves to an
// unset [Instant], which is distinguishable from a valid zero time; callers
// must check [Instant.Valid] before drawing or windowing against it.
package deadline

import (
	"time"
)

// Kind identifies one deadline field.
type Kind int

const (
	Milestone1 Kind = iota
	Milestone2
	Milestone3
	EarlyBonus
	Due
)

// Kinds lists every deadline field in calendar order.
var Kinds = []Kind{Milestone1, Milestone2, Milestone3, EarlyBonus, Due}

var kindKeys = [...]string{
	Milestone1: "milestone1",
	Milestone2: "milestone2",
	Milestone3: "milestone3",
	EarlyBonus: "earlyBonus",
	Due:        "dueTime",
}

// Key returns the registry field name for k.
func (k Kind) Key() string {
	if k < 0 || int(k) >= len(kindKeys) {
		return ""
	}
	return kindKeys[k]
}

func (k Kind) String() string { return k.Key() }

// Instant is a point in time that may be unset.
type Instant struct {
	Time  time.Time
	Valid bool
}

// At returns a valid Instant for t.
func At(t time.Time) Instant { return Instant{Time: t, Valid: true} }

// FromMillis returns a valid Instant for epoch milliseconds ms, in UTC.
func FromMillis(ms int64) Instant { return At(time.UnixMilli(ms).UTC()) }

// Unset is the invalid Instant.
var Unset = Instant{}

// Deadlines holds the resolved deadlines of one assignment.
type Deadlines struct {
	Milestone1 Instant
	Milestone2 Instant
	Milestone3 Instant
	EarlyBonus Instant
	Due        Instant
}

// Get returns the Instant for kind k.
func (d Deadlines) Get(k Kind) Instant {
	switch k {
	case Milestone1:
		return d.Milestone1
	case Milestone2:
		return d.Milestone2
	case Milestone3:
		return d.Milestone3
	case EarlyBonus:
		return d.EarlyBonus
	case Due:
		return d.Due
	}
	return Unset
}

func (d *Deadlines) set(k Kind, in Instant) {
	switch k {
	case Milestone1:
		d.Milestone1 = in
	case Milestone2:
		d.Milestone2 = in
	case Milestone3:
		d.Milestone3 = in
	case EarlyBonus:
		d.EarlyBonus = in
	case Due:
		d.Due = in
	}
}

// ValidCount returns how many fields are set.
func (d Deadlines) ValidCount() int {
	n := 0
	for _, k := range Kinds {
		if d.Get(k).Valid {
			n++
		}
	}
	return n
}

// FromEntry converts a registry entry into Deadlines. Unknown field names are
// ignored; absent ones stay unset.
func FromEntry(e Entry) Deadlines {
	var d Deadlines
	for _, k := range Kinds {
		if ms, ok := e[k.Key()]; ok {
			d.set(k, FromMillis(ms))
		}
	}
	return d
}
