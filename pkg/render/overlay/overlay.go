// Package overlay builds the vertical deadline markers drawn over a chart.
package overlay

import (
	"github.com/matzehuels/skyline/pkg/deadline"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/render/scale"
)

// LabelOffset is the horizontal distance between a marker line and its label.
const LabelOffset = 6.0

// LabelRotation is the rotation of marker labels in degrees.
const LabelRotation = -90.0

// Class groups markers for styling.
type Class string

const (
	ClassMilestone Class = "milestone"
	ClassEarly     Class = "early"
	ClassDue       Class = "due"
)

// ClassOf returns the styling class of a deadline kind.
func ClassOf(k deadline.Kind) Class {
	switch k {
	case deadline.EarlyBonus:
		return ClassEarly
	case deadline.Due:
		return ClassDue
	}
	return ClassMilestone
}

// Point is a drawing coordinate.
type Point struct{ X, Y float64 }

// Marker is one deadline line with its rotated label.
type Marker struct {
	Kind     deadline.Kind
	Class    Class
	Label    string
	From, To Point   // bottom to top of the plot area
	Anchor   Point   // label anchor, text ends here
	Rotation float64 // degrees
}

// LabelSet names the label texts used for markers.
type LabelSet string

const (
	LabelsShort LabelSet = "short"
	LabelsLong  LabelSet = "long"
)

var labelTexts = map[LabelSet]map[deadline.Kind]string{
	LabelsShort: {
		deadline.Milestone1: "M1",
		deadline.Milestone2: "M2",
		deadline.Milestone3: "M3",
		deadline.EarlyBonus: "E",
		deadline.Due:        "F",
	},
	LabelsLong: {
		deadline.Milestone1: "Milestone 1 Due",
		deadline.Milestone2: "Milestone 2 Due",
		deadline.Milestone3: "Milestone 3 Due",
		deadline.EarlyBonus: "Early Bonus Deadline",
		deadline.Due:        "Final Submission Due",
	},
}

// ParseLabelSet validates a label set name.
func ParseLabelSet(s string) (LabelSet, error) {
	if _, ok := labelTexts[LabelSet(s)]; !ok {
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown label set %q (valid: short, long)", s)
	}
	return LabelSet(s), nil
}

// Text returns the label of k in the set. Unknown sets fall back to short.
func (l LabelSet) Text(k deadline.Kind) string {
	texts, ok := labelTexts[l]
	if !ok {
		texts = labelTexts[LabelsShort]
	}
	return texts[k]
}

// Build returns one marker per valid deadline in d, in milestone 1, 2, 3,
// early bonus, due order. Lines run from the baseline at height up to 0.
// Deadlines outside the time domain are kept; they extrapolate past the plot
// edges.
func Build(d deadline.Deadlines, sc scale.Scales, height float64, labels LabelSet) []Marker {
	markers := make([]Marker, 0, len(deadline.Kinds))
	for _, k := range deadline.Kinds {
		in := d.Get(k)
		if !in.Valid {
			continue
		}
		x := sc.X.X(in.Time)
		markers = append(markers, Marker{
			Kind:     k,
			Class:    ClassOf(k),
			Label:    labels.Text(k),
			From:     Point{X: x, Y: height},
			To:       Point{X: x, Y: 0},
			Anchor:   Point{X: x + LabelOffset, Y: 0},
			Rotation: LabelRotation,
		})
	}
	return markers
}
