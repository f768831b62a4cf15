// Package geometry turns records into the per-record area spans of a series.
//
// Geometry is purely positional. The curve is carried as a hint for the
// drawing surface and no interpolation happens here.
package geometry

import (
	"github.com/matzehuels/skyline/pkg/activity"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/render/scale"
	"github.com/matzehuels/skyline/pkg/render/series"
)

// Curve names how a surface connects consecutive spans.
type Curve string

const (
	CurveStep   Curve = "step"   // step-after: each value holds until the next span
	CurveBasis  Curve = "basis"  // smoothed uniform B-spline
	CurveLinear Curve = "linear" // straight segments
)

// Curves lists the supported curves.
var Curves = []Curve{CurveStep, CurveBasis, CurveLinear}

// ParseCurve validates a curve name.
func ParseCurve(s string) (Curve, error) {
	for _, c := range Curves {
		if string(c) == s {
			return c, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown curve %q (valid: step, basis, linear)", s)
}

// Span is the drawn extent of one record: horizontally from X0 to X1 and
// vertically from the baseline Y0 to the value Y1.
type Span struct {
	X0 float64 `json:"x0"`
	X1 float64 `json:"x1"`
	Y0 float64 `json:"y0"`
	Y1 float64 `json:"y1"`
}

// Series is the geometry of one named series, one span per record.
type Series struct {
	Name  string
	Class string
	Curve Curve
	Spans []Span
}

// Area builds the session-span geometry of s: each record covers
// [X(Start), X(End)] at height Y(value).
func Area(records []activity.Record, s series.Named, sc scale.Scales, curve Curve) Series {
	base := sc.Y.Baseline()
	spans := make([]Span, len(records))
	for i, r := range records {
		spans[i] = Span{
			X0: sc.X.X(r.Start),
			X1: sc.X.X(r.End),
			Y0: base,
			Y1: sc.Y.Y(s.Extract(r)),
		}
	}
	return Series{Name: s.Name, Class: s.Class, Curve: curve, Spans: spans}
}

// Point builds single-timestamp geometry: every span collapses to X(Start).
func Point(records []activity.Record, s series.Named, sc scale.Scales, curve Curve) Series {
	base := sc.Y.Baseline()
	spans := make([]Span, len(records))
	for i, r := range records {
		x := sc.X.X(r.Start)
		spans[i] = Span{X0: x, X1: x, Y0: base, Y1: sc.Y.Y(s.Extract(r))}
	}
	return Series{Name: s.Name, Class: s.Class, Curve: curve, Spans: spans}
}
