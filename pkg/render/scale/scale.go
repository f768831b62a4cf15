// Package scale maps record times and series values onto drawing
// coordinates.
//
// A [Time] scale maps the record time extent onto the horizontal range and a
// [Linear] scale maps [0, max] onto the vertical range. Both are plain values
// created per render by [Compute]; nothing is cached between charts.
//
// Ranges are given in drawing order, so an SVG-style value scale whose origin
// is at the bottom uses RangeMin = height and RangeMax = 0. When a domain is
// degenerate (min == max) every input maps to RangeMin.
package scale

import (
	"math"
	"time"

	"github.com/matzehuels/skyline/pkg/activity"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/render/series"
)

// Time maps instants linearly onto [RangeMin, RangeMax].
type Time struct {
	DomainMin, DomainMax time.Time
	RangeMin, RangeMax   float64
}

// X returns the position of t. Instants outside the domain extrapolate.
func (s Time) X(t time.Time) float64 {
	span := s.DomainMax.Sub(s.DomainMin)
	if span <= 0 {
		return s.RangeMin
	}
	frac := float64(t.Sub(s.DomainMin)) / float64(span)
	return s.RangeMin + frac*(s.RangeMax-s.RangeMin)
}

// Linear maps values linearly onto [RangeMin, RangeMax].
type Linear struct {
	DomainMin, DomainMax float64
	RangeMin, RangeMax   float64
}

// Y returns the position of v. Values outside the domain extrapolate.
func (s Linear) Y(v float64) float64 {
	span := s.DomainMax - s.DomainMin
	if span == 0 || math.IsNaN(span) {
		return s.RangeMin
	}
	return s.RangeMin + (v-s.DomainMin)/span*(s.RangeMax-s.RangeMin)
}

// Baseline returns the position of the value 0.
func (s Linear) Baseline() float64 { return s.Y(0) }

// Bounds is the drawable plot area. The time axis spans [0, Width] and the
// value axis spans [Height, 0].
type Bounds struct {
	Width  float64
	Height float64
}

// Scales is the pair of scales shared by every series of one chart.
type Scales struct {
	X Time
	Y Linear
}

// Compute derives the chart scales. The time domain is [min Start, max End]
// over records and the value domain is [0, max Max] over named, so every
// series shares one vertical scale.
func Compute(records []activity.Record, named []series.Named, b Bounds) (Scales, error) {
	if len(records) == 0 {
		return Scales{}, errors.New(errors.ErrCodeEmptyDataset, "no records to scale")
	}

	lo, hi := records[0].Start, records[0].End
	for _, r := range records[1:] {
		if r.Start.Before(lo) {
			lo = r.Start
		}
		if r.End.After(hi) {
			hi = r.End
		}
	}

	return Scales{
		X: Time{DomainMin: lo, DomainMax: hi, RangeMin: 0, RangeMax: b.Width},
		Y: Linear{DomainMin: 0, DomainMax: series.MaxOf(named), RangeMin: b.Height, RangeMax: 0},
	}, nil
}
