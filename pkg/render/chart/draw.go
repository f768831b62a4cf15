package chart

import (
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/render/geometry"
	"github.com/matzehuels/skyline/pkg/render/overlay"
)

// Surface receives the drawing calls of a chart. Coordinates are relative to
// the plot area. Any error aborts the drawing and is returned by [Draw]
// unchanged.
type Surface interface {
	Area(s geometry.Series) error
	Axis(a Axis) error
	Legend(l Legend) error
	Line(m overlay.Marker) error
}

// Draw replays p onto s: areas in stack order, the x axis, the y axis, the
// legend, then the deadline markers.
func Draw(p *Plan, s Surface) error {
	if p == nil {
		return errors.New(errors.ErrCodeInternal, "draw: nil plan")
	}
	for _, a := range p.Areas {
		if err := s.Area(a); err != nil {
			return err
		}
	}
	if err := s.Axis(p.XAxis); err != nil {
		return err
	}
	if err := s.Axis(p.YAxis); err != nil {
		return err
	}
	if err := s.Legend(p.Legend); err != nil {
		return err
	}
	for _, m := range p.Markers {
		if err := s.Line(m); err != nil {
			return err
		}
	}
	return nil
}
