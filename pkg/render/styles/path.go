package styles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/skyline/pkg/render/geometry"
)

// Point is a drawing coordinate.
type Point struct{ X, Y float64 }

// Op is a path command.
type Op int

const (
	OpMove Op = iota
	OpLine
	OpCubic // Pts holds two control points and the end point
	OpClose
)

// Segment is one path command with its points.
type Segment struct {
	Op  Op
	Pts []Point
}

// Path is a sequence of drawing commands.
type Path []Segment

func (p *Path) moveTo(x, y float64) { *p = append(*p, Segment{OpMove, []Point{{x, y}}}) }
func (p *Path) lineTo(x, y float64) { *p = append(*p, Segment{OpLine, []Point{{x, y}}}) }
func (p *Path) close()              { *p = append(*p, Segment{Op: OpClose}) }
func (p *Path) cubicTo(x1, y1, x2, y2, x, y float64) {
	*p = append(*p, Segment{OpCubic, []Point{{x1, y1}, {x2, y2}, {x, y}}})
}

// SVG returns the path as SVG path data.
func (p Path) SVG() string {
	var b strings.Builder
	for _, s := range p {
		switch s.Op {
		case OpMove:
			b.WriteByte('M')
		case OpLine:
			b.WriteByte('L')
		case OpCubic:
			b.WriteByte('C')
		case OpClose:
			b.WriteByte('Z')
			continue
		}
		for i, pt := range s.Pts {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%s,%s", num(pt.X), num(pt.Y))
		}
	}
	return b.String()
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// AreaPath returns the closed outline of s. An empty series gives an empty
// path.
func AreaPath(s geometry.Series) Path {
	if len(s.Spans) == 0 {
		return nil
	}
	switch s.Curve {
	case geometry.CurveLinear:
		return linearArea(s.Spans)
	case geometry.CurveBasis:
		return basisArea(s.Spans)
	}
	return stepArea(s.Spans)
}

// stepArea draws each span as a block standing on the baseline, joined along
// the baseline.
func stepArea(spans []geometry.Span) Path {
	var p Path
	first := spans[0]
	p.moveTo(first.X0, first.Y0)
	for _, sp := range spans {
		p.lineTo(sp.X0, sp.Y0)
		p.lineTo(sp.X0, sp.Y1)
		p.lineTo(sp.X1, sp.Y1)
		p.lineTo(sp.X1, sp.Y0)
	}
	p.close()
	return p
}

// topline returns the span corners along the top edge. A span with zero
// width contributes one point.
func topline(spans []geometry.Span) []Point {
	pts := make([]Point, 0, 2*len(spans))
	for _, sp := range spans {
		pts = append(pts, Point{sp.X0, sp.Y1})
		if sp.X1 != sp.X0 {
			pts = append(pts, Point{sp.X1, sp.Y1})
		}
	}
	return pts
}

func linearArea(spans []geometry.Span) Path {
	pts := topline(spans)
	base := spans[0].Y0

	var p Path
	p.moveTo(pts[0].X, base)
	for _, pt := range pts {
		p.lineTo(pt.X, pt.Y)
	}
	p.lineTo(pts[len(pts)-1].X, base)
	p.close()
	return p
}

func basisArea(spans []geometry.Span) Path {
	pts := topline(spans)
	base := spans[0].Y0

	var p Path
	p.moveTo(pts[0].X, base)
	p.lineTo(pts[0].X, pts[0].Y)
	basis(&p, pts)
	p.lineTo(pts[len(pts)-1].X, base)
	p.close()
	return p
}

// basis appends a uniform cubic B-spline through pts, clamped to the first
// and last point. The path must already be positioned at pts[0].
func basis(p *Path, pts []Point) {
	switch len(pts) {
	case 1:
		return
	case 2:
		p.lineTo(pts[1].X, pts[1].Y)
		return
	}

	bezier := func(a, b, c Point) {
		p.cubicTo(
			(2*a.X+b.X)/3, (2*a.Y+b.Y)/3,
			(a.X+2*b.X)/3, (a.Y+2*b.Y)/3,
			(a.X+4*b.X+c.X)/6, (a.Y+4*b.Y+c.Y)/6,
		)
	}

	a, b := pts[0], pts[1]
	p.lineTo((5*a.X+b.X)/6, (5*a.Y+b.Y)/6)
	for _, c := range pts[2:] {
		bezier(a, b, c)
		a, b = b, c
	}
	bezier(a, b, b)
	p.lineTo(b.X, b.Y)
}
