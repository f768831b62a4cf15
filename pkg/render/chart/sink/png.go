package sink

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/render/chart"
	"github.com/matzehuels/skyline/pkg/render/geometry"
	"github.com/matzehuels/skyline/pkg/render/overlay"
	"github.com/matzehuels/skyline/pkg/render/styles"
)

const (
	areaAlpha = 0.85
	tickSize  = 6.0
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	palette *styles.Palette
	scale   float64
	noTitle bool
}

// WithPNGPalette overrides the palette named by the plan's variant.
func WithPNGPalette(p styles.Palette) PNGOption { return func(r *pngRenderer) { r.palette = &p } }

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// WithPNGNoTitle omits the chart title.
func WithPNGNoTitle() PNGOption { return func(r *pngRenderer) { r.noTitle = true } }

// RenderPNG rasterizes the plan. Text uses gg's built-in bitmap face, so no
// font files are needed.
func RenderPNG(p *chart.Plan, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", r.scale)
	}
	pal, err := resolvePalette(p, r.palette)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(int(p.Width*r.scale), int(p.Height*r.scale))
	dc.Scale(r.scale, r.scale)

	s := &pngSurface{dc: dc, palette: pal}
	if err := s.setColor(pal.Background); err != nil {
		return nil, err
	}
	dc.Clear()

	if p.Title != "" && !r.noTitle {
		if err := s.setColor(pal.Text); err != nil {
			return nil, err
		}
		dc.DrawStringAnchored(p.Title, p.Variant.Margin.Left, p.Variant.Margin.Top/2, 0, 0.5)
	}

	dc.Translate(p.Variant.Margin.Left, p.Variant.Margin.Top)
	if err := chart.Draw(p, s); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// pngSurface draws chart elements onto a gg context already translated to
// the plot origin.
type pngSurface struct {
	dc      *gg.Context
	palette styles.Palette
}

func (s *pngSurface) setColor(name string) error {
	c, err := styles.ParseColor(name)
	if err != nil {
		return err
	}
	s.dc.SetColor(c)
	return nil
}

func (s *pngSurface) Area(a geometry.Series) error {
	path := styles.AreaPath(a)
	if len(path) == 0 {
		return nil
	}
	c, err := styles.ParseColor(s.palette.SeriesColor(a.Class))
	if err != nil {
		return err
	}

	s.trace(path)
	s.dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, areaAlpha)
	s.dc.FillPreserve()
	s.dc.SetColor(c)
	s.dc.SetLineWidth(1)
	s.dc.SetDash(parseDash(s.palette.SeriesDash[a.Class])...)
	s.dc.Stroke()
	s.dc.SetDash()
	return nil
}

func (s *pngSurface) trace(path styles.Path) {
	s.dc.NewSubPath()
	for _, seg := range path {
		switch seg.Op {
		case styles.OpMove:
			s.dc.MoveTo(seg.Pts[0].X, seg.Pts[0].Y)
		case styles.OpLine:
			s.dc.LineTo(seg.Pts[0].X, seg.Pts[0].Y)
		case styles.OpCubic:
			s.dc.CubicTo(seg.Pts[0].X, seg.Pts[0].Y, seg.Pts[1].X, seg.Pts[1].Y, seg.Pts[2].X, seg.Pts[2].Y)
		case styles.OpClose:
			s.dc.ClosePath()
		}
	}
}

func (s *pngSurface) Axis(a chart.Axis) error {
	if err := s.setColor(s.palette.Axis); err != nil {
		return err
	}
	dc := s.dc
	dc.SetLineWidth(1)

	switch a.Orient {
	case chart.OrientBottom:
		dc.DrawLine(0, a.Offset, a.Length, a.Offset)
		dc.Stroke()
		for _, t := range a.Ticks {
			dc.DrawLine(t.Pos, a.Offset, t.Pos, a.Offset+tickSize)
			dc.Stroke()
			dc.DrawStringAnchored(t.Label, t.Pos, a.Offset+tickSize+3, 0.5, 1)
		}
	default:
		dc.DrawLine(a.Offset, 0, a.Offset, a.Length)
		dc.Stroke()
		for _, t := range a.Ticks {
			dc.DrawLine(a.Offset-tickSize, t.Pos, a.Offset, t.Pos)
			dc.Stroke()
			dc.DrawStringAnchored(t.Label, a.Offset-tickSize-3, t.Pos, 1, 0.5)
		}
	}

	if a.Label != "" {
		dc.Push()
		dc.RotateAbout(gg.Radians(-90), a.Offset+6, 0)
		dc.DrawStringAnchored(a.Label, a.Offset+6, 0, 1, 1)
		dc.Pop()
	}
	return nil
}

func (s *pngSurface) Legend(l chart.Legend) error {
	for i, e := range l.Entries {
		y := l.Y + float64(i)*legendRowHeight
		if err := s.setColor(s.palette.SeriesColor(e.Class)); err != nil {
			return err
		}
		s.dc.DrawCircle(l.X, y, 5)
		s.dc.Fill()
		if err := s.setColor(s.palette.Text); err != nil {
			return err
		}
		s.dc.DrawStringAnchored(e.Name, l.X+10, y, 0, 0.5)
	}
	return nil
}

func (s *pngSurface) Line(m overlay.Marker) error {
	if err := s.setColor(s.palette.MarkerColor(m.Class)); err != nil {
		return err
	}
	dc := s.dc
	dc.SetLineWidth(1.5)
	dc.SetDash(parseDash(s.palette.MarkerDash)...)
	dc.DrawLine(m.From.X, m.From.Y, m.To.X, m.To.Y)
	dc.Stroke()
	dc.SetDash()

	dc.Push()
	dc.RotateAbout(gg.Radians(m.Rotation), m.Anchor.X, m.Anchor.Y)
	dc.DrawStringAnchored(m.Label, m.Anchor.X, m.Anchor.Y, 1, 1)
	dc.Pop()
	return nil
}

// parseDash reads an SVG dash array such as "10,10". Malformed entries are
// skipped.
func parseDash(s string) []float64 {
	if s == "" {
		return nil
	}
	var out []float64
	for _, f := range strings.Split(s, ",") {
		if v, err := strconv.ParseFloat(strings.TrimSpace(f), 64); err == nil && v > 0 {
			out = append(out, v)
		}
	}
	return out
}
