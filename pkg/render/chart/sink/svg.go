package sink

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/skyline/pkg/render/chart"
	"github.com/matzehuels/skyline/pkg/render/geometry"
	"github.com/matzehuels/skyline/pkg/render/overlay"
	"github.com/matzehuels/skyline/pkg/render/styles"
)

const svgCSS = `
    text { font: 10px sans-serif; }
    .title { font-size: 14px; }
    .axis path, .axis line { fill: none; stroke-width: 1; shape-rendering: crispEdges; }
    .area { fill-opacity: 0.85; stroke-width: 1; }
    .legend { font-size: 12px; }
    .date-line { fill: none; stroke-width: 1.5; }`

const legendRowHeight = 20.0

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette    *styles.Palette
	noTitle    bool
	background bool
}

// WithPalette overrides the palette named by the plan's variant.
func WithPalette(p styles.Palette) SVGOption { return func(r *svgRenderer) { r.palette = &p } }

// WithoutTitle omits the chart title.
func WithoutTitle() SVGOption { return func(r *svgRenderer) { r.noTitle = true } }

// WithBackground fills the frame with the palette background.
func WithBackground() SVGOption { return func(r *svgRenderer) { r.background = true } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws the plan as a standalone SVG document.
func RenderSVG(p *chart.Plan, opts ...SVGOption) ([]byte, error) {
	r := newSVGRenderer(opts...)
	pal, err := resolvePalette(p, r.palette)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(p.Width), num(p.Height), num(p.Width), num(p.Height))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgCSS)
	if r.background {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", pal.Background)
	}
	if p.Title != "" && !r.noTitle {
		fmt.Fprintf(&buf, `  <text class="title" x="%s" y="14" fill="%s">%s</text>`+"\n",
			num(p.Variant.Margin.Left), pal.Text, styles.EscapeXML(p.Title))
	}
	fmt.Fprintf(&buf, `  <g transform="translate(%s,%s)">`+"\n", num(p.Variant.Margin.Left), num(p.Variant.Margin.Top))

	s := &svgSurface{buf: &buf, palette: pal}
	if err := chart.Draw(p, s); err != nil {
		return nil, err
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes(), nil
}

func resolvePalette(p *chart.Plan, override *styles.Palette) (styles.Palette, error) {
	if override != nil {
		return *override, nil
	}
	return styles.LookupPalette(p.Variant.Palette)
}

// svgSurface writes chart elements into an open <g> element.
type svgSurface struct {
	buf     *bytes.Buffer
	palette styles.Palette
}

func (s *svgSurface) Area(a geometry.Series) error {
	color := s.palette.SeriesColor(a.Class)
	fmt.Fprintf(s.buf, `    <path class="area %s" data-legend="%s" fill="%s" stroke="%s"`,
		styles.EscapeXML(a.Class), styles.EscapeXML(a.Name), color, color)
	if dash, ok := s.palette.SeriesDash[a.Class]; ok {
		fmt.Fprintf(s.buf, ` stroke-dasharray="%s"`, dash)
	}
	fmt.Fprintf(s.buf, ` d="%s"/>`+"\n", styles.AreaPath(a).SVG())
	return nil
}

func (s *svgSurface) Axis(a chart.Axis) error {
	stroke := s.palette.Axis
	switch a.Orient {
	case chart.OrientBottom:
		fmt.Fprintf(s.buf, `    <g class="x axis" transform="translate(0,%s)">`+"\n", num(a.Offset))
		fmt.Fprintf(s.buf, `      <path stroke="%s" d="M0,0H%s"/>`+"\n", stroke, num(a.Length))
		for _, t := range a.Ticks {
			fmt.Fprintf(s.buf, `      <g class="tick" transform="translate(%s,0)"><line stroke="%s" y2="6"/><text y="9" dy=".71em" text-anchor="middle">%s</text></g>`+"\n",
				num(t.Pos), stroke, styles.EscapeXML(t.Label))
		}
	default:
		fmt.Fprintf(s.buf, `    <g class="y axis" transform="translate(%s,0)">`+"\n", num(a.Offset))
		fmt.Fprintf(s.buf, `      <path stroke="%s" d="M0,0V%s"/>`+"\n", stroke, num(a.Length))
		for _, t := range a.Ticks {
			fmt.Fprintf(s.buf, `      <g class="tick" transform="translate(0,%s)"><line stroke="%s" x2="-6"/><text x="-9" dy=".32em" text-anchor="end">%s</text></g>`+"\n",
				num(t.Pos), stroke, styles.EscapeXML(t.Label))
		}
	}
	if a.Label != "" {
		fmt.Fprintf(s.buf, `      <text class="axis-text" transform="rotate(-90)" y="6" dy=".71em" text-anchor="end">%s</text>`+"\n",
			styles.EscapeXML(a.Label))
	}
	s.buf.WriteString("    </g>\n")
	return nil
}

func (s *svgSurface) Legend(l chart.Legend) error {
	fmt.Fprintf(s.buf, `    <g class="legend" transform="translate(%s,%s)">`+"\n", num(l.X), num(l.Y))
	for i, e := range l.Entries {
		fmt.Fprintf(s.buf, `      <g class="cell" transform="translate(0,%s)"><circle r="5" fill="%s"/><text x="10" dy=".32em">%s</text></g>`+"\n",
			num(float64(i)*legendRowHeight), s.palette.SeriesColor(e.Class), styles.EscapeXML(e.Name))
	}
	s.buf.WriteString("    </g>\n")
	return nil
}

func (s *svgSurface) Line(m overlay.Marker) error {
	color := s.palette.MarkerColor(m.Class)
	fmt.Fprintf(s.buf, `    <g class="marker" id="marker-%s">`+"\n", m.Kind.Key())
	fmt.Fprintf(s.buf, `      <path class="date-line %s" stroke="%s"`, m.Class, color)
	if s.palette.MarkerDash != "" {
		fmt.Fprintf(s.buf, ` stroke-dasharray="%s"`, s.palette.MarkerDash)
	}
	fmt.Fprintf(s.buf, ` d="M%s,%sL%s,%s"/>`+"\n", num(m.From.X), num(m.From.Y), num(m.To.X), num(m.To.Y))
	fmt.Fprintf(s.buf, `      <text class="axis-text" transform="translate(%s,%s) rotate(%s)" dy=".71em" text-anchor="end" fill="%s">%s</text>`+"\n",
		num(m.Anchor.X), num(m.Anchor.Y), num(m.Rotation), color, styles.EscapeXML(m.Label))
	s.buf.WriteString("    </g>\n")
	return nil
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
