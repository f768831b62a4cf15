package sink

import (
	"github.com/matzehuels/skyline/pkg/render"
	"github.com/matzehuels/skyline/pkg/render/chart"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	svgOpts []SVGOption
}

// WithPDFSVGOptions passes options through to the underlying SVG renderer.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = opts }
}

// RenderPDF renders the plan as PDF via SVG conversion. The page always has
// a background.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(p *chart.Plan, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	svg, err := RenderSVG(p, append(r.svgOpts, WithBackground())...)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}
