package pipeline

import (
	"github.com/google/uuid"

	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/render/chart"
	"github.com/matzehuels/skyline/pkg/render/chart/sink"
)

// Render generates output artifacts for the plan in the requested formats.
// The run ID is embedded in JSON output.
func Render(p *chart.Plan, opts Options, id uuid.UUID) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		data, err := renderFormat(p, format, opts, id)
		if err != nil {
			return nil, err
		}
		opts.Logger.Debug("rendered artifact", "format", format, "bytes", len(data))
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(p *chart.Plan, format string, opts Options, id uuid.UUID) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(p, svgOptions(opts)...)
	case FormatPNG:
		pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale)}
		if opts.NoTitle {
			pngOpts = append(pngOpts, sink.WithPNGNoTitle())
		}
		return sink.RenderPNG(p, pngOpts...)
	case FormatPDF:
		return sink.RenderPDF(p, sink.WithPDFSVGOptions(svgOptions(opts)...))
	case FormatJSON:
		return sink.RenderJSON(p, sink.WithRunID(id), sink.WithIndent())
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}

func svgOptions(opts Options) []sink.SVGOption {
	if opts.NoTitle {
		return []sink.SVGOption{sink.WithoutTitle()}
	}
	return nil
}
