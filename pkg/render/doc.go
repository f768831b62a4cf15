// Package render draws skyline charts.
//
// # Overview
//
// Rendering is split into small packages that run in sequence:
//
//   - [scale]: map record times and values to coordinates
//   - [series]: the named value series and their stacking order
//   - [geometry]: one span per record for each series
//   - [overlay]: vertical deadline markers with rotated labels
//   - [chart]: assemble a positioned plan and replay it onto a surface
//   - [chart/sink]: SVG, PNG, JSON, and PDF surfaces
//   - [styles]: palettes and area outline paths
//
// # Format Conversion
//
// [ToPDF] converts SVG to PDF using the external rsvg-convert tool (from
// librsvg):
//
//	svg, err := sink.RenderSVG(plan)
//	pdf, err := render.ToPDF(svg)
//
// [scale]: github.com/matzehuels/skyline/pkg/render/scale
// [series]: github.com/matzehuels/skyline/pkg/render/series
// [geometry]: github.com/matzehuels/skyline/pkg/render/geometry
// [overlay]: github.com/matzehuels/skyline/pkg/render/overlay
// [chart]: github.com/matzehuels/skyline/pkg/render/chart
// [chart/sink]: github.com/matzehuels/skyline/pkg/render/chart/sink
// [styles]: github.com/matzehuels/skyline/pkg/render/styles
package render
