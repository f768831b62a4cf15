// Package sink writes assembled charts to output formats.
//
// Each sink implements [chart.Surface] and is driven by [chart.Draw], so
// every format draws the same elements in the same order.
//
//   - [RenderSVG]: standalone SVG with CSS classes per series and marker
//   - [RenderPNG]: raster image drawn with gg, no external tools
//   - [RenderJSON]: the positioned plan as JSON, tagged with a run ID
//   - [RenderPDF]: SVG converted by rsvg-convert (requires librsvg)
//
// [chart.Surface]: github.com/matzehuels/skyline/pkg/render/chart.Surface
// [chart.Draw]: github.com/matzehuels/skyline/pkg/render/chart.Draw
package sink
