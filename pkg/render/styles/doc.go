// Package styles holds the visual vocabulary shared by the chart sinks:
// palettes, named colors, and the outline paths of stacked areas.
//
// # Palettes
//
// A [Palette] maps series classes and marker classes to colors. [Classic]
// draws solution edits in maroon and test edits in orange with black
// deadline lines; [Deadline] colors milestone, early bonus, and due lines
// green, orange, and red.
//
// # Paths
//
// [AreaPath] converts a [geometry.Series] into a closed outline whose top
// edge follows the series curve:
//
//   - step: each span is a flat block from X0 to X1 (step-after)
//   - linear: straight segments between span corners
//   - basis: a uniform cubic B-spline through the span corners
//
// The resulting [Path] can be written as SVG path data with [Path.SVG] or
// replayed onto a raster canvas segment by segment.
//
// [geometry.Series]: github.com/matzehuels/skyline/pkg/render/geometry.Series
package styles
