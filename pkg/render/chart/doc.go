// Package chart assembles skyline charts and replays them onto drawing
// surfaces.
//
// # Overview
//
// A chart is described by a [Variant]: which series to stack, the curve, the
// deadline label set, the palette, and the frame size. [Assemble] combines
// normalized records, resolved deadlines, and a variant into a [Plan]: the
// scales, one [geometry.Series] per series in stack order, the two axes, the
// legend, and the deadline markers.
//
//	plan, err := chart.Assemble(records, deadlines, chart.Skyline)
//	if err != nil {
//	    return err
//	}
//	err = chart.Draw(plan, surface)
//
// # Drawing
//
// [Draw] issues calls on a [Surface] in a fixed order: every area (largest
// maximum first), the x and y axes, the legend, then one line per deadline
// marker. Sinks in the [sink] subpackage implement Surface for SVG, PNG, and
// JSON output.
//
// # Variants
//
// Three variants are built in:
//
//   - [Skyline]: solution and test edits, step curve, short labels (M1, E, F)
//   - [SkylineLaunches]: adds launch counts and uses long labels
//   - [AreaVariant]: smoothed single-timestamp areas, long labels, no window
//
// Custom variants are read from TOML with [ReadVariants]; each may extend a
// built-in through its base key.
//
// [geometry.Series]: github.com/matzehuels/skyline/pkg/render/geometry.Series
// [sink]: github.com/matzehuels/skyline/pkg/render/chart/sink
package chart
