// Package pkg provides the core libraries for skyline deadline charts.
//
// # Overview
//
// Skyline turns the work sessions a student logged on a programming
// assignment into stacked area charts ("skyline plots") annotated with the
// assignment's milestones, early-bonus cutoff, and final due date. The pkg
// directory is organized into four main areas:
//
//  1. [activity] and [deadline] - Domain data (records, windows, deadlines)
//  2. [source] - Loaders for CSV, JSON, Parquet, and SQLite records
//  3. [render] - Scales, geometry, overlays, chart assembly, and sinks
//  4. [pipeline] - Orchestration (load → prepare → assemble → render)
//
// # Architecture
//
// The typical data flow through skyline:
//
//	CSV / JSON / Parquet / SQLite
//	         ↓
//	    [source] package (raw records)
//	         ↓
//	    [activity] package (normalize, grace window)
//	         ↓                    ← [deadline] registry lookup
//	    [render/chart] package (scales, stacked areas, axes, markers)
//	         ↓
//	    [render/chart/sink] package → SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	raw, _ := source.Load(ctx, "ws-14475-p4.csv")
//	records, _ := activity.Normalize(raw)
//	d, _ := deadline.Resolve(deadline.Default(), "Fall 2016", "assignment3")
//	records = activity.Window(records, d.Due.Time, activity.DefaultGraceDays)
//
//	plan, _ := chart.Assemble(records, d, chart.Skyline)
//	svg, _ := sink.RenderSVG(plan)
//
// Or run every stage with the pipeline:
//
//	result, _ := pipeline.NewRunner(logger).Execute(ctx, pipeline.Options{
//	    Data:       "ws-14475-p4.csv",
//	    Term:       "Fall 2016",
//	    Assignment: "assignment3",
//	    Formats:    []string{"svg", "png"},
//	})
//
// # Main Packages
//
// [activity] - Work-session records: field normalization from untyped rows
// and the stop-at-first-failure grace window around the due time.
//
// [deadline] - Deadline registry (embedded 2016 table, JSON and TOML files)
// and resolution into [deadline.Deadlines] with explicit unset instants.
//
// [source] - Record loaders selected by extension or sqlite:// prefix.
//
// [render/scale] - Time and value scales with day and value ticks.
//
// [render/series] - Named series, maxima, and max-descending stack order.
//
// [render/geometry] - Area and point spans with curve hints.
//
// [render/overlay] - Deadline lines and rotated labels.
//
// [render/styles] - Palettes and SVG path generation for step, linear, and
// basis curves.
//
// [render/chart] - Variants, plan assembly, and the [chart.Surface] replay
// order: areas, axes, legend, deadline lines.
//
// [render/chart/sink] - SVG, PNG, JSON, and PDF surfaces.
//
// [pipeline] - Complete chart pipeline used by the CLI and the HTTP server.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks for pipeline stages and HTTP requests.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/render/...             # Specific packages
//
// [activity]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/activity
// [deadline]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/deadline
// [deadline.Deadlines]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/deadline#Deadlines
// [source]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/source
// [render]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/render
// [render/scale]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/render/scale
// [render/series]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/render/series
// [render/geometry]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/render/geometry
// [render/overlay]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/render/overlay
// [render/styles]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/render/styles
// [render/chart]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/render/chart
// [chart.Surface]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/render/chart#Surface
// [render/chart/sink]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/render/chart/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/skyline/pkg/observability
package pkg
