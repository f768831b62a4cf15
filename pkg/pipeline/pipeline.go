// Package pipeline provides the chart pipeline shared by the CLI and the
// HTTP server.
//
// This package implements the complete load → prepare → assemble → render
// pipeline. By centralizing this logic, every entry point windows records,
// resolves deadlines, and names artifacts the same way.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read raw records from a CSV, JSON, Parquet, or SQLite source
//  2. Prepare: Normalize records, resolve deadlines, apply the grace window
//  3. Assemble: Compute scales, stacked areas, axes, and deadline markers
//  4. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Data:       "ws-14475-p4.csv",
//	    Term:       "Fall 2016",
//	    Assignment: "assignment3",
//	    Formats:    []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/skyline/pkg/activity"
	"github.com/matzehuels/skyline/pkg/deadline"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/render/chart"
	"github.com/matzehuels/skyline/pkg/source"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultVariant is the chart variant used when none is named.
	DefaultVariant = "skyline"

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps output formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the chart pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Load options
	Data        string `json:"data"`                   // records path
	InputFormat string `json:"input_format,omitempty"` // overrides the extension: csv, json, parquet, sqlite
	Table       string `json:"table,omitempty"`        // SQLite table

	// Deadline options
	Term       string `json:"term"`
	Assignment string `json:"assignment"`
	Registry   string `json:"registry,omitempty"` // file merged over the built-in table

	// Chart options
	Variant   string  `json:"variant,omitempty"`
	GraceDays *int    `json:"grace_days,omitempty"` // overrides the variant
	NoWindow  bool    `json:"no_window,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	Title     string  `json:"title,omitempty"` // replaces the generated title
	NoTitle   bool    `json:"no_title,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"` // PNG only

	// Runtime options (not serialized)
	Logger    *log.Logger       `json:"-"`
	Source    source.Source     `json:"-"` // replaces format dispatch
	Deadlines deadline.Registry `json:"-"` // replaces the built-in table and Registry
	Variants  chart.Variants    `json:"-"` // added to the built-in variants

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run; JSON artifacts carry it as run_id.
	ID uuid.UUID

	// Subject is the user and assignment named by the records, if any.
	Subject activity.Subject

	// Deadlines are the resolved deadlines.
	Deadlines deadline.Deadlines

	// Plan is the assembled chart.
	Plan *chart.Plan

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Loaded       int // records read
	Drawn        int // records left after windowing
	LoadTime     time.Duration
	AssembleTime time.Duration
	RenderTime   time.Duration
}

// Dropped returns the number of records removed by the grace window.
func (s Stats) Dropped() int { return s.Loaded - s.Drawn }

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForResolve(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the data source fields.
func (o *Options) ValidateForLoad() error {
	if o.Data == "" {
		return errors.New(errors.ErrCodeInvalidInput, "data path is required")
	}
	if o.Source == nil {
		if o.InputFormat != "" {
			if _, err := source.ForFormat(o.InputFormat); err != nil {
				return err
			}
		} else if _, err := source.ForPath(o.Data); err != nil {
			return err
		}
	}
	if o.Table != "" {
		if err := errors.ValidateKey("table", o.Table); err != nil {
			return err
		}
	}
	o.setLogger()
	return nil
}

// ValidateForResolve checks the deadline lookup fields.
func (o *Options) ValidateForResolve() error {
	if o.Term == "" {
		return errors.New(errors.ErrCodeInvalidInput, "term is required")
	}
	if o.Assignment == "" {
		return errors.New(errors.ErrCodeInvalidInput, "assignment is required")
	}
	if err := errors.ValidateKey("term", o.Term); err != nil {
		return err
	}
	return errors.ValidateKey("assignment", o.Assignment)
}

// SetChartDefaults sets default values for chart assembly.
func (o *Options) SetChartDefaults() {
	if o.Variant == "" {
		o.Variant = DefaultVariant
	}
	o.setLogger()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for assembly and rendering.
func (o *Options) ValidateForRender() error {
	o.SetChartDefaults()
	o.SetRenderDefaults()
	if o.GraceDays != nil && *o.GraceDays < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "grace days must not be negative")
	}
	if o.Width < 0 || o.Height < 0 || o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width, height, and scale must not be negative")
	}
	return ValidateFormats(o.Formats)
}

// ResolveVariant returns the named variant with the size and window
// overrides applied.
func (o *Options) ResolveVariant() (chart.Variant, error) {
	o.SetChartDefaults()
	v, err := chart.DefaultVariants().Merge(o.Variants).Get(o.Variant)
	if err != nil {
		return chart.Variant{}, err
	}
	if o.Width > 0 {
		v.Width = o.Width
	}
	if o.Height > 0 {
		v.Height = o.Height
	}
	if o.GraceDays != nil {
		v.GraceDays = *o.GraceDays
	}
	if o.NoWindow {
		v.Window = false
	}
	return v, v.Validate()
}

// ResolveRegistry returns the deadline registry for this run.
func (o *Options) ResolveRegistry() (deadline.Registry, error) {
	if o.Deadlines != nil {
		return o.Deadlines, nil
	}
	table := deadline.Default()
	if o.Registry == "" {
		return table, nil
	}
	extra, err := deadline.ReadFile(o.Registry)
	if err != nil {
		return nil, err
	}
	return table.Merge(extra), nil
}

// ResolveSource returns the loader for Data.
func (o *Options) ResolveSource() (source.Source, error) {
	if o.Source != nil {
		return o.Source, nil
	}
	var (
		src source.Source
		err error
	)
	if o.InputFormat != "" {
		src, err = source.ForFormat(o.InputFormat)
	} else {
		src, err = source.ForPath(o.Data)
	}
	if err != nil {
		return nil, err
	}
	if sq, ok := src.(source.SQLite); ok && o.Table != "" {
		sq.Table = o.Table
		src = sq
	}
	return src, nil
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
