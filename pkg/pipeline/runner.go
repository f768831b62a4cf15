package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/skyline/pkg/activity"
	"github.com/matzehuels/skyline/pkg/deadline"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/observability"
	"github.com/matzehuels/skyline/pkg/render/chart"
)

// Runner executes the chart pipeline.
//
// The Runner is stateless except for the logger. Multiple goroutines can
// safely use the same Runner with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete load → prepare → assemble → render pipeline.
// Errors from any stage are returned unchanged.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		ID:        uuid.New(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	raw, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Loaded = len(raw)
	result.Subject = activity.SubjectOf(raw)

	r.Logger.Info("loaded records",
		"path", opts.Data,
		"records", len(raw),
		"duration", result.Stats.LoadTime)

	// Stage 2: Prepare
	v, err := opts.ResolveVariant()
	if err != nil {
		return nil, err
	}
	records, d, err := r.Prepare(raw, v, opts)
	if err != nil {
		return nil, err
	}
	result.Deadlines = d
	result.Stats.Drawn = len(records)

	if dropped := result.Stats.Dropped(); dropped > 0 {
		r.Logger.Debug("windowed records",
			"kept", len(records),
			"dropped", dropped,
			"grace_days", v.GraceDays)
	}

	// Stage 3: Assemble
	assembleStart := time.Now()
	plan, err := r.Assemble(ctx, records, d, v)
	if err != nil {
		return nil, err
	}
	plan.Title = titleFor(opts, result.Subject)
	result.Plan = plan
	result.Stats.AssembleTime = time.Since(assembleStart)

	r.Logger.Info("assembled chart",
		"variant", v.Name,
		"series", len(plan.Areas),
		"markers", len(plan.Markers),
		"duration", result.Stats.AssembleTime)

	// Stage 4: Render
	renderStart := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, err := Render(plan, opts, result.ID)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered output",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads raw records from the configured source.
func (r *Runner) Load(ctx context.Context, opts Options) ([]activity.RawRecord, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	src, err := opts.ResolveSource()
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Data)
	start := time.Now()
	raw, err := src.Load(ctx, opts.Data)
	hooks.OnLoadComplete(ctx, opts.Data, len(raw), time.Since(start), err)
	return raw, err
}

// Prepare normalizes raw records, resolves the deadlines for the configured
// term and assignment, and applies the grace window when v asks for it.
func (r *Runner) Prepare(raw []activity.RawRecord, v chart.Variant, opts Options) ([]activity.Record, deadline.Deadlines, error) {
	records, err := activity.Normalize(raw)
	if err != nil {
		return nil, deadline.Deadlines{}, err
	}
	if err := opts.ValidateForResolve(); err != nil {
		return nil, deadline.Deadlines{}, err
	}
	reg, err := opts.ResolveRegistry()
	if err != nil {
		return nil, deadline.Deadlines{}, err
	}
	d, err := deadline.Resolve(reg, opts.Term, opts.Assignment)
	if err != nil {
		return nil, deadline.Deadlines{}, err
	}
	r.Logger.Debug("resolved deadlines",
		"term", deadline.NormalizeTerm(opts.Term),
		"assignment", opts.Assignment,
		"valid", d.ValidCount())

	if !v.Window {
		return records, d, nil
	}
	if !d.Due.Valid {
		return nil, d, errors.New(errors.ErrCodeDeadlineNotFound,
			"no due time for %s/%s; windowing needs one (use --no-window)", opts.Term, opts.Assignment)
	}
	return activity.Window(records, d.Due.Time, v.GraceDays), d, nil
}

// Assemble lays out the chart and reports the stage to the observability hooks.
func (r *Runner) Assemble(ctx context.Context, records []activity.Record, d deadline.Deadlines, v chart.Variant) (*chart.Plan, error) {
	hooks := observability.Pipeline()
	hooks.OnAssembleStart(ctx, v.Name, len(records))
	start := time.Now()
	plan, err := chart.Assemble(records, d, v)
	hooks.OnAssembleComplete(ctx, v.Name, time.Since(start), err)
	return plan, err
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// titleFor returns the chart title: an explicit override, nothing when
// titles are disabled, otherwise one derived from the records.
func titleFor(opts Options, sub activity.Subject) string {
	switch {
	case opts.NoTitle:
		return ""
	case opts.Title != "":
		return opts.Title
	default:
		return chart.Title(sub, opts.Term)
	}
}
