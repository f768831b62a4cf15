package chart

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/skyline/pkg/activity"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/render/geometry"
	"github.com/matzehuels/skyline/pkg/render/overlay"
	"github.com/matzehuels/skyline/pkg/render/series"
	"github.com/matzehuels/skyline/pkg/render/styles"
)

// Margin is the space between the frame and the plot area.
type Margin struct {
	Top    float64 `toml:"top" json:"top"`
	Right  float64 `toml:"right" json:"right"`
	Bottom float64 `toml:"bottom" json:"bottom"`
	Left   float64 `toml:"left" json:"left"`
}

// Variant configures one kind of chart.
type Variant struct {
	Name        string           `toml:"name" json:"name"`
	Series      []string         `toml:"series" json:"series"`
	Curve       geometry.Curve   `toml:"curve" json:"curve"`
	Instant     bool             `toml:"instant" json:"instant"`       // draw at Start only
	Window      bool             `toml:"window" json:"window"`         // drop sessions long after the due time
	GraceDays   int              `toml:"grace_days" json:"grace_days"` // window tolerance
	Labels      overlay.LabelSet `toml:"labels" json:"labels"`
	Palette     string           `toml:"palette" json:"palette"`
	YLabel      string           `toml:"y_label" json:"y_label"`
	TickFormat  string           `toml:"tick_format" json:"tick_format"` // Go time layout
	TickDays    int              `toml:"tick_days" json:"tick_days"`     // 0 picks a step automatically
	Width       float64          `toml:"width" json:"width"`
	Height      float64          `toml:"height" json:"height"`
	Margin      Margin           `toml:"margin" json:"margin"`
	LegendSpace float64          `toml:"legend_space" json:"legend_space"` // reserved right of the time axis
}

const (
	yLabelEdits    = "Statements changed"
	yLabelLaunches = "Statements changed / Launch count"
)

// Built-in variants.
var (
	Skyline = Variant{
		Name:        "skyline",
		Series:      []string{"edits", "testEdits"},
		Curve:       geometry.CurveStep,
		Window:      true,
		GraceDays:   activity.DefaultGraceDays,
		Labels:      overlay.LabelsShort,
		Palette:     styles.Classic.Name,
		YLabel:      yLabelEdits,
		TickFormat:  "01/02",
		Width:       960,
		Height:      300,
		Margin:      Margin{Top: 20, Right: 160, Bottom: 30, Left: 50},
		LegendSpace: 150,
	}

	SkylineLaunches = Variant{
		Name:        "skyline-launches",
		Series:      []string{"edits", "testEdits", "launches"},
		Curve:       geometry.CurveStep,
		Window:      true,
		GraceDays:   activity.DefaultGraceDays,
		Labels:      overlay.LabelsLong,
		Palette:     styles.Classic.Name,
		YLabel:      yLabelLaunches,
		TickFormat:  "01/02",
		Width:       960,
		Height:      300,
		Margin:      Margin{Top: 20, Right: 160, Bottom: 30, Left: 50},
		LegendSpace: 150,
	}

	AreaVariant = Variant{
		Name:        "area",
		Series:      []string{"edits", "testEdits"},
		Curve:       geometry.CurveBasis,
		Instant:     true,
		Labels:      overlay.LabelsLong,
		Palette:     styles.Deadline.Name,
		YLabel:      yLabelEdits,
		TickFormat:  "Jan 02",
		TickDays:    3,
		Width:       960,
		Height:      500,
		Margin:      Margin{Top: 20, Right: 20, Bottom: 30, Left: 50},
		LegendSpace: 150,
	}
)

// Builtin returns the built-in variants.
func Builtin() []Variant { return []Variant{Skyline, SkylineLaunches, AreaVariant} }

// Variants is a set of variants by name.
type Variants map[string]Variant

// DefaultVariants returns a fresh set holding the built-in variants.
func DefaultVariants() Variants {
	vs := make(Variants)
	for _, v := range Builtin() {
		vs[v.Name] = v.clone()
	}
	return vs
}

// Get returns the variant with the given name.
func (vs Variants) Get(name string) (Variant, error) {
	v, ok := vs[name]
	if !ok {
		return Variant{}, errors.New(errors.ErrCodeInvalidVariant,
			"unknown variant %q (valid: %s)", name, strings.Join(vs.Names(), ", "))
	}
	return v.clone(), nil
}

// Names returns the variant names, sorted.
func (vs Variants) Names() []string {
	names := make([]string, 0, len(vs))
	for n := range vs {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Merge adds other to vs, replacing variants with the same name.
func (vs Variants) Merge(other Variants) Variants {
	out := make(Variants, len(vs)+len(other))
	for n, v := range vs {
		out[n] = v
	}
	for n, v := range other {
		out[n] = v
	}
	return out
}

func (v Variant) clone() Variant {
	v.Series = slices.Clone(v.Series)
	return v
}

// PlotSize returns the size of the area inside the margins. The time axis
// spans the plot width minus LegendSpace.
func (v Variant) PlotSize() (width, height float64) {
	width = v.Width - v.Margin.Left - v.Margin.Right
	height = v.Height - v.Margin.Top - v.Margin.Bottom
	return width, height
}

// Named resolves the configured series classes.
func (v Variant) Named() ([]series.Named, error) {
	out := make([]series.Named, 0, len(v.Series))
	for _, class := range v.Series {
		s, ok := series.Lookup(class)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidVariant,
				"variant %q: unknown series %q (valid: %s)", v.Name, class, strings.Join(series.Classes(), ", "))
		}
		out = append(out, s)
	}
	return out, nil
}

// Validate checks the variant and reports the first problem.
func (v Variant) Validate() error {
	fail := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeInvalidVariant, "variant %q: %s", v.Name, fmt.Sprintf(format, args...))
	}

	if len(v.Series) == 0 {
		return fail("no series")
	}
	if _, err := v.Named(); err != nil {
		return err
	}
	if _, err := geometry.ParseCurve(string(v.Curve)); err != nil {
		return fail("unknown curve %q", v.Curve)
	}
	if _, err := overlay.ParseLabelSet(string(v.Labels)); err != nil {
		return fail("unknown label set %q", v.Labels)
	}
	if _, err := styles.LookupPalette(v.Palette); err != nil {
		return fail("unknown palette %q", v.Palette)
	}
	if v.GraceDays < 0 {
		return fail("grace_days must not be negative")
	}
	if v.TickDays < 0 {
		return fail("tick_days must not be negative")
	}
	if v.TickFormat == "" {
		return fail("empty tick_format")
	}
	w, h := v.PlotSize()
	if w-v.LegendSpace <= 0 || h <= 0 {
		return fail("frame %gx%g leaves no room to plot", v.Width, v.Height)
	}
	return nil
}

// ReadVariants decodes variants from TOML:
//
//	[variant.wide]
//	base = "skyline"
//	width = 1600
//
// A variant with a base starts from that built-in; keys given replace the
// built-in values. Every decoded variant is validated.
func ReadVariants(r io.Reader) (Variants, error) {
	var doc struct {
		Variant map[string]toml.Primitive `toml:"variant"`
	}
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse variants")
	}

	builtin := DefaultVariants()
	out := make(Variants, len(doc.Variant))
	for name, prim := range doc.Variant {
		var head struct {
			Base string `toml:"base"`
		}
		if err := md.PrimitiveDecode(prim, &head); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "variant %q", name)
		}

		var v Variant
		if head.Base != "" {
			if v, err = builtin.Get(head.Base); err != nil {
				return nil, err
			}
		}
		if err := md.PrimitiveDecode(prim, &v); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "variant %q", name)
		}
		v.Name = name
		if err := v.Validate(); err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

// ReadVariantsFile reads variants from a TOML file.
func ReadVariantsFile(path string) (Variants, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "variants %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open variants")
	}
	defer f.Close()
	return ReadVariants(f)
}
