package sink

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/render/chart"
	"github.com/matzehuels/skyline/pkg/render/geometry"
	"github.com/matzehuels/skyline/pkg/render/overlay"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	runID  uuid.UUID
	indent bool
}

// WithRunID tags the output with the ID of the pipeline run that produced
// it. Without it a fresh random ID is used.
func WithRunID(id uuid.UUID) JSONOption { return func(r *jsonRenderer) { r.runID = id } }

// WithIndent pretty-prints the output.
func WithIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	RunID      string       `json:"run_id"`
	Variant    string       `json:"variant"`
	Title      string       `json:"title,omitempty"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	PlotWidth  float64      `json:"plot_width"`
	PlotHeight float64      `json:"plot_height"`
	Margin     chart.Margin `json:"margin"`
	Records    int          `json:"records"`
	Domain     jsonDomain   `json:"domain"`
	Areas      []jsonArea   `json:"areas"`
	Axes       []chart.Axis `json:"axes"`
	Legend     chart.Legend `json:"legend"`
	Markers    []jsonMarker `json:"markers"`
}

type jsonDomain struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	ValueMax float64   `json:"value_max"`
}

type jsonArea struct {
	Name  string          `json:"name"`
	Class string          `json:"class"`
	Curve geometry.Curve  `json:"curve"`
	Spans []geometry.Span `json:"spans"`
}

type jsonMarker struct {
	Kind   string  `json:"kind"`
	Class  string  `json:"class"`
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// RenderJSON exports the positioned plan. Areas, axes, and markers appear in
// drawing order.
func RenderJSON(p *chart.Plan, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.runID == uuid.Nil {
		r.runID = uuid.New()
	}

	out := &jsonOutput{
		RunID:      r.runID.String(),
		Variant:    p.Variant.Name,
		Title:      p.Title,
		Width:      p.Width,
		Height:     p.Height,
		PlotWidth:  p.PlotWidth,
		PlotHeight: p.PlotHeight,
		Margin:     p.Variant.Margin,
		Records:    p.Records,
		Domain: jsonDomain{
			Start:    p.Scales.X.DomainMin,
			End:      p.Scales.X.DomainMax,
			ValueMax: p.Scales.Y.DomainMax,
		},
		Areas:   []jsonArea{},
		Markers: []jsonMarker{},
	}
	if err := chart.Draw(p, &jsonSurface{out: out}); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	if r.indent {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return data, nil
}

// jsonSurface collects drawing calls into a jsonOutput.
type jsonSurface struct{ out *jsonOutput }

func (s *jsonSurface) Area(a geometry.Series) error {
	s.out.Areas = append(s.out.Areas, jsonArea{Name: a.Name, Class: a.Class, Curve: a.Curve, Spans: a.Spans})
	return nil
}

func (s *jsonSurface) Axis(a chart.Axis) error {
	s.out.Axes = append(s.out.Axes, a)
	return nil
}

func (s *jsonSurface) Legend(l chart.Legend) error {
	s.out.Legend = l
	return nil
}

func (s *jsonSurface) Line(m overlay.Marker) error {
	s.out.Markers = append(s.out.Markers, jsonMarker{
		Kind:   m.Kind.Key(),
		Class:  string(m.Class),
		Label:  m.Label,
		X:      m.From.X,
		Top:    m.To.Y,
		Bottom: m.From.Y,
	})
	return nil
}
