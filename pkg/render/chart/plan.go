package chart

import (
	"strconv"
	"time"

	"github.com/matzehuels/skyline/pkg/activity"
	"github.com/matzehuels/skyline/pkg/deadline"
	"github.com/matzehuels/skyline/pkg/render/geometry"
	"github.com/matzehuels/skyline/pkg/render/overlay"
	"github.com/matzehuels/skyline/pkg/render/scale"
	"github.com/matzehuels/skyline/pkg/render/series"
)

const (
	autoTimeTicks  = 10
	valueTickCount = 10
	legendInset    = 20.0
)

// Orient places an axis on the plot.
type Orient string

const (
	OrientBottom Orient = "bottom"
	OrientLeft   Orient = "left"
)

// Tick is one axis tick: its position along the axis and its label.
type Tick struct {
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// Axis is a positioned axis with ticks. A bottom axis sits at Offset on the
// y axis; a left axis sits at Offset on the x axis.
type Axis struct {
	Orient Orient  `json:"orient"`
	Offset float64 `json:"offset"`
	Length float64 `json:"length"`
	Ticks  []Tick  `json:"ticks"`
	Label  string  `json:"label,omitempty"`
}

// LegendEntry names one series in the legend.
type LegendEntry struct {
	Name  string `json:"name"`
	Class string `json:"class"`
}

// Legend is the series key, anchored at its top-left corner.
type Legend struct {
	X       float64       `json:"x"`
	Y       float64       `json:"y"`
	Entries []LegendEntry `json:"entries"`
}

// Plan is a fully positioned chart. Coordinates are relative to the plot
// area, whose origin is Margin.Left, Margin.Top inside the frame.
type Plan struct {
	Variant Variant
	Title   string

	Width, Height         float64 // frame
	PlotWidth, PlotHeight float64 // area inside the margins

	Scales  scale.Scales
	Areas   []geometry.Series // stack order, largest maximum first
	XAxis   Axis
	YAxis   Axis
	Legend  Legend
	Markers []overlay.Marker

	Records int // records drawn
}

// Assemble lays out records and deadlines according to v. Records must be
// normalized and already windowed when the variant asks for it. Deadlines
// left unset produce no marker.
func Assemble(records []activity.Record, d deadline.Deadlines, v Variant) (*Plan, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	named, err := v.Named()
	if err != nil {
		return nil, err
	}
	named = series.WithMax(records, named)

	plotW, plotH := v.PlotSize()
	timeW := plotW - v.LegendSpace
	sc, err := scale.Compute(records, named, scale.Bounds{Width: timeW, Height: plotH})
	if err != nil {
		return nil, err
	}

	build := geometry.Area
	if v.Instant {
		build = geometry.Point
	}
	ordered := series.Order(named)
	areas := make([]geometry.Series, len(ordered))
	for i, s := range ordered {
		areas[i] = build(records, s, sc, v.Curve)
	}

	legend := Legend{X: timeW + legendInset, Y: plotH / 7}
	for _, s := range named {
		legend.Entries = append(legend.Entries, LegendEntry{Name: s.Name, Class: s.Class})
	}

	return &Plan{
		Variant:    v,
		Width:      v.Width,
		Height:     v.Height,
		PlotWidth:  plotW,
		PlotHeight: plotH,
		Scales:     sc,
		Areas:      areas,
		XAxis:      timeAxis(sc.X, v, plotH, timeW),
		YAxis:      valueAxis(sc.Y, v, plotH),
		Legend:     legend,
		Markers:    overlay.Build(d, sc, plotH, v.Labels),
		Records:    len(records),
	}, nil
}

func timeAxis(s scale.Time, v Variant, offset, length float64) Axis {
	var ticks []time.Time
	if v.TickDays > 0 {
		ticks = s.DayTicks(v.TickDays)
	} else {
		ticks = s.AutoDayTicks(autoTimeTicks)
	}
	a := Axis{Orient: OrientBottom, Offset: offset, Length: length}
	for _, t := range ticks {
		a.Ticks = append(a.Ticks, Tick{Pos: s.X(t), Label: t.Format(v.TickFormat)})
	}
	return a
}

func valueAxis(s scale.Linear, v Variant, length float64) Axis {
	a := Axis{Orient: OrientLeft, Length: length, Label: v.YLabel}
	for _, val := range s.Ticks(valueTickCount) {
		a.Ticks = append(a.Ticks, Tick{Pos: s.Y(val), Label: strconv.FormatFloat(val, 'f', -1, 64)})
	}
	return a
}

// Title describes whose work a chart shows, or returns "" when the records
// carry no user.
func Title(sub activity.Subject, term string) string {
	if sub.UserID == "" {
		return ""
	}
	assignment := sub.Assignment
	if assignment == "" {
		assignment = "the assignment"
	}
	if term == "" {
		return "Skyline Plot for user " + sub.UserID + "'s work on " + assignment + "."
	}
	return "Skyline Plot for user " + sub.UserID + "'s work on " + assignment + " in " + term + "."
}
