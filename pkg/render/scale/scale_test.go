package scale

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/skyline/pkg/activity"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/render/series"
)

var t0 = time.Date(2016, 10, 1, 0, 0, 0, 0, time.UTC)

func rec(startH, endH int, edits, testEdits float64) activity.Record {
	return activity.Record{
		Start:     t0.Add(time.Duration(startH) * time.Hour),
		End:       t0.Add(time.Duration(endH) * time.Hour),
		Edits:     edits,
		TestEdits: testEdits,
	}
}

func TestComputeDomains(t *testing.T) {
	records := []activity.Record{rec(2, 3, 10, 5), rec(0, 1, 40, 60), rec(5, 9, 3, 2)}
	named := series.WithMax(records, []series.Named{series.Edits, series.TestEdits})

	sc, err := Compute(records, named, Bounds{Width: 600, Height: 250})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if !sc.X.DomainMin.Equal(t0) || !sc.X.DomainMax.Equal(t0.Add(9*time.Hour)) {
		t.Errorf("time domain = [%v, %v]", sc.X.DomainMin, sc.X.DomainMax)
	}
	if sc.Y.DomainMin != 0 || sc.Y.DomainMax != 60 {
		t.Errorf("value domain = [%v, %v], want [0, 60]", sc.Y.DomainMin, sc.Y.DomainMax)
	}

	if got := sc.X.X(t0); got != 0 {
		t.Errorf("X(min) = %v, want 0", got)
	}
	if got := sc.X.X(t0.Add(9 * time.Hour)); got != 600 {
		t.Errorf("X(max) = %v, want 600", got)
	}
	if got := sc.Y.Y(60); got != 0 {
		t.Errorf("Y(max) = %v, want 0", got)
	}
	if got := sc.Y.Baseline(); got != 250 {
		t.Errorf("Baseline() = %v, want 250", got)
	}
}

func TestComputeStaysInBounds(t *testing.T) {
	records := []activity.Record{rec(0, 4, 7, 1), rec(6, 8, 0, 12), rec(10, 30, 5, 5)}
	named := series.WithMax(records, []series.Named{series.Edits, series.TestEdits, series.Launches})
	sc, err := Compute(records, named, Bounds{Width: 810, Height: 250})
	if err != nil {
		t.Fatal(err)
	}

	for _, r := range records {
		for _, x := range []float64{sc.X.X(r.Start), sc.X.X(r.End)} {
			if x < 0 || x > 810 {
				t.Errorf("x = %v outside [0, 810]", x)
			}
		}
		for _, s := range named {
			if y := sc.Y.Y(s.Extract(r)); y < 0 || y > 250 {
				t.Errorf("y(%s) = %v outside [0, 250]", s.Class, y)
			}
		}
	}
}

func TestComputeDegenerate(t *testing.T) {
	records := []activity.Record{rec(3, 3, 0, 0), rec(3, 3, 0, 0)}
	named := series.WithMax(records, []series.Named{series.Edits})

	sc, err := Compute(records, named, Bounds{Width: 100, Height: 50})
	if err != nil {
		t.Fatal(err)
	}
	x := sc.X.X(records[0].Start)
	y := sc.Y.Y(0)
	if math.IsNaN(x) || math.IsInf(x, 0) || x != 0 {
		t.Errorf("X on degenerate domain = %v, want 0", x)
	}
	if math.IsNaN(y) || y != 50 {
		t.Errorf("Y on degenerate domain = %v, want 50", y)
	}
}

func TestComputeEmpty(t *testing.T) {
	_, err := Compute(nil, nil, Bounds{Width: 1, Height: 1})
	if !errors.Is(err, errors.ErrCodeEmptyDataset) {
		t.Errorf("Compute(nil) error = %v, want EMPTY_DATASET", err)
	}
}

func TestDayTicks(t *testing.T) {
	s := Time{DomainMin: t0.Add(5 * time.Hour), DomainMax: t0.AddDate(0, 0, 7)}

	ticks := s.DayTicks(3)
	want := []time.Time{t0.AddDate(0, 0, 1), t0.AddDate(0, 0, 4), t0.AddDate(0, 0, 7)}
	if !slices.EqualFunc(ticks, want, time.Time.Equal) {
		t.Errorf("DayTicks(3) = %v, want %v", ticks, want)
	}

	if n := len(s.AutoDayTicks(4)); n == 0 || n > 4 {
		t.Errorf("AutoDayTicks(4) returned %d ticks", n)
	}
}

func TestLinearTicks(t *testing.T) {
	tests := []struct {
		max  float64
		n    int
		want []float64
	}{
		{60, 6, []float64{0, 10, 20, 30, 40, 50, 60}},
		{1, 5, []float64{0, 0.2, 0.4, 0.6000000000000001, 0.8, 1}},
		{95, 4, []float64{0, 20, 40, 60, 80}},
		{0, 5, []float64{0}},
	}

	for _, tt := range tests {
		got := Linear{DomainMax: tt.max}.Ticks(tt.n)
		if !slices.Equal(got, tt.want) {
			t.Errorf("Ticks(max=%v, n=%d) = %v, want %v", tt.max, tt.n, got, tt.want)
		}
	}
}
