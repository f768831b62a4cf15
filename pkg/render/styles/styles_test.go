package styles

import (
	"image/color"
	"testing"

	"github.com/matzehuels/skyline/pkg/render/geometry"
	"github.com/matzehuels/skyline/pkg/render/overlay"
)

func TestStepAreaPath(t *testing.T) {
	s := geometry.Series{Curve: geometry.CurveStep, Spans: []geometry.Span{
		{X0: 0, X1: 10, Y0: 100, Y1: 40},
		{X0: 20, X1: 25, Y0: 100, Y1: 70},
	}}

	got := AreaPath(s).SVG()
	want := "M0,100L0,100L0,40L10,40L10,100L20,100L20,70L25,70L25,100Z"
	if got != want {
		t.Errorf("step path = %q, want %q", got, want)
	}
}

func TestLinearAreaPath(t *testing.T) {
	s := geometry.Series{Curve: geometry.CurveLinear, Spans: []geometry.Span{
		{X0: 0, X1: 0, Y0: 50, Y1: 10},
		{X0: 5, X1: 5, Y0: 50, Y1: 20},
	}}

	got := AreaPath(s).SVG()
	want := "M0,50L0,10L5,20L5,50Z"
	if got != want {
		t.Errorf("linear path = %q, want %q", got, want)
	}
}

func TestBasisAreaPath(t *testing.T) {
	s := geometry.Series{Curve: geometry.CurveBasis, Spans: []geometry.Span{
		{X0: 0, X1: 0, Y0: 60, Y1: 0},
		{X0: 6, X1: 6, Y0: 60, Y1: 6},
		{X0: 12, X1: 12, Y0: 60, Y1: 0},
	}}

	p := AreaPath(s)
	var cubics int
	for _, seg := range p {
		if seg.Op == OpCubic {
			cubics++
		}
	}
	if cubics != 2 {
		t.Errorf("basis path has %d cubic segments, want 2", cubics)
	}
	if p[0].Op != OpMove || p[len(p)-1].Op != OpClose {
		t.Error("basis path should start with a move and end closed")
	}
	// the curve ends on the last point before dropping to the baseline
	end := p[len(p)-3]
	if end.Op != OpLine || end.Pts[0] != (Point{12, 0}) {
		t.Errorf("curve end = %+v, want line to 12,0", end)
	}
}

func TestAreaPathEmpty(t *testing.T) {
	if p := AreaPath(geometry.Series{Curve: geometry.CurveStep}); p != nil {
		t.Errorf("AreaPath(empty) = %v, want nil", p)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"maroon", color.RGBA{128, 0, 0, 255}, true},
		{"SteelBlue", color.RGBA{70, 130, 180, 255}, true},
		{"#ff8000", color.RGBA{255, 128, 0, 255}, true},
		{"#fff", color.RGBA{}, false},
		{"chartreuse", color.RGBA{}, false},
		{"#zzzzzz", color.RGBA{}, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseColor(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPalettes(t *testing.T) {
	for _, name := range []string{"classic", "deadline"} {
		p, err := LookupPalette(name)
		if err != nil {
			t.Fatalf("LookupPalette(%q): %v", name, err)
		}
		for _, c := range []string{p.SeriesColor("edits"), p.SeriesColor("unknown"), p.MarkerColor(overlay.ClassDue), p.Axis} {
			if _, err := ParseColor(c); err != nil {
				t.Errorf("%s palette uses unparseable color %q", name, c)
			}
		}
	}
	if Classic.SeriesColor("edits") != "maroon" || Classic.SeriesColor("testEdits") != "orange" {
		t.Error("classic palette should draw edits maroon and test edits orange")
	}
	if Deadline.MarkerColor(overlay.ClassDue) != "red" {
		t.Error("deadline palette should draw the due line red")
	}
	if _, err := LookupPalette("neon"); err == nil {
		t.Error("LookupPalette(neon) should fail")
	}
}

func TestEscapeXML(t *testing.T) {
	if got := EscapeXML(`Tom & "Jerry" <3`); got != "Tom &amp; &#34;Jerry&#34; &lt;3" {
		t.Errorf("EscapeXML() = %q", got)
	}
}
