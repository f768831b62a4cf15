package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/skyline/pkg/activity"
	"github.com/matzehuels/skyline/pkg/deadline"
	"github.com/matzehuels/skyline/pkg/render"
	"github.com/matzehuels/skyline/pkg/render/chart"
	"github.com/matzehuels/skyline/pkg/render/styles"
)

var t0 = time.Date(2016, 10, 1, 9, 0, 0, 0, time.UTC)

func testPlan(t *testing.T, v chart.Variant) *chart.Plan {
	t.Helper()
	records := []activity.Record{
		{Start: t0, End: t0.Add(time.Hour), Edits: 10, TestEdits: 20, Launches: 2},
		{Start: t0.AddDate(0, 0, 2), End: t0.AddDate(0, 0, 2).Add(3 * time.Hour), Edits: 50, TestEdits: 5, Launches: 4},
	}
	d := deadline.Deadlines{
		Milestone1: deadline.At(t0.AddDate(0, 0, 1)),
		Due:        deadline.At(t0.AddDate(0, 0, 3)),
	}
	plan, err := chart.Assemble(records, d, v)
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	plan.Title = `Skyline Plot for user 42's work on P<4> in Fall 2016.`
	return plan
}

func TestRenderSVG(t *testing.T) {
	out, err := RenderSVG(testPlan(t, chart.Skyline))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	svg := string(out)

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 960 300"`) {
		t.Errorf("unexpected SVG header: %.80s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("SVG not closed")
	}
	if !strings.Contains(svg, "P&lt;4&gt;") {
		t.Error("title should be escaped")
	}
	if n := strings.Count(svg, `class="area `); n != 2 {
		t.Errorf("area paths = %d, want 2", n)
	}
	if n := strings.Count(svg, `class="date-line `); n != 2 {
		t.Errorf("marker lines = %d, want 2", n)
	}

	// stack order: the larger edits area is drawn first
	if strings.Index(svg, `class="area edits"`) > strings.Index(svg, `class="area testEdits"`) {
		t.Error("edits area should precede testEdits area")
	}
	// markers are drawn on top of the areas
	if strings.LastIndex(svg, `class="area `) > strings.Index(svg, `class="date-line `) {
		t.Error("markers should be drawn after the areas")
	}
	for _, want := range []string{`fill="maroon"`, `stroke-dasharray="2,2"`, `stroke-dasharray="10,10"`, ">M1<", ">F<", "Statements changed", `rotate(-90)`} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderSVGOptions(t *testing.T) {
	plan := testPlan(t, chart.Skyline)

	out, err := RenderSVG(plan, WithoutTitle(), WithBackground(), WithPalette(styles.Deadline))
	if err != nil {
		t.Fatal(err)
	}
	svg := string(out)
	if strings.Contains(svg, `class="title"`) {
		t.Error("WithoutTitle() should drop the title")
	}
	if !strings.Contains(svg, `<rect width="100%" height="100%" fill="white"/>`) {
		t.Error("WithBackground() should add a background rect")
	}
	if !strings.Contains(svg, `stroke="red"`) {
		t.Error("WithPalette(Deadline) should draw the due line red")
	}
}

func TestRenderSVGLongLabels(t *testing.T) {
	out, err := RenderSVG(testPlan(t, chart.SkylineLaunches))
	if err != nil {
		t.Fatal(err)
	}
	svg := string(out)
	for _, want := range []string{"Milestone 1 Due", "Final Submission Due", `class="area launches"`, "Launch count"} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	tests := []struct {
		name          string
		opts          []PNGOption
		width, height int
	}{
		{"default 2x", nil, 1920, 600},
		{"1x", []PNGOption{WithScale(1)}, 960, 300},
		{"palette", []PNGOption{WithScale(1), WithPNGPalette(styles.Deadline), WithPNGNoTitle()}, 960, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RenderPNG(testPlan(t, chart.Skyline), tt.opts...)
			if err != nil {
				t.Fatalf("RenderPNG() error: %v", err)
			}
			img, err := png.Decode(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("png.Decode() error: %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tt.width || b.Dy() != tt.height {
				t.Errorf("image size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.width, tt.height)
			}
		})
	}
}

func TestRenderPNGAreaFill(t *testing.T) {
	out, err := RenderPNG(testPlan(t, chart.Skyline), WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}

	// inside the first testEdits span, above the edits span: orange at 0.85
	// over the white background
	r, g, b, _ := img.At(55, 195).RGBA()
	r, g, b = r>>8, g>>8, b>>8
	if r < 250 || g < 170 || g > 186 || b < 30 || b > 46 {
		t.Errorf("area pixel = (%d,%d,%d), want about (255,178,38)", r, g, b)
	}
}

func TestRenderPNGBasisCurve(t *testing.T) {
	if _, err := RenderPNG(testPlan(t, chart.AreaVariant), WithScale(1)); err != nil {
		t.Fatalf("RenderPNG(area) error: %v", err)
	}
}

func TestRenderPNGInvalidScale(t *testing.T) {
	if _, err := RenderPNG(testPlan(t, chart.Skyline), WithScale(0)); err == nil {
		t.Error("RenderPNG() with zero scale should fail")
	}
}

func TestRenderJSON(t *testing.T) {
	id := uuid.MustParse("6f1c1a52-3a8e-4c0b-9b7e-2f4d7c8e9a10")
	out, err := RenderJSON(testPlan(t, chart.Skyline), WithRunID(id), WithIndent())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var got jsonOutput
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if got.RunID != id.String() {
		t.Errorf("run_id = %q, want %q", got.RunID, id)
	}
	if got.Variant != "skyline" || got.Records != 2 {
		t.Errorf("variant/records = %q/%d", got.Variant, got.Records)
	}
	if len(got.Areas) != 2 || got.Areas[0].Class != "edits" {
		t.Errorf("areas = %+v", got.Areas)
	}
	if len(got.Axes) != 2 || got.Axes[0].Orient != chart.OrientBottom {
		t.Errorf("axes = %+v", got.Axes)
	}
	if len(got.Markers) != 2 || got.Markers[1].Kind != "dueTime" || got.Markers[1].Class != "due" {
		t.Errorf("markers = %+v", got.Markers)
	}
	if !got.Domain.Start.Equal(t0) || got.Domain.ValueMax != 50 {
		t.Errorf("domain = %+v", got.Domain)
	}
}

func TestRenderJSONGeneratesRunID(t *testing.T) {
	out, err := RenderJSON(testPlan(t, chart.Skyline))
	if err != nil {
		t.Fatal(err)
	}
	var got jsonOutput
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(got.RunID); err != nil {
		t.Errorf("run_id %q is not a UUID", got.RunID)
	}
}

func TestRenderPDF(t *testing.T) {
	if !render.HasConverter() {
		t.Skip("rsvg-convert not installed")
	}
	out, err := RenderPDF(testPlan(t, chart.Skyline))
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}
