package activity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/matzehuels/skyline/pkg/errors"
)

func TestNormalize(t *testing.T) {
	raw := []RawRecord{
		{
			"start_time":        "1477350000000",
			"end_time":          "1477353600000",
			"editSizeStmts":     "42",
			"testEditSizeStmts": "7",
			"testLaunches":      "3",
			"normalLaunches":    "5",
		},
		{
			"start_time":        float64(1477360000000),
			"end_time":          int64(1477361000000),
			"editSizeStmts":     json.Number("2.5"),
			"testEditSizeStmts": 0,
		},
	}

	got, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Normalize() returned %d records, want 2", len(got))
	}

	first := got[0]
	if want := time.UnixMilli(1477350000000).UTC(); !first.Start.Equal(want) {
		t.Errorf("Start = %v, want %v", first.Start, want)
	}
	if first.Duration() != time.Hour {
		t.Errorf("Duration() = %v, want 1h", first.Duration())
	}
	if first.Edits != 42 || first.TestEdits != 7 {
		t.Errorf("counts = (%v, %v), want (42, 7)", first.Edits, first.TestEdits)
	}
	if first.Launches != 8 {
		t.Errorf("Launches = %v, want 8", first.Launches)
	}

	second := got[1]
	if second.Edits != 2.5 {
		t.Errorf("Edits = %v, want 2.5", second.Edits)
	}
	if second.Launches != 0 {
		t.Errorf("Launches = %v, want 0 when launch columns are absent", second.Launches)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	tests := []struct {
		name  string
		raw   RawRecord
		check func(t *testing.T, r Record)
	}{
		{
			name: "missing end_time yields instant",
			raw:  RawRecord{"start_time": "1000"},
			check: func(t *testing.T, r Record) {
				if !r.Instant() {
					t.Errorf("Instant() = false, want true (start=%v end=%v)", r.Start, r.End)
				}
			},
		},
		{
			name: "empty count is zero",
			raw:  RawRecord{"start_time": "1000", "end_time": "2000", "editSizeStmts": "  "},
			check: func(t *testing.T, r Record) {
				if r.Edits != 0 {
					t.Errorf("Edits = %v, want 0", r.Edits)
				}
			},
		},
		{
			name: "aliases",
			raw:  RawRecord{"startTime": 1000, "endTime": 5000, "edits": 3, "testEdits": 4, "launches": 6},
			check: func(t *testing.T, r Record) {
				if r.Duration() != 4*time.Second {
					t.Errorf("Duration() = %v, want 4s", r.Duration())
				}
				if r.Edits != 3 || r.TestEdits != 4 || r.Launches != 6 {
					t.Errorf("counts = (%v, %v, %v), want (3, 4, 6)", r.Edits, r.TestEdits, r.Launches)
				}
			},
		},
		{
			name: "only one launch column",
			raw:  RawRecord{"start_time": "0", "testLaunches": "2"},
			check: func(t *testing.T, r Record) {
				if r.Launches != 2 {
					t.Errorf("Launches = %v, want 2", r.Launches)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize([]RawRecord{tt.raw})
			if err != nil {
				t.Fatalf("Normalize() error: %v", err)
			}
			tt.check(t, got[0])
		})
	}
}

func TestNormalizeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  RawRecord
	}{
		{"missing start", RawRecord{"end_time": "1000"}},
		{"empty start", RawRecord{"start_time": ""}},
		{"non-numeric start", RawRecord{"start_time": "yesterday"}},
		{"non-numeric end", RawRecord{"start_time": "1000", "end_time": "later"}},
		{"non-numeric edits", RawRecord{"start_time": "1000", "editSizeStmts": "lots"}},
		{"negative edits", RawRecord{"start_time": "1000", "editSizeStmts": "-1"}},
		{"end before start", RawRecord{"start_time": "2000", "end_time": "1000"}},
		{"NaN", RawRecord{"start_time": "NaN"}},
		{"unsupported type", RawRecord{"start_time": []int{1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			good := RawRecord{"start_time": "0", "end_time": "10"}
			_, err := Normalize([]RawRecord{good, tt.raw})
			if err == nil {
				t.Fatal("Normalize() error = nil, want MALFORMED_RECORD")
			}
			if !errors.Is(err, errors.ErrCodeMalformedRecord) {
				t.Errorf("Normalize() code = %v, want %v", errors.GetCode(err), errors.ErrCodeMalformedRecord)
			}
		})
	}
}

func TestNormalizeEmpty(t *testing.T) {
	got, err := Normalize(nil)
	if err != nil {
		t.Fatalf("Normalize(nil) error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Normalize(nil) = %v, want empty", got)
	}
}

func TestSubjectOf(t *testing.T) {
	raw := []RawRecord{{"userId": "14475", "CASSIGNMENTNAME": "Project 4", "start_time": "0"}}
	got := SubjectOf(raw)
	if got.UserID != "14475" || got.Assignment != "Project 4" {
		t.Errorf("SubjectOf() = %+v", got)
	}

	if got := SubjectOf([]RawRecord{{"userId": float64(7)}}); got.UserID != "7" {
		t.Errorf("SubjectOf() numeric user = %q, want %q", got.UserID, "7")
	}

	if got := SubjectOf(nil); got != (Subject{}) {
		t.Errorf("SubjectOf(nil) = %+v, want zero", got)
	}
}
