package activity

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/skyline/pkg/errors"
)

// Field names recognized in raw records.
const (
	FieldStartTime      = "start_time"
	FieldEndTime        = "end_time"
	FieldEditSize       = "editSizeStmts"
	FieldTestEditSize   = "testEditSizeStmts"
	FieldTestLaunches   = "testLaunches"
	FieldNormalLaunches = "normalLaunches"
	FieldUserID         = "userId"
	FieldAssignmentName = "CASSIGNMENTNAME"
)

// FieldLaunches is the pre-summed launch column some exports carry. It is
// read only when neither split launch column is present.
const FieldLaunches = "launches"

// aliases lists alternative column names, tried in order after the canonical
// name. The session exporters were not consistent across terms.
var aliases = map[string][]string{
	FieldStartTime:    {"startTime"},
	FieldEndTime:      {"endTime"},
	FieldEditSize:     {"edits", "editSize"},
	FieldTestEditSize: {"testEdits", "testEditSize"},
}

// Normalize converts raw records into typed records.
//
// start_time is required; end_time defaults to start_time when absent, which
// yields single-timestamp records. Count fields default to 0 when absent or
// empty. Launches are the sum of testLaunches and normalLaunches, or a
// pre-combined "launches" column when neither is present.
//
// The input order is preserved; Normalize does not sort.
func Normalize(raw []RawRecord) ([]Record, error) {
	out := make([]Record, 0, len(raw))
	for i, r := range raw {
		rec, err := normalizeOne(r)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedRecord, err, "record %d", i)
		}
		out = append(out, rec)
	}
	return out, nil
}

func normalizeOne(r RawRecord) (Record, error) {
	startMs, ok, err := numberField(r, FieldStartTime)
	if err != nil {
		return Record{}, err
	}
	if !ok {
		return Record{}, fmt.Errorf("missing required field %s", FieldStartTime)
	}
	endMs, ok, err := numberField(r, FieldEndTime)
	if err != nil {
		return Record{}, err
	}
	if !ok {
		endMs = startMs
	}
	if endMs < startMs {
		return Record{}, fmt.Errorf("%s (%v) is before %s (%v)", FieldEndTime, endMs, FieldStartTime, startMs)
	}

	rec := Record{Start: FromMillis(startMs), End: FromMillis(endMs)}
	if rec.Edits, err = countField(r, FieldEditSize); err != nil {
		return Record{}, err
	}
	if rec.TestEdits, err = countField(r, FieldTestEditSize); err != nil {
		return Record{}, err
	}
	if rec.Launches, err = launches(r); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func launches(r RawRecord) (float64, error) {
	test, okTest, err := numberField(r, FieldTestLaunches)
	if err != nil {
		return 0, err
	}
	normal, okNormal, err := numberField(r, FieldNormalLaunches)
	if err != nil {
		return 0, err
	}
	if !okTest && !okNormal {
		return countField(r, FieldLaunches)
	}
	total := test + normal
	if total < 0 {
		return 0, fmt.Errorf("launch counts must not be negative (got %v)", total)
	}
	return total, nil
}

func countField(r RawRecord, name string) (float64, error) {
	v, _, err := numberField(r, name)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must not be negative (got %v)", name, v)
	}
	return v, nil
}

// numberField looks up name (or one of its aliases) and coerces it to a
// finite float64. ok is false when the field is absent or empty.
func numberField(r RawRecord, name string) (v float64, ok bool, err error) {
	raw, found := lookup(r, name)
	if !found {
		return 0, false, nil
	}
	v, ok, err = coerce(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", name, err)
	}
	return v, ok, nil
}

func lookup(r RawRecord, name string) (any, bool) {
	if v, ok := r[name]; ok && v != nil {
		return v, true
	}
	for _, alt := range aliases[name] {
		if v, ok := r[alt]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func coerce(v any) (float64, bool, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false, fmt.Errorf("not numeric: %q", x.String())
		}
		f = parsed
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, fmt.Errorf("not numeric: %q", x)
		}
		f = parsed
	default:
		return 0, false, fmt.Errorf("unsupported value type %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, fmt.Errorf("not a finite number: %v", f)
	}
	return f, true, nil
}

func stringField(r RawRecord, name string) string {
	switch v := r[name].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return fmt.Sprint(v)
	}
}

// FromMillis converts epoch milliseconds to a UTC time, keeping sub-millisecond
// fractions.
func FromMillis(ms float64) time.Time {
	return time.Unix(0, int64(ms*float64(time.Millisecond))).UTC()
}
