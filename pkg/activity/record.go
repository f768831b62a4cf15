package activity

import "time"

// Record is a single normalized work-session record.
// Start is never after End; counts are never negative.
type Record struct {
	Start     time.Time
	End       time.Time
	Edits     float64 // solution statements changed
	TestEdits float64 // test statements changed
	Launches  float64 // test launches + normal launches
}

// Duration returns the length of the session.
func (r Record) Duration() time.Duration { return r.End.Sub(r.Start) }

// Instant reports whether the record describes a single timestamp.
func (r Record) Instant() bool { return r.Start.Equal(r.End) }

// RawRecord is a flat record with untyped fields as produced by a loader.
// Values are strings (CSV) or numbers (JSON, Parquet, SQLite).
type RawRecord map[string]any

// Subject identifies whose work a record set describes. Both fields are
// optional in the source data.
type Subject struct {
	UserID     string
	Assignment string
}

// SubjectOf extracts the subject from the first raw record. Exports repeat
// these columns on every row.
func SubjectOf(raw []RawRecord) Subject {
	if len(raw) == 0 {
		return Subject{}
	}
	first := raw[0]
	return Subject{
		UserID:     stringField(first, FieldUserID),
		Assignment: stringField(first, FieldAssignmentName),
	}
}
