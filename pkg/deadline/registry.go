package deadline

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/skyline/pkg/errors"
)

//go:embed dueTimes.json
var defaultTableJSON []byte

// Entry maps deadline field names to epoch milliseconds.
type Entry map[string]int64

// Registry looks up the deadline entry of an assignment.
type Registry interface {
	Lookup(term, assignment string) (Entry, bool)
}

// Key names one registry entry.
type Key struct {
	Term       string
	Assignment string
}

// Table is an in-memory registry: term → assignment → entry.
type Table map[string]map[string]Entry

// Lookup implements Registry.
func (t Table) Lookup(term, assignment string) (Entry, bool) {
	assignments, ok := t[term]
	if !ok {
		return nil, false
	}
	e, ok := assignments[assignment]
	return e, ok
}

// Keys returns all entries sorted by term, then assignment.
func (t Table) Keys() []Key {
	var keys []Key
	for term, assignments := range t {
		for a := range assignments {
			keys = append(keys, Key{Term: term, Assignment: a})
		}
	}
	slices.SortFunc(keys, func(a, b Key) int {
		if c := strings.Compare(a.Term, b.Term); c != 0 {
			return c
		}
		return strings.Compare(a.Assignment, b.Assignment)
	})
	return keys
}

// Merge returns a new table with the entries of other added to t. Entries in
// other replace whole entries in t.
func (t Table) Merge(other Table) Table {
	out := make(Table, len(t))
	for term, assignments := range t {
		out[term] = make(map[string]Entry, len(assignments))
		for a, e := range assignments {
			out[term][a] = e
		}
	}
	for term, assignments := range other {
		if out[term] == nil {
			out[term] = make(map[string]Entry, len(assignments))
		}
		for a, e := range assignments {
			out[term][a] = e
		}
	}
	return out
}

// Default returns the built-in table for the spring and fall 2016 terms.
func Default() Table {
	t, err := ReadJSON(bytes.NewReader(defaultTableJSON))
	if err != nil {
		panic(fmt.Sprintf("deadline: embedded table: %v", err))
	}
	return t
}

// ReadJSON decodes a JSON registry.
func ReadJSON(r io.Reader) (Table, error) {
	var t Table
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode registry")
	}
	return t, nil
}

// ReadTOML decodes a TOML registry:
//
//	[fall2016.assignment3]
//	milestone1 = 1477350000000
//	dueTime = 1478271600000
func ReadTOML(r io.Reader) (Table, error) {
	var t Table
	if _, err := toml.NewDecoder(r).Decode(&t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode registry")
	}
	return t, nil
}

// ReadFile loads a registry file, choosing the decoder by extension
// (.json or .toml).
func ReadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "registry %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open registry %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(f)
	case ".toml":
		return ReadTOML(f)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "registry %s: unsupported extension (want .json or .toml)", path)
	}
}

// NormalizeTerm turns a display term name into its registry key:
// "Fall 2016" becomes "fall2016".
func NormalizeTerm(term string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, term)
}

// Resolve looks up the deadlines of (term, assignment). The term is tried as
// given and then in normalized form. A missing key fails with
// DEADLINE_NOT_FOUND; missing fields inside a present entry do not.
func Resolve(reg Registry, term, assignment string) (Deadlines, error) {
	e, ok := reg.Lookup(term, assignment)
	if !ok {
		e, ok = reg.Lookup(NormalizeTerm(term), assignment)
	}
	if !ok {
		return Deadlines{}, errors.New(errors.ErrCodeDeadlineNotFound, "no deadlines for term %q, assignment %q", term, assignment)
	}
	return FromEntry(e), nil
}
