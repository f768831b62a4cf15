package source

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/matzehuels/skyline/pkg/activity"
	"github.com/matzehuels/skyline/pkg/errors"
)

// CSV loads comma-separated files with a header row. Every field is kept as
// a string; empty fields are omitted.
type CSV struct{}

// Load implements Source.
func (CSV) Load(ctx context.Context, path string) ([]activity.RawRecord, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSource, err, "read %s", path)
	}
	return records, nil
}

// ReadCSV decodes CSV from r. Rows may be shorter than the header.
func ReadCSV(ctx context.Context, r io.Reader) ([]activity.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSource, err, "header")
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	var out []activity.RawRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataSource, err, "row %d", len(out)+1)
		}
		rec := make(activity.RawRecord, len(cols))
		for i, v := range row {
			if i >= len(cols) || cols[i] == "" || v == "" {
				continue
			}
			rec[cols[i]] = v
		}
		out = append(out, rec)
	}
}
