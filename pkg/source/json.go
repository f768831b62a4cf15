package source

import (
	"context"
	"encoding/json"
	"io"

	"github.com/matzehuels/skyline/pkg/activity"
	"github.com/matzehuels/skyline/pkg/errors"
)

// JSON loads a JSON array of flat objects. Numbers keep their literal form
// so that epoch milliseconds are not rounded; null fields are dropped.
type JSON struct{}

// Load implements Source.
func (JSON) Load(ctx context.Context, path string) ([]activity.RawRecord, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ReadJSON(ctx, f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSource, err, "read %s", path)
	}
	return records, nil
}

// ReadJSON decodes a JSON array of objects from r.
func ReadJSON(ctx context.Context, r io.Reader) ([]activity.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSource, err, "decode")
	}
	out := make([]activity.RawRecord, len(rows))
	for i, row := range rows {
		for k, v := range row {
			if v == nil {
				delete(row, k)
			}
		}
		out[i] = activity.RawRecord(row)
	}
	return out, nil
}
