package source

import (
	"context"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/matzehuels/skyline/pkg/activity"
	"github.com/matzehuels/skyline/pkg/errors"
)

// ParquetRow is the column layout of a work-session Parquet file. Every
// column is optional; files with a subset of the columns load fine.
type ParquetRow struct {
	StartTime         *int64   `parquet:"start_time,optional,snappy"`
	EndTime           *int64   `parquet:"end_time,optional,snappy"`
	EditSizeStmts     *float64 `parquet:"editSizeStmts,optional,snappy"`
	TestEditSizeStmts *float64 `parquet:"testEditSizeStmts,optional,snappy"`
	TestLaunches      *float64 `parquet:"testLaunches,optional,snappy"`
	NormalLaunches    *float64 `parquet:"normalLaunches,optional,snappy"`
	Launches          *float64 `parquet:"launches,optional,snappy"`
	UserID            *string  `parquet:"userId,optional,snappy"`
	Assignment        *string  `parquet:"CASSIGNMENTNAME,optional,snappy"`
}

// Raw converts the row into a raw record, omitting null columns.
func (p ParquetRow) Raw() activity.RawRecord {
	r := make(activity.RawRecord, 9)
	if p.StartTime != nil {
		r[activity.FieldStartTime] = *p.StartTime
	}
	if p.EndTime != nil {
		r[activity.FieldEndTime] = *p.EndTime
	}
	for key, v := range map[string]*float64{
		activity.FieldEditSize:       p.EditSizeStmts,
		activity.FieldTestEditSize:   p.TestEditSizeStmts,
		activity.FieldTestLaunches:   p.TestLaunches,
		activity.FieldNormalLaunches: p.NormalLaunches,
		activity.FieldLaunches:       p.Launches,
	} {
		if v != nil {
			r[key] = *v
		}
	}
	if p.UserID != nil {
		r[activity.FieldUserID] = *p.UserID
	}
	if p.Assignment != nil {
		r[activity.FieldAssignmentName] = *p.Assignment
	}
	return r
}

// ParquetRows converts normalized records into Parquet rows. Launch counts
// are written to the combined launches column.
func ParquetRows(records []activity.Record, sub activity.Subject) []ParquetRow {
	rows := make([]ParquetRow, len(records))
	for i, rec := range records {
		start, end := rec.Start.UnixMilli(), rec.End.UnixMilli()
		edits, testEdits, launches := rec.Edits, rec.TestEdits, rec.Launches
		row := ParquetRow{
			StartTime:         &start,
			EndTime:           &end,
			EditSizeStmts:     &edits,
			TestEditSizeStmts: &testEdits,
			Launches:          &launches,
		}
		if sub.UserID != "" {
			row.UserID = &sub.UserID
		}
		if sub.Assignment != "" {
			row.Assignment = &sub.Assignment
		}
		rows[i] = row
	}
	return rows
}

// Parquet loads work-session Parquet files.
type Parquet struct{}

// Load implements Source.
func (Parquet) Load(ctx context.Context, path string) ([]activity.RawRecord, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	f.Close()

	rows, err := parquet.ReadFile[ParquetRow](path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSource, err, "read %s", path)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]activity.RawRecord, len(rows))
	for i, row := range rows {
		out[i] = row.Raw()
	}
	return out, nil
}

// WriteParquet writes rows to a Parquet file at path.
func WriteParquet(path string, rows []ParquetRow) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[ParquetRow](file)
	if _, err := writer.Write(rows); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	if err := writer.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", path)
	}
	return nil
}
