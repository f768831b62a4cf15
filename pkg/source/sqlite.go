package source

import (
	"context"
	"database/sql"
	"net/url"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/matzehuels/skyline/pkg/activity"
	"github.com/matzehuels/skyline/pkg/errors"
)

const driverName = "sqlite"

// DefaultTable is the table read when a SQLite path names none.
const DefaultTable = "work_sessions"

// SQLite loads every row of one table from a SQLite database. The path is
// either a database file or sqlite://file?table=name.
type SQLite struct {
	Table string // overrides DefaultTable; a table in the path wins
}

// Load implements Source.
func (s SQLite) Load(ctx context.Context, path string) ([]activity.RawRecord, error) {
	file, table := splitSQLitePath(path)
	if table == "" {
		table = s.Table
	}
	if table == "" {
		table = DefaultTable
	}
	if err := errors.ValidateKey("table", table); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSource, err, "%s", path)
	}

	// the driver creates missing databases, so check first
	if _, err := os.Stat(file); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeDataSource, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", file), "open %s", file)
		}
		return nil, errors.Wrap(errors.ErrCodeDataSource, err, "open %s", file)
	}

	db, err := sql.Open(driverName, file)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSource, err, "open %s", file)
	}
	defer func() { _ = db.Close() }()

	records, err := queryTable(ctx, db, table)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSource, err, "read %s table %s", file, table)
	}
	return records, nil
}

func splitSQLitePath(path string) (file, table string) {
	rest, ok := strings.CutPrefix(path, sqliteScheme)
	if !ok {
		return path, ""
	}
	file, query, _ := strings.Cut(rest, "?")
	q, err := url.ParseQuery(query)
	if err != nil {
		return file, ""
	}
	return file, q.Get("table")
}

func queryTable(ctx context.Context, db *sql.DB, table string) ([]activity.RawRecord, error) {
	rows, err := db.QueryContext(ctx, `SELECT * FROM "`+table+`"`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []activity.RawRecord
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rec := make(activity.RawRecord, len(cols))
		for i, col := range cols {
			switch v := vals[i].(type) {
			case nil:
			case []byte:
				rec[col] = string(v)
			case time.Time:
				rec[col] = v.UnixMilli()
			default:
				rec[col] = v
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
