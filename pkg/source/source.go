package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/skyline/pkg/activity"
	"github.com/matzehuels/skyline/pkg/errors"
)

// Source loads raw records from a path.
type Source interface {
	Load(ctx context.Context, path string) ([]activity.RawRecord, error)
}

// Func adapts a function to [Source].
type Func func(ctx context.Context, path string) ([]activity.RawRecord, error)

// Load implements Source.
func (f Func) Load(ctx context.Context, path string) ([]activity.RawRecord, error) {
	return f(ctx, path)
}

// Formats lists the recognized input formats.
var Formats = []string{"csv", "json", "parquet", "sqlite"}

const sqliteScheme = "sqlite://"

// FormatOf returns the input format implied by path, or "" if unknown.
func FormatOf(path string) string {
	if strings.HasPrefix(path, sqliteScheme) {
		return "sqlite"
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	case ".parquet":
		return "parquet"
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	}
	return ""
}

// ForFormat returns the loader for a format name.
func ForFormat(format string) (Source, error) {
	switch format {
	case "csv":
		return CSV{}, nil
	case "json":
		return JSON{}, nil
	case "parquet":
		return Parquet{}, nil
	case "sqlite":
		return SQLite{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q (valid: %s)", format, strings.Join(Formats, ", "))
}

// ForPath returns the loader for a path based on its extension or scheme.
func ForPath(path string) (Source, error) {
	format := FormatOf(path)
	if format == "" {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"cannot infer input format of %s (use .csv, .json, .parquet, .db, or sqlite://)", path)
	}
	return ForFormat(format)
}

// Load reads path with the loader implied by its extension.
func Load(ctx context.Context, path string) ([]activity.RawRecord, error) {
	src, err := ForPath(path)
	if err != nil {
		return nil, err
	}
	return src.Load(ctx, path)
}

// open opens a data file, mapping a missing file to FILE_NOT_FOUND inside a
// DATA_SOURCE error.
func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err == nil {
		return f, nil
	}
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeDataSource, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", path), "open %s", path)
	}
	return nil, errors.Wrap(errors.ErrCodeDataSource, err, "open %s", path)
}
