// Package source loads raw work-session records from files and databases.
//
// # Overview
//
// Every loader implements [Source]: it reads one path and returns untyped
// [activity.RawRecord] values. Conversion to typed records happens later in
// [activity.Normalize], so loaders stay format-only.
//
// [ForPath] picks a loader from the path:
//
//   - .csv: header row plus string fields ([CSV])
//   - .json: an array of objects ([JSON])
//   - .parquet: a columnar export ([Parquet])
//   - .db, .sqlite, .sqlite3, or sqlite://file?table=name: a SQLite table ([SQLite])
//
// Any failure, including a missing file, is reported with the DATA_SOURCE
// error code; the underlying cause stays in the chain.
//
// [activity.RawRecord]: github.com/matzehuels/skyline/pkg/activity.RawRecord
// [activity.Normalize]: github.com/matzehuels/skyline/pkg/activity.Normalize
package source
