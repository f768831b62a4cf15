// Package activity holds the per-session activity records that skyline
// charts are drawn from, and the two transformations applied to them before
// any geometry is computed.
//
// # Records
//
// A [Record] is one observed work session (or sub-interval of one): a start
// and end instant plus three non-negative counts. Loaders hand records over as
// untyped [RawRecord] maps, exactly as they appear in the source file:
//
//	start_time,end_time,editSizeStmts,testEditSizeStmts,testLaunches,normalLaunches
//	1477350000000,1477353600000,42,7,3,5
//
// # Normalization
//
// [Normalize] coerces the epoch-millisecond time fields and the count fields
// of every raw record. A field that cannot be coerced fails the whole batch
// with a MALFORMED_RECORD error; nothing is skipped silently.
//
// # Windowing
//
// [Window] truncates the trailing part of a time-ordered sequence once a
// session starts more than the grace period after the due date:
//
//	kept := activity.Window(records, due, activity.DefaultGraceDays)
//
// The cut is stop-at-first-failure: a later in-window session is never
// retained after an earlier out-of-window one.
package activity
