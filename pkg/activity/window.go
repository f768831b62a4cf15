package activity

import "time"

// DefaultGraceDays is how many days after the due date sessions are still
// plotted.
const DefaultGraceDays = 4

const day = 24 * time.Hour

// DayDiff returns the signed number of whole days from start to due,
// truncated toward zero. A session starting 3.5 days after the due date has a
// DayDiff of -3.
func DayDiff(due, start time.Time) int {
	return int(due.Sub(start) / day)
}

// Window returns the longest prefix of records whose sessions start no more
// than graceDays days after due. A record is kept while DayDiff(due, start)
// is greater than -graceDays; the first record failing that test and every
// record after it are dropped, even if a later one would pass on its own.
//
// records must be ordered by Start. The returned slice is a fresh copy.
func Window(records []Record, due time.Time, graceDays int) []Record {
	stop := 0
	for _, r := range records {
		if DayDiff(due, r.Start) <= -graceDays {
			break
		}
		stop++
	}
	out := make([]Record, stop)
	copy(out, records[:stop])
	return out
}
