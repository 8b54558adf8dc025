// Package stats derives reports from the day and activity ledgers. Every
// function is pure: callers pass the ledgers and the reference time, and
// empty input yields zero values rather than errors.
package stats

import (
	"time"

	"github.com/sadopc/pomotrack/internal/datekey"
	"github.com/sadopc/pomotrack/internal/ledger"
)

// CurrentStreak counts consecutive studied days ending today. An unstudied
// today does not break a streak that reaches yesterday.
func CurrentStreak(d ledger.Daily, today time.Time) int {
	day := datekey.FromTime(today)
	if d.Minutes(day) <= 0 {
		day = day.AddDays(-1)
	}
	n := 0
	for d.Minutes(day) > 0 {
		n++
		day = day.AddDays(-1)
	}
	return n
}

// LongestStreak is the longest run of consecutive studied days anywhere in
// the ledger.
func LongestStreak(d ledger.Daily) int {
	longest, run := 0, 0
	var prev datekey.Key
	for _, k := range d.ActiveKeys() {
		if prev != "" && datekey.KeyDaysBetween(prev, k) == 1 {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
		prev = k
	}
	return longest
}

// DaysSinceLastStudy is the number of days between the latest studied day
// and today. ok is false when nothing was ever studied.
func DaysSinceLastStudy(d ledger.Daily, today time.Time) (days int, ok bool) {
	keys := d.ActiveKeys()
	if len(keys) == 0 {
		return 0, false
	}
	return datekey.KeyDaysBetween(keys[len(keys)-1], datekey.FromTime(today)), true
}

// LastStudyLabel renders DaysSinceLastStudy for the status line.
func LastStudyLabel(d ledger.Daily, today time.Time) string {
	n, ok := DaysSinceLastStudy(d, today)
	switch {
	case !ok:
		return "Never"
	case n <= 0:
		return "Today"
	default:
		return Plural(n, "day") + " ago"
	}
}
