// Package ledger holds the day-by-day and per-activity study time records.
package ledger

import (
	"sort"

	"github.com/sadopc/pomotrack/internal/datekey"
)

// DayEntry is one day's totals. Minutes are floored from seconds at save time.
type DayEntry struct {
	Minutes   int
	Pomodoros int
}

// Daily maps a calendar day to its totals. A missing day means no activity.
type Daily map[datekey.Key]DayEntry

// Minutes returns the minutes recorded for k, or 0.
func (d Daily) Minutes(k datekey.Key) int {
	return d[k].Minutes
}

// TotalMinutesInRange sums minutes for every day of r. Missing days add 0.
func (d Daily) TotalMinutesInRange(r datekey.Range) int {
	total := 0
	r.Each(func(k datekey.Key) {
		total += d[k].Minutes
	})
	return total
}

// TotalMinutesInRange is the free-function form used by reports.
func TotalMinutesInRange(d Daily, r datekey.Range) int {
	return d.TotalMinutesInRange(r)
}

// ActiveKeys returns the days with positive minutes in ascending order.
func (d Daily) ActiveKeys() []datekey.Key {
	keys := make([]datekey.Key, 0, len(d))
	for k, e := range d {
		if e.Minutes > 0 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Keys returns every recorded day in ascending order.
func (d Daily) Keys() []datekey.Key {
	keys := make([]datekey.Key, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Clone returns an independent copy.
func (d Daily) Clone() Daily {
	out := make(Daily, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
