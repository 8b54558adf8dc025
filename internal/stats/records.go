package stats

import (
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/sadopc/pomotrack/internal/datekey"
	"github.com/sadopc/pomotrack/internal/ledger"
)

// NotAvailable labels a record that has no data yet.
const NotAvailable = "N/A"

const (
	weekLookbackDays = 365
	monthLookback    = 12
)

// DayRecord is the best single day.
type DayRecord struct {
	Day     datekey.Key
	Minutes int
}

// MonthRecord is the best calendar month.
type MonthRecord struct {
	Label string
	Hours float64
}

// WeekdayRecord is the weekday with the highest average.
type WeekdayRecord struct {
	Name       string
	AvgMinutes float64
}

// Records bundles the personal bests shown together in the stats view.
type Records struct {
	LongestStreak int
	BestDay       DayRecord
	HasBestDay    bool
	BestWeek      int
	BestMonth     MonthRecord
}

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// MostProductiveDay returns the day with the most minutes. Ties go to the
// earliest day.
func MostProductiveDay(d ledger.Daily) (DayRecord, bool) {
	var best DayRecord
	for _, k := range d.Keys() {
		if m := d.Minutes(k); m > best.Minutes {
			best = DayRecord{Day: k, Minutes: m}
		}
	}
	return best, best.Day != ""
}

// MostProductiveWeek is the highest 7-day trailing sum among windows ending
// on each of the last 365 days.
func MostProductiveWeek(d ledger.Daily, today time.Time) int {
	end := datekey.FromTime(today)
	oldest := end.AddDays(-(weekLookbackDays - 1))

	// Sliding sum over [oldest-6, end].
	window := 0
	for k := oldest.AddDays(-6); k < oldest; k = k.AddDays(1) {
		window += d.Minutes(k)
	}
	best := 0
	for k := oldest; k <= end; k = k.AddDays(1) {
		window += d.Minutes(k)
		best = max(best, window)
		window -= d.Minutes(k.AddDays(-6))
	}
	return best
}

// MostProductiveMonth scans the current and previous 11 months. Ties keep
// the most recent month.
func MostProductiveMonth(d ledger.Daily, today time.Time) MonthRecord {
	best := MonthRecord{Label: NotAvailable}
	for offset := 0; offset < monthLookback; offset++ {
		r := datekey.MonthRange(-offset, today)
		hours := float64(d.TotalMinutesInRange(r)) / 60
		if hours > best.Hours {
			best = MonthRecord{Label: r.StartTime().Format("Jan 2006"), Hours: hours}
		}
	}
	return best
}

// BestDayOfWeek averages studied days per weekday and returns the best.
func BestDayOfWeek(d ledger.Daily) WeekdayRecord {
	var sums, counts [7]int
	for k, e := range d {
		if e.Minutes <= 0 || !k.Valid() {
			continue
		}
		wd := k.Weekday()
		sums[wd] += e.Minutes
		counts[wd]++
	}
	best := WeekdayRecord{Name: NotAvailable}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if counts[wd] == 0 {
			continue
		}
		if avg := float64(sums[wd]) / float64(counts[wd]); avg > best.AvgMinutes {
			best = WeekdayRecord{Name: weekdayNames[wd], AvgMinutes: avg}
		}
	}
	return best
}

// PersonalRecords computes every personal best at once.
func PersonalRecords(d ledger.Daily, today time.Time) Records {
	day, ok := MostProductiveDay(d)
	return Records{
		LongestStreak: LongestStreak(d),
		BestDay:       day,
		HasBestDay:    ok,
		BestWeek:      MostProductiveWeek(d, today),
		BestMonth:     MostProductiveMonth(d, today),
	}
}

// AvailableYears lists, ascending, the years with any studied day.
func AvailableYears(d ledger.Daily) []int {
	var years []int
	for _, k := range d.ActiveKeys() {
		y := k.Year()
		if len(years) == 0 || years[len(years)-1] != y {
			years = append(years, y)
		}
	}
	return years
}

// Plural formats a count with its noun, e.g. "1 day" or "3 days".
func Plural(n int, noun string) string {
	return english.Plural(n, noun, "")
}
