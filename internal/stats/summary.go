package stats

import (
	"time"

	"github.com/sadopc/pomotrack/internal/datekey"
	"github.com/sadopc/pomotrack/internal/ledger"
)

// TrendDays is the span of the daily trend chart.
const TrendDays = 56

// DayPoint is one day of a trend series.
type DayPoint struct {
	Day     datekey.Key
	Minutes int
}

// DailySeries returns the minutes for each of the last days days, oldest
// first.
func DailySeries(d ledger.Daily, today time.Time, days int) []DayPoint {
	r := datekey.Trailing(days, today)
	out := make([]DayPoint, 0, days)
	r.Each(func(k datekey.Key) {
		out = append(out, DayPoint{Day: k, Minutes: d.Minutes(k)})
	})
	return out
}

// MonthSummary is the headline numbers for the current month.
type MonthSummary struct {
	Hours             float64
	BestWeekday       WeekdayRecord
	CompletedProjects int
}

// SummarizeMonth reports month-to-date hours, the best weekday over all
// history and how many activities were finished this month.
func SummarizeMonth(d ledger.Daily, acts []ledger.Activity, now time.Time) MonthSummary {
	return MonthSummary{
		Hours:             float64(d.TotalMinutesInRange(datekey.MonthToDate(now))) / 60,
		BestWeekday:       BestDayOfWeek(d),
		CompletedProjects: len(FilterCompletedProjects(acts, CompletedThisMonth, now)),
	}
}
