package stats

import (
	"math"
	"time"

	"github.com/sadopc/pomotrack/internal/datekey"
	"github.com/sadopc/pomotrack/internal/ledger"
)

// Thresholds are the upper bounds of heatmap buckets 1 to 3.
type Thresholds [3]int

// BuildThresholds scales the buckets to the busiest day of the year.
func BuildThresholds(minutes []int) Thresholds {
	if len(minutes) == 0 {
		return Thresholds{5, 15, 30}
	}
	top := minutes[0]
	for _, m := range minutes[1:] {
		top = max(top, m)
	}
	scale := func(f float64) int { return int(math.Ceil(float64(top) * f)) }
	switch {
	case top <= 15:
		return Thresholds{1, 5, 10}
	case top <= 60:
		return Thresholds{scale(0.15), scale(0.4), scale(0.75)}
	default:
		return Thresholds{scale(0.1), scale(0.33), scale(0.66)}
	}
}

// ColorBucket maps minutes to an intensity from 0 (none) to 4.
func ColorBucket(minutes int, th Thresholds) int {
	switch {
	case minutes <= 0:
		return 0
	case minutes <= th[0]:
		return 1
	case minutes <= th[1]:
		return 2
	case minutes <= th[2]:
		return 3
	default:
		return 4
	}
}

// HeatCell is one day of the heatmap.
type HeatCell struct {
	Day       datekey.Key
	Minutes   int
	Pomodoros int
	Bucket    int
	Today     bool
}

// HeatWeek is a Sunday-to-Saturday column. Days outside the year are nil.
type HeatWeek struct {
	Month time.Month
	Days  [7]*HeatCell
}

// Heatmap is a year of days laid out in week columns.
type Heatmap struct {
	Year       int
	Thresholds Thresholds
	Weeks      []HeatWeek
}

// BuildHeatmap lays out year with buckets relative to that year's data.
func BuildHeatmap(d ledger.Daily, year int, today time.Time) Heatmap {
	r := datekey.YearRange(year)
	todayKey := datekey.FromTime(today)

	var positive []int
	r.Each(func(k datekey.Key) {
		if m := d.Minutes(k); m > 0 {
			positive = append(positive, m)
		}
	})
	hm := Heatmap{Year: year, Thresholds: BuildThresholds(positive)}

	var week HeatWeek
	empty := true
	flush := func() {
		if !empty {
			hm.Weeks = append(hm.Weeks, week)
		}
		week, empty = HeatWeek{}, true
	}
	r.Each(func(k datekey.Key) {
		e := d[k]
		wd := k.Weekday()
		if empty {
			week.Month = k.Time().Month()
		}
		week.Days[wd] = &HeatCell{
			Day:       k,
			Minutes:   e.Minutes,
			Pomodoros: e.Pomodoros,
			Bucket:    ColorBucket(e.Minutes, hm.Thresholds),
			Today:     k == todayKey,
		}
		empty = false
		if wd == time.Saturday {
			flush()
		}
	})
	flush()
	return hm
}
