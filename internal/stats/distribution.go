package stats

import (
	"time"

	"github.com/sadopc/pomotrack/internal/datekey"
	"github.com/sadopc/pomotrack/internal/ledger"
)

// ProjectTime is one activity's share of a period.
type ProjectTime struct {
	ID        string
	Name      string
	Minutes   int
	GoalHours int
	Completed bool
}

// Distribution splits a period's study time across activities.
type Distribution struct {
	Projects            []ProjectTime
	UnattributedMinutes int
	TotalStudyMinutes   int
	TotalProjectMinutes int
}

// ProjectDistribution attributes the study time of period to activities.
//
// Activities with per-day tracking contribute the floored minutes of each
// day in range. Activities without it contribute their whole lifetime total
// whenever their lifetime overlaps the period, which over-counts across
// periods.
func ProjectDistribution(acts []ledger.Activity, d ledger.Daily, period string, now time.Time) Distribution {
	r := datekey.PeriodRange(period, now)
	dist := Distribution{TotalStudyMinutes: d.TotalMinutesInRange(r)}

	for i := range acts {
		a := &acts[i]
		if a.StartDate.After(r.EndTime()) || a.Until(now).Before(r.StartTime()) {
			continue
		}
		minutes := 0
		if a.TracksDaily() {
			r.Each(func(k datekey.Key) {
				minutes += int(a.DailySeconds[k] / 60)
			})
		} else {
			secs := a.CurrentSeconds
			if secs == 0 {
				secs = a.EndSeconds
			}
			minutes = int(secs / 60)
		}
		if minutes <= 0 {
			continue
		}
		dist.Projects = append(dist.Projects, ProjectTime{
			ID:        a.ID,
			Name:      a.Name,
			Minutes:   minutes,
			GoalHours: a.GoalHours,
			Completed: a.Completed,
		})
		dist.TotalProjectMinutes += minutes
	}
	dist.UnattributedMinutes = max(0, dist.TotalStudyMinutes-dist.TotalProjectMinutes)
	return dist
}

// Periods accepted by FilterCompletedProjects.
const (
	CompletedThisMonth  = "this-month"
	CompletedPastMonth  = "past-month"
	CompletedSixMonths  = "6-months"
	CompletedEntireYear = "entire-year"
)

const sixMonths = 180 * 24 * time.Hour

// FilterCompletedProjects keeps the completed activities whose end date
// falls in period. Unknown periods match nothing.
func FilterCompletedProjects(acts []ledger.Activity, period string, now time.Time) []ledger.Activity {
	var out []ledger.Activity
	for _, a := range acts {
		if !a.Completed || a.EndDate == nil {
			continue
		}
		if completedIn(*a.EndDate, period, now) {
			out = append(out, a)
		}
	}
	return out
}

func completedIn(end time.Time, period string, now time.Time) bool {
	end = end.In(now.Location())
	switch period {
	case CompletedThisMonth:
		return end.Year() == now.Year() && end.Month() == now.Month()
	case CompletedPastMonth:
		r := datekey.MonthRange(-1, now)
		return !end.Before(r.StartTime()) && !end.After(r.EndTime())
	case CompletedSixMonths:
		return now.Sub(end) <= sixMonths
	case CompletedEntireYear:
		return end.Year() == now.Year()
	}
	return false
}
