package ledger

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/pomotrack/internal/datekey"
)

// Activity is a tracked project. DailySeconds is nil until the activity
// first receives a tick; earlier time lives only in CurrentSeconds.
type Activity struct {
	ID             string
	Name           string
	GoalHours      int
	StartDate      time.Time
	CurrentSeconds int64
	DailySeconds   map[datekey.Key]int64
	Completed      bool
	EndDate        *time.Time
	EndSeconds     int64
	EndHours       float64
}

// TracksDaily reports whether per-day accounting has been engaged.
func (a *Activity) TracksDaily() bool {
	return a.DailySeconds != nil
}

// LastTrackedDate is the latest day with positive seconds.
func (a *Activity) LastTrackedDate() (datekey.Key, bool) {
	var last datekey.Key
	for k, secs := range a.DailySeconds {
		if secs > 0 && k > last {
			last = k
		}
	}
	return last, last != ""
}

// SecondsIn sums the per-day seconds that fall inside r.
func (a *Activity) SecondsIn(r datekey.Range) int64 {
	var total int64
	r.Each(func(k datekey.Key) {
		total += a.DailySeconds[k]
	})
	return total
}

// Until is the end of the activity's lifetime: its end date once completed,
// otherwise now.
func (a *Activity) Until(now time.Time) time.Time {
	if a.Completed && a.EndDate != nil {
		return *a.EndDate
	}
	return now
}

// Clone deep-copies the activity.
func (a Activity) Clone() Activity {
	if a.DailySeconds != nil {
		daily := make(map[datekey.Key]int64, len(a.DailySeconds))
		for k, v := range a.DailySeconds {
			daily[k] = v
		}
		a.DailySeconds = daily
	}
	if a.EndDate != nil {
		end := *a.EndDate
		a.EndDate = &end
	}
	return a
}

// Normalize fills defaults on a loaded or imported record so the rest of the
// program can rely on every field being populated.
func (a *Activity) Normalize(now time.Time) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.Name = strings.TrimSpace(a.Name)
	if a.GoalHours < 0 {
		a.GoalHours = 0
	}
	if a.StartDate.IsZero() {
		a.StartDate = now
	}
	if a.CurrentSeconds < 0 {
		a.CurrentSeconds = 0
	}
	for k, v := range a.DailySeconds {
		if v < 0 {
			a.DailySeconds[k] = 0
		}
	}
	if !a.Completed {
		a.EndDate = nil
		return
	}
	if a.EndSeconds == 0 && a.CurrentSeconds > 0 {
		a.EndSeconds = a.CurrentSeconds
	}
	if a.EndHours == 0 {
		a.EndHours = roundHours(a.EndSeconds)
	}
}

func roundHours(seconds int64) float64 {
	return math.Round(float64(seconds)/3600*100) / 100
}
