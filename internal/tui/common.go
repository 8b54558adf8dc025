package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/pomotrack/internal/export"
	"github.com/sadopc/pomotrack/internal/ledger"
	"github.com/sadopc/pomotrack/internal/timer"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewActivities
	viewStats
	viewSettings
)

var viewNames = []string{"Timer", "Activities", "Stats", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// dailyDataMsg carries a fresh read of the persisted day ledger.
type dailyDataMsg struct {
	daily ledger.Daily
	err   error
}

type exportDoneMsg struct {
	paths []string
}

type importDoneMsg struct {
	applied export.Applied
}

// eventQueue collects engine events raised during an update so the app can
// turn them into status messages afterwards. It is shared by pointer across
// model copies.
type eventQueue struct {
	events []timer.Event
}

func (q *eventQueue) push(ev timer.Event) { q.events = append(q.events, ev) }

func (q *eventQueue) drain() []timer.Event {
	out := q.events
	q.events = nil
	return out
}

// --- Helpers ---

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatSeconds(secs int64) string {
	return formatDuration(time.Duration(secs) * time.Second)
}

// formatClock renders the big timer digits: MM:SS, or H:MM:SS past an hour.
func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// formatTracked shows short totals in minutes and longer ones in hours.
func formatTracked(secs int64) string {
	if secs < 3600 {
		return fmt.Sprintf("%d min", secs/60)
	}
	return fmt.Sprintf("%.2fh", float64(secs)/3600)
}

func formatHours(minutes int) string {
	return fmt.Sprintf("%.1fh", float64(minutes)/60)
}

func eventText(ev timer.Event) string {
	switch ev.Kind {
	case timer.StudyEnded:
		return "Study session complete! Time for a " + ev.Next.String() + "."
	case timer.BreakEnded:
		return "Break over. Ready to study?"
	case timer.LongBreakEnded:
		return "Long break over. New set starting."
	case timer.Skipped:
		return "Skipped to " + ev.Next.String()
	}
	return ev.Kind.String()
}
