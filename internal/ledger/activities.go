package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/pomotrack/internal/datekey"
)

// Activities is the ordered activity list plus the active selection. The
// selection is held by id and resolved on every access, so removing or
// reordering entries never retargets it.
type Activities struct {
	items    []Activity
	activeID string
}

// NewActivities takes ownership of items.
func NewActivities(items []Activity) *Activities {
	return &Activities{items: items}
}

// Len is the number of activities, completed ones included.
func (l *Activities) Len() int { return len(l.items) }

// List returns deep copies of every activity in order.
func (l *Activities) List() []Activity {
	out := make([]Activity, len(l.items))
	for i, a := range l.items {
		out[i] = a.Clone()
	}
	return out
}

// Open lists the activities that are not completed.
func (l *Activities) Open() []Activity {
	var out []Activity
	for _, a := range l.items {
		if !a.Completed {
			out = append(out, a.Clone())
		}
	}
	return out
}

// Completed lists the finished activities.
func (l *Activities) Completed() []Activity {
	var out []Activity
	for _, a := range l.items {
		if a.Completed {
			out = append(out, a.Clone())
		}
	}
	return out
}

// Get returns a copy of the activity with id.
func (l *Activities) Get(id string) (Activity, bool) {
	if a := l.find(id); a != nil {
		return a.Clone(), true
	}
	return Activity{}, false
}

func (l *Activities) find(id string) *Activity {
	if id == "" {
		return nil
	}
	for i := range l.items {
		if l.items[i].ID == id {
			return &l.items[i]
		}
	}
	return nil
}

// Add appends a new activity started at now.
func (l *Activities) Add(name string, goalHours int, now time.Time) (Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Activity{}, &ValidationError{Field: "name", Msg: "must not be empty"}
	}
	if goalHours < 0 {
		return Activity{}, &ValidationError{Field: "goal", Msg: "must not be negative"}
	}
	a := Activity{
		ID:        uuid.NewString(),
		Name:      name,
		GoalHours: goalHours,
		StartDate: now,
	}
	l.items = append(l.items, a)
	return a.Clone(), nil
}

// ActiveID is the id of the activity receiving ticks, or "".
func (l *Activities) ActiveID() string {
	if l.find(l.activeID) == nil {
		return ""
	}
	return l.activeID
}

// Active returns a copy of the active activity.
func (l *Activities) Active() (Activity, bool) {
	return l.Get(l.ActiveID())
}

// SetActive starts routing ticks to id. Completed activities cannot be
// tracked.
func (l *Activities) SetActive(id string) error {
	a := l.find(id)
	if a == nil {
		return &NotFoundError{ID: id}
	}
	if a.Completed {
		return &ValidationError{Field: "activity", Msg: "already completed"}
	}
	l.activeID = id
	return nil
}

// ToggleActive tracks id, or stops tracking it if it is already active.
func (l *Activities) ToggleActive(id string) error {
	if l.ActiveID() == id && id != "" {
		l.ClearActive()
		return nil
	}
	return l.SetActive(id)
}

// ClearActive stops routing ticks anywhere.
func (l *Activities) ClearActive() {
	l.activeID = ""
}

// Tick credits one second to the active activity on day k. It reports
// whether any activity received the second.
func (l *Activities) Tick(k datekey.Key) bool {
	a := l.find(l.activeID)
	if a == nil {
		return false
	}
	a.CurrentSeconds++
	if a.DailySeconds == nil {
		a.DailySeconds = make(map[datekey.Key]int64)
	}
	a.DailySeconds[k]++
	return true
}

// UndoSession removes seconds previously credited to the active activity on
// day k. Both counters clamp at zero; a missing day entry is left alone.
func (l *Activities) UndoSession(seconds int64, k datekey.Key) bool {
	a := l.find(l.activeID)
	if a == nil || seconds <= 0 {
		return false
	}
	a.CurrentSeconds = max(0, a.CurrentSeconds-seconds)
	if secs, ok := a.DailySeconds[k]; ok && secs > 0 {
		a.DailySeconds[k] = max(0, secs-seconds)
	}
	return true
}

// Complete freezes the activity's totals as of now.
func (l *Activities) Complete(id string, now time.Time) error {
	a := l.find(id)
	if a == nil {
		return &NotFoundError{ID: id}
	}
	end := now
	a.Completed = true
	a.EndDate = &end
	a.EndSeconds = a.CurrentSeconds
	a.EndHours = roundHours(a.EndSeconds)
	if l.activeID == id {
		l.ClearActive()
	}
	return nil
}

// Remove deletes the activity. The active selection is cleared only when it
// named this activity.
func (l *Activities) Remove(id string) error {
	for i := range l.items {
		if l.items[i].ID != id {
			continue
		}
		l.items = append(l.items[:i], l.items[i+1:]...)
		if l.activeID == id {
			l.ClearActive()
		}
		return nil
	}
	return &NotFoundError{ID: id}
}

// Replace swaps in a new list, keeping the selection only if its id survives.
func (l *Activities) Replace(items []Activity) {
	l.items = items
	if l.find(l.activeID) == nil {
		l.ClearActive()
	}
}
