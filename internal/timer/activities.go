package timer

import "github.com/sadopc/pomotrack/internal/ledger"

// AddActivity creates an activity and persists the list.
func (e *Engine) AddActivity(name string, goalHours int) (ledger.Activity, ledger.Result) {
	a, err := e.acts.Add(name, goalHours, e.now())
	if err != nil {
		return ledger.Activity{}, ledger.Result{Err: err}
	}
	return a, e.saveActivities()
}

// ToggleActivity starts or stops routing study time to id. Session seconds
// already credited elsewhere stay where they are.
func (e *Engine) ToggleActivity(id string) error {
	if err := e.acts.ToggleActive(id); err != nil {
		return err
	}
	e.state.ActivitySessionSeconds = 0
	return nil
}

// CompleteActivity marks id finished and persists the list.
func (e *Engine) CompleteActivity(id string) ledger.Result {
	wasActive := e.acts.ActiveID() == id
	if err := e.acts.Complete(id, e.now()); err != nil {
		return ledger.Result{Err: err}
	}
	if wasActive {
		e.state.ActivitySessionSeconds = 0
	}
	return e.saveActivities()
}

// RemoveActivity deletes id and persists the list.
func (e *Engine) RemoveActivity(id string) ledger.Result {
	wasActive := e.acts.ActiveID() == id
	if err := e.acts.Remove(id); err != nil {
		return ledger.Result{Err: err}
	}
	if wasActive {
		e.state.ActivitySessionSeconds = 0
	}
	return e.saveActivities()
}

// ReplaceActivities swaps in a freshly loaded list, e.g. after an import.
func (e *Engine) ReplaceActivities(items []ledger.Activity) {
	before := e.acts.ActiveID()
	e.acts.Replace(items)
	if e.acts.ActiveID() != before {
		e.state.ActivitySessionSeconds = 0
	}
}

// ReloadToday replaces the in-memory totals for today, e.g. after an import.
func (e *Engine) ReloadToday(entry ledger.DayEntry) {
	e.state.TodaySeconds = entry.Minutes * 60
	e.state.TodayPomodoros = entry.Pomodoros
	e.clearSession()
}
