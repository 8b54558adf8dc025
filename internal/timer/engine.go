// Package timer runs the study/break state machine and accrues study time
// into the day and activity ledgers.
//
// An Engine is not safe for concurrent use. A single goroutine, normally the
// Bubble Tea update loop or Run, owns it and calls Tick once per second.
package timer

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sadopc/pomotrack/internal/datekey"
	"github.com/sadopc/pomotrack/internal/ledger"
)

// ErrModeSwitch is returned when the mode is changed outside a study phase.
var ErrModeSwitch = errors.New("mode can only be changed while studying")

// checkpointEvery is how often, in tracked seconds, activity totals are
// written between commits.
const checkpointEvery = 60

// Persister stores the ledgers. *store.Store implements it.
type Persister interface {
	SaveDay(day datekey.Key, pomodoros, minutes int) error
	DeleteDay(day datekey.Key) error
	SaveActivities(acts []ledger.Activity) error
}

// State is a snapshot of the engine's counters.
type State struct {
	Phase     Phase
	Mode      Mode
	Remaining int // seconds left, or seconds elapsed in a free-timer study
	Cycle     int
	TotalSets int
	Running   bool

	// SessionSeconds is study time not yet committed; Reset removes it.
	SessionSeconds int
	// ActivitySessionSeconds is the part of SessionSeconds credited to the
	// activity that is active now.
	ActivitySessionSeconds int

	Day            datekey.Key
	TodaySeconds   int
	TodayPomodoros int
}

// Engine owns the timer state and the activity list.
type Engine struct {
	state State
	cfg   Config
	acts  *ledger.Activities
	store Persister

	log     zerolog.Logger
	now     func() time.Time
	onEvent func(Event)
	last    ledger.Result
}

// Option customises an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithEventHandler receives phase transition events.
func WithEventHandler(fn func(Event)) Option {
	return func(e *Engine) { e.onEvent = fn }
}

// New builds an engine in the Study phase, seeded from today's persisted
// totals.
func New(cfg Config, today ledger.DayEntry, acts *ledger.Activities, p Persister, opts ...Option) *Engine {
	e := &Engine{
		cfg:   cfg.WithDefaults(),
		acts:  acts,
		store: p,
		log:   zerolog.Nop(),
		now:   time.Now,
		last:  ledger.OK(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.acts == nil {
		e.acts = ledger.NewActivities(nil)
	}
	e.state = State{
		Phase:          Study,
		Mode:           e.cfg.Mode(),
		Day:            datekey.FromTime(e.now()),
		TodaySeconds:   today.Minutes * 60,
		TodayPomodoros: today.Pomodoros,
	}
	e.state.Remaining = e.nominal(Study)
	return e
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() State { return e.state }

// Config returns the active configuration.
func (e *Engine) Config() Config { return e.cfg }

// Activities exposes the activity list for reading.
func (e *Engine) Activities() *ledger.Activities { return e.acts }

// LastResult is the outcome of the most recent write.
func (e *Engine) LastResult() ledger.Result { return e.last }

// Start resumes ticking.
func (e *Engine) Start() { e.state.Running = true }

// Pause suspends ticking.
func (e *Engine) Pause() { e.state.Running = false }

// Toggle flips between running and paused.
func (e *Engine) Toggle() { e.state.Running = !e.state.Running }

func (e *Engine) nominal(p Phase) int {
	switch p {
	case ShortBreak:
		if e.state.Mode == FreeTimer {
			return e.cfg.FreeTimerBreakSeconds
		}
		return e.cfg.ShortBreakSeconds
	case LongBreak:
		return e.cfg.LongBreakSeconds
	}
	if e.state.Mode == FreeTimer {
		return 0
	}
	return e.cfg.StudySeconds
}

// Tick advances the machine by one second. Paused engines ignore it.
func (e *Engine) Tick() {
	if !e.state.Running {
		return
	}
	e.rollover()

	switch e.state.Phase {
	case Study:
		e.accrue()
		if e.state.Mode == FreeTimer {
			e.state.Remaining++
			return
		}
		e.state.Remaining--
		if e.state.Remaining <= 0 {
			e.finishStudy(StudyEnded)
		}
	case ShortBreak, LongBreak:
		e.state.Remaining--
		if e.state.Remaining <= 0 {
			kind := BreakEnded
			if e.state.Phase == LongBreak {
				kind = LongBreakEnded
			}
			e.finishBreak(kind)
		}
	}
}

func (e *Engine) accrue() {
	e.state.TodaySeconds++
	e.state.SessionSeconds++
	if e.acts.Tick(e.state.Day) {
		e.state.ActivitySessionSeconds++
		if e.state.ActivitySessionSeconds%checkpointEvery == 0 {
			e.saveActivities()
		}
	}
}

// rollover starts a new day when the clock crosses midnight. The old day is
// committed first; seconds after midnight belong to the new day.
func (e *Engine) rollover() {
	day := datekey.FromTime(e.now())
	if day == e.state.Day {
		return
	}
	e.log.Info().Str("from", string(e.state.Day)).Str("to", string(day)).Msg("day rollover")
	e.Commit()
	e.state.Day = day
	e.state.TodaySeconds = 0
	e.state.TodayPomodoros = 0
	e.state.SessionSeconds = 0
	e.state.ActivitySessionSeconds = 0
}

// finishStudy ends a study phase, counting a pomodoro unless it was a
// free-timer session.
func (e *Engine) finishStudy(kind EventKind) {
	e.state.Running = false
	if e.state.Mode == FreeTimer {
		e.Commit()
		e.clearSession()
		e.enter(ShortBreak, e.nominal(ShortBreak))
		e.emit(kind)
		return
	}

	e.state.TodayPomodoros++
	e.state.Cycle++
	e.Commit()
	e.clearSession()
	if e.state.Cycle >= e.cfg.CyclesPerSet {
		e.enter(LongBreak, e.cfg.LongBreakSeconds)
	} else {
		e.enter(ShortBreak, e.cfg.ShortBreakSeconds)
	}
	e.emit(kind)
}

func (e *Engine) finishBreak(kind EventKind) {
	e.state.Running = false
	if e.state.Phase == LongBreak {
		e.state.Cycle = 0
		e.state.TotalSets++
	}
	e.enter(Study, 0)
	e.state.Remaining = e.nominal(Study)
	e.emit(kind)
}

func (e *Engine) enter(p Phase, remaining int) {
	e.state.Phase = p
	e.state.Remaining = remaining
}

func (e *Engine) clearSession() {
	e.state.SessionSeconds = 0
	e.state.ActivitySessionSeconds = 0
}

func (e *Engine) emit(kind EventKind) {
	ev := Event{Kind: kind, Next: e.state.Phase}
	e.log.Debug().Stringer("event", kind).Stringer("next", ev.Next).Msg("phase change")
	if e.onEvent != nil {
		e.onEvent(ev)
	}
}

// Skip ends the current phase early.
func (e *Engine) Skip() {
	if e.state.Phase == Study {
		e.finishStudy(Skipped)
		return
	}
	e.finishBreak(Skipped)
}

// Reset pauses and rewinds the current phase. In a study phase the
// uncommitted session seconds are taken back out of today and out of the
// active activity.
func (e *Engine) Reset() ledger.Result {
	e.state.Running = false
	res := ledger.OK()
	if e.state.Phase == Study && e.state.SessionSeconds > 0 {
		e.state.TodaySeconds = max(0, e.state.TodaySeconds-e.state.SessionSeconds)
		if e.acts.UndoSession(int64(e.state.ActivitySessionSeconds), e.state.Day) {
			res = e.saveActivities()
		}
	}
	e.clearSession()
	e.state.Remaining = e.nominal(e.state.Phase)
	return res
}

// SetMode switches between pomodoro and free-timer counting. Accrued totals
// are kept.
func (e *Engine) SetMode(m Mode) error {
	if e.state.Phase != Study {
		return ErrModeSwitch
	}
	e.state.Mode = m
	e.state.Remaining = e.nominal(Study)
	return nil
}

// ToggleMode flips the study mode.
func (e *Engine) ToggleMode() error {
	if e.state.Mode == FreeTimer {
		return e.SetMode(Pomodoro)
	}
	return e.SetMode(FreeTimer)
}

// SetConfig applies a new configuration and rewinds the current phase to its
// new nominal length.
func (e *Engine) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg = cfg
	if e.state.Phase == Study {
		e.state.Mode = cfg.Mode()
	}
	e.state.Remaining = e.nominal(e.state.Phase)
	return nil
}

// Commit writes today's totals and the activity list. Failures are logged
// and returned; the engine keeps running either way.
func (e *Engine) Commit() ledger.Result {
	minutes := e.state.TodaySeconds / 60
	if err := e.store.SaveDay(e.state.Day, e.state.TodayPomodoros, minutes); err != nil {
		return e.record(ledger.Failed("save day", err))
	}
	return e.saveActivities()
}

func (e *Engine) saveActivities() ledger.Result {
	if err := e.store.SaveActivities(e.acts.List()); err != nil {
		return e.record(ledger.Failed("save activities", err))
	}
	return e.record(ledger.OK())
}

func (e *Engine) record(res ledger.Result) ledger.Result {
	if res.Err != nil {
		e.log.Warn().Err(res.Err).Msg("persist failed")
	}
	e.last = res
	return res
}

// DiscardToday deletes today's ledger entry and zeroes the day's counters,
// the cycle and the set count.
func (e *Engine) DiscardToday() ledger.Result {
	e.state.TodaySeconds = 0
	e.state.TodayPomodoros = 0
	e.state.Cycle = 0
	e.state.TotalSets = 0
	e.clearSession()
	if err := e.store.DeleteDay(e.state.Day); err != nil {
		return e.record(ledger.Failed("delete day", err))
	}
	return e.record(ledger.OK())
}

// LiveToday overlays the engine's uncommitted totals for today onto a copy
// of the persisted ledger.
func (e *Engine) LiveToday(d ledger.Daily) ledger.Daily {
	out := d.Clone()
	if _, ok := out[e.state.Day]; ok || e.state.TodaySeconds > 0 || e.state.TodayPomodoros > 0 {
		out[e.state.Day] = ledger.DayEntry{
			Minutes:   e.state.TodaySeconds / 60,
			Pomodoros: e.state.TodayPomodoros,
		}
	}
	return out
}
