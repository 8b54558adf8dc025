package timer

// Phase is the part of the cycle the timer is in.
type Phase int

const (
	Study Phase = iota
	ShortBreak
	LongBreak
)

func (p Phase) String() string {
	switch p {
	case ShortBreak:
		return "short break"
	case LongBreak:
		return "long break"
	default:
		return "study"
	}
}

// Mode changes how the Study phase counts.
type Mode int

const (
	// Pomodoro counts down from the configured study duration.
	Pomodoro Mode = iota
	// FreeTimer counts up and only ends on Skip.
	FreeTimer
)

func (m Mode) String() string {
	if m == FreeTimer {
		return "free timer"
	}
	return "pomodoro"
}

// EventKind names a phase change the user should be told about.
type EventKind int

const (
	StudyEnded EventKind = iota
	BreakEnded
	LongBreakEnded
	Skipped
)

func (k EventKind) String() string {
	switch k {
	case StudyEnded:
		return "studyEnded"
	case BreakEnded:
		return "breakEnded"
	case LongBreakEnded:
		return "longBreakEnded"
	case Skipped:
		return "skipped"
	}
	return "unknown"
}

// Event is emitted on every phase transition. Next is the phase entered.
type Event struct {
	Kind EventKind
	Next Phase
}
