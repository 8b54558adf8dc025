package timer

import "github.com/sadopc/pomotrack/internal/ledger"

// Config holds the configured interval lengths, all in seconds.
type Config struct {
	StudySeconds          int
	ShortBreakSeconds     int
	LongBreakSeconds      int
	CyclesPerSet          int
	FreeTimer             bool
	FreeTimerBreakSeconds int
}

// DefaultConfig is 25/5/15 with a long break every fourth pomodoro.
func DefaultConfig() Config {
	return Config{
		StudySeconds:          25 * 60,
		ShortBreakSeconds:     5 * 60,
		LongBreakSeconds:      15 * 60,
		CyclesPerSet:          4,
		FreeTimerBreakSeconds: 5 * 60,
	}
}

// Validate rejects non-positive durations and cycle counts.
func (c Config) Validate() error {
	checks := []struct {
		field string
		value int
	}{
		{"study duration", c.StudySeconds},
		{"short break", c.ShortBreakSeconds},
		{"long break", c.LongBreakSeconds},
		{"cycles per set", c.CyclesPerSet},
		{"free timer break", c.FreeTimerBreakSeconds},
	}
	for _, ch := range checks {
		if ch.value <= 0 {
			return &ledger.ValidationError{Field: ch.field, Msg: "must be positive"}
		}
	}
	return nil
}

// WithDefaults replaces unset fields with their defaults.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.StudySeconds <= 0 {
		c.StudySeconds = d.StudySeconds
	}
	if c.ShortBreakSeconds <= 0 {
		c.ShortBreakSeconds = d.ShortBreakSeconds
	}
	if c.LongBreakSeconds <= 0 {
		c.LongBreakSeconds = d.LongBreakSeconds
	}
	if c.CyclesPerSet <= 0 {
		c.CyclesPerSet = d.CyclesPerSet
	}
	if c.FreeTimerBreakSeconds <= 0 {
		c.FreeTimerBreakSeconds = d.FreeTimerBreakSeconds
	}
	return c
}

// Mode is the configured default study mode.
func (c Config) Mode() Mode {
	if c.FreeTimer {
		return FreeTimer
	}
	return Pomodoro
}
