package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sadopc/pomotrack/internal/timer"
	"gopkg.in/yaml.v3"
)

// Preset is the optional YAML file that seeds a fresh database.
//
//	timer:
//	  study: 50m
//	  short_break: 10m
//	  long_break: 30m
//	  cycles_per_set: 3
//	  free_timer: false
//	  free_timer_break: 5m
//	preferences:
//	  theme: dark
type Preset struct {
	Timer       TimerPreset       `yaml:"timer"`
	Preferences PreferencesPreset `yaml:"preferences"`
}

type TimerPreset struct {
	Study          time.Duration `yaml:"study"`
	ShortBreak     time.Duration `yaml:"short_break"`
	LongBreak      time.Duration `yaml:"long_break"`
	CyclesPerSet   int           `yaml:"cycles_per_set"`
	FreeTimer      bool          `yaml:"free_timer"`
	FreeTimerBreak time.Duration `yaml:"free_timer_break"`
}

type PreferencesPreset struct {
	Theme         string `yaml:"theme"`
	BorderColors  *bool  `yaml:"border_colors"`
	ShowLastStudy *bool  `yaml:"show_last_study"`
}

// LoadPreset reads and parses a preset file.
func LoadPreset(path string) (*Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preset: read %s: %w", path, err)
	}
	p, err := LoadPresetBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("preset: %s: %w", path, err)
	}
	return p, nil
}

// LoadPresetBytes parses a preset from bytes.
func LoadPresetBytes(data []byte) (*Preset, error) {
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	applyDefaults(&p)
	return &p, nil
}

func applyDefaults(p *Preset) {
	d := timer.DefaultConfig()
	if p.Timer.Study <= 0 {
		p.Timer.Study = time.Duration(d.StudySeconds) * time.Second
	}
	if p.Timer.ShortBreak <= 0 {
		p.Timer.ShortBreak = time.Duration(d.ShortBreakSeconds) * time.Second
	}
	if p.Timer.LongBreak <= 0 {
		p.Timer.LongBreak = time.Duration(d.LongBreakSeconds) * time.Second
	}
	if p.Timer.CyclesPerSet <= 0 {
		p.Timer.CyclesPerSet = d.CyclesPerSet
	}
	if p.Timer.FreeTimerBreak <= 0 {
		p.Timer.FreeTimerBreak = time.Duration(d.FreeTimerBreakSeconds) * time.Second
	}
}

// TimerConfig converts the preset to engine configuration. Sub-second
// precision is dropped.
func (p *Preset) TimerConfig() timer.Config {
	return timer.Config{
		StudySeconds:          int(p.Timer.Study / time.Second),
		ShortBreakSeconds:     int(p.Timer.ShortBreak / time.Second),
		LongBreakSeconds:      int(p.Timer.LongBreak / time.Second),
		CyclesPerSet:          p.Timer.CyclesPerSet,
		FreeTimer:             p.Timer.FreeTimer,
		FreeTimerBreakSeconds: int(p.Timer.FreeTimerBreak / time.Second),
	}.WithDefaults()
}
