package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sadopc/pomotrack/internal/datekey"
	"github.com/sadopc/pomotrack/internal/ledger"
	"github.com/sadopc/pomotrack/internal/timer"
)

// FormatVersion tags every exported document.
const FormatVersion = "1.0"

// Document is the backup file. A nil field under Data means "not present";
// importing leaves the matching stored value untouched.
type Document struct {
	Version    string `json:"version"`
	ExportDate string `json:"exportDate"`
	Data       *Data  `json:"data"`
}

type Data struct {
	DailyStats  map[string]jsonDay `json:"dailyStats"`
	Projects    []jsonProject      `json:"projects"`
	TimerConfig *jsonTimerConfig   `json:"timerConfig"`
}

type jsonDay struct {
	Minutes int `json:"minutes"`
	Pomos   int `json:"pomos"`
}

type jsonProject struct {
	ID             string            `json:"id,omitempty"`
	Name           string            `json:"name"`
	Goal           *int              `json:"goal"`
	StartDate      string            `json:"startDate"`
	CurrentSeconds int64             `json:"currentSeconds"`
	DailySeconds   *map[string]int64 `json:"dailySeconds,omitempty"`
	Completed      bool              `json:"completed"`
	EndDate        *string           `json:"endDate"`
	EndSeconds     int64             `json:"endSeconds"`
	EndHours       float64           `json:"endHours"`
}

type jsonTimerConfig struct {
	PomodoroTime       int  `json:"pomodoroTime"`
	ShortBreakTime     int  `json:"shortBreakTime"`
	LongBreakTime      int  `json:"longBreakTime"`
	CyclesPerSet       int  `json:"cyclesPerSet"`
	FreeTimerMode      bool `json:"freeTimerMode"`
	FreeTimerBreakTime int  `json:"freeTimerBreakTime"`
}

// Build assembles a complete document.
func Build(d ledger.Daily, acts []ledger.Activity, cfg timer.Config, now time.Time) Document {
	data := &Data{
		DailyStats: make(map[string]jsonDay, len(d)),
		Projects:   make([]jsonProject, 0, len(acts)),
		TimerConfig: &jsonTimerConfig{
			PomodoroTime:       cfg.StudySeconds,
			ShortBreakTime:     cfg.ShortBreakSeconds,
			LongBreakTime:      cfg.LongBreakSeconds,
			CyclesPerSet:       cfg.CyclesPerSet,
			FreeTimerMode:      cfg.FreeTimer,
			FreeTimerBreakTime: cfg.FreeTimerBreakSeconds,
		},
	}
	for k, e := range d {
		data.DailyStats[string(k)] = jsonDay{Minutes: e.Minutes, Pomos: e.Pomodoros}
	}
	for _, a := range acts {
		goal := a.GoalHours
		p := jsonProject{
			ID:             a.ID,
			Name:           a.Name,
			Goal:           &goal,
			StartDate:      a.StartDate.UTC().Format(time.RFC3339),
			CurrentSeconds: a.CurrentSeconds,
			Completed:      a.Completed,
			EndSeconds:     a.EndSeconds,
			EndHours:       a.EndHours,
		}
		if a.DailySeconds != nil {
			days := make(map[string]int64, len(a.DailySeconds))
			for k, v := range a.DailySeconds {
				days[string(k)] = v
			}
			p.DailySeconds = &days
		}
		if a.EndDate != nil {
			end := a.EndDate.UTC().Format(time.RFC3339)
			p.EndDate = &end
		}
		data.Projects = append(data.Projects, p)
	}
	return Document{
		Version:    FormatVersion,
		ExportDate: now.UTC().Format(time.RFC3339),
		Data:       data,
	}
}

// WriteJSON encodes doc as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	return nil
}

// ToJSON writes doc to path.
func ToJSON(doc Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, doc); err != nil {
		return err
	}
	return f.Close()
}

// Parse decodes a backup document and checks that version and data are
// present.
func Parse(raw []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ledger.ValidationError{Field: "document", Msg: err.Error()}
	}
	if doc.Version == "" {
		return nil, &ledger.ValidationError{Field: "version", Msg: "missing"}
	}
	if doc.Data == nil {
		return nil, &ledger.ValidationError{Field: "data", Msg: "missing"}
	}
	return &doc, nil
}

// ReadFile loads and parses the document at path.
func ReadFile(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	return Parse(raw)
}

// Daily converts the dailyStats section. ok is false when it is absent.
func (doc *Document) Daily() (d ledger.Daily, ok bool, err error) {
	if doc.Data == nil || doc.Data.DailyStats == nil {
		return nil, false, nil
	}
	d = make(ledger.Daily, len(doc.Data.DailyStats))
	for k, e := range doc.Data.DailyStats {
		key, err := datekey.Parse(k)
		if err != nil {
			return nil, true, &ledger.ValidationError{Field: "dailyStats", Msg: err.Error()}
		}
		d[key] = ledger.DayEntry{Minutes: max(0, e.Minutes), Pomodoros: max(0, e.Pomos)}
	}
	return d, true, nil
}

// Activities converts the projects section, filling missing ids and
// defaults. ok is false when it is absent.
func (doc *Document) Activities(now time.Time) (acts []ledger.Activity, ok bool, err error) {
	if doc.Data == nil || doc.Data.Projects == nil {
		return nil, false, nil
	}
	acts = make([]ledger.Activity, 0, len(doc.Data.Projects))
	seen := make(map[string]bool, len(doc.Data.Projects))
	for i, p := range doc.Data.Projects {
		if p.ID != "" {
			if seen[p.ID] {
				return nil, true, &ledger.ValidationError{Field: fmt.Sprintf("projects[%d].id", i), Msg: fmt.Sprintf("duplicate id %q", p.ID)}
			}
			seen[p.ID] = true
		}
		a := ledger.Activity{
			ID:             p.ID,
			Name:           p.Name,
			CurrentSeconds: p.CurrentSeconds,
			Completed:      p.Completed,
			EndSeconds:     p.EndSeconds,
			EndHours:       p.EndHours,
		}
		if strings.TrimSpace(a.Name) == "" {
			return nil, true, &ledger.ValidationError{Field: fmt.Sprintf("projects[%d].name", i), Msg: "must not be empty"}
		}
		if p.Goal != nil {
			a.GoalHours = *p.Goal
		}
		if p.StartDate != "" {
			if a.StartDate, err = datekey.ParseTimestamp(p.StartDate); err != nil {
				return nil, true, &ledger.ValidationError{Field: fmt.Sprintf("projects[%d].startDate", i), Msg: err.Error()}
			}
		}
		if p.EndDate != nil && *p.EndDate != "" {
			end, err := datekey.ParseTimestamp(*p.EndDate)
			if err != nil {
				return nil, true, &ledger.ValidationError{Field: fmt.Sprintf("projects[%d].endDate", i), Msg: err.Error()}
			}
			a.EndDate = &end
		}
		if p.DailySeconds != nil {
			a.DailySeconds = make(map[datekey.Key]int64, len(*p.DailySeconds))
			for k, v := range *p.DailySeconds {
				key, err := datekey.Parse(k)
				if err != nil {
					return nil, true, &ledger.ValidationError{Field: fmt.Sprintf("projects[%d].dailySeconds", i), Msg: err.Error()}
				}
				a.DailySeconds[key] = v
			}
		}
		a.Normalize(now)
		acts = append(acts, a)
	}
	return acts, true, nil
}

// TimerConfig converts the timerConfig section. ok is false when it is
// absent.
func (doc *Document) TimerConfig() (cfg timer.Config, ok bool) {
	if doc.Data == nil || doc.Data.TimerConfig == nil {
		return timer.Config{}, false
	}
	tc := doc.Data.TimerConfig
	return timer.Config{
		StudySeconds:          tc.PomodoroTime,
		ShortBreakSeconds:     tc.ShortBreakTime,
		LongBreakSeconds:      tc.LongBreakTime,
		CyclesPerSet:          tc.CyclesPerSet,
		FreeTimer:             tc.FreeTimerMode,
		FreeTimerBreakSeconds: tc.FreeTimerBreakTime,
	}.WithDefaults(), true
}

// Target receives an import. A nil argument is a section the document did
// not carry. Implementations write all sections or none. *store.Store
// implements it.
type Target interface {
	Import(d ledger.Daily, acts []ledger.Activity, cfg *timer.Config) error
}

// Applied lists which sections an import overwrote.
type Applied struct {
	DailyStats  bool
	Projects    bool
	TimerConfig bool
}

// Sections names the applied sections in document order.
func (a Applied) Sections() []string {
	var out []string
	if a.DailyStats {
		out = append(out, "dailyStats")
	}
	if a.Projects {
		out = append(out, "projects")
	}
	if a.TimerConfig {
		out = append(out, "timerConfig")
	}
	return out
}

// Apply writes every section present in doc to t in a single call. Every
// section is converted before anything is written, so a malformed document
// changes nothing.
func Apply(doc *Document, t Target, now time.Time) (Applied, error) {
	d, hasDaily, err := doc.Daily()
	if err != nil {
		return Applied{}, err
	}
	acts, hasActs, err := doc.Activities(now)
	if err != nil {
		return Applied{}, err
	}
	cfg, hasCfg := doc.TimerConfig()

	var cfgArg *timer.Config
	if hasCfg {
		cfgArg = &cfg
	}
	if hasDaily && d == nil {
		d = ledger.Daily{}
	}
	if hasActs && acts == nil {
		acts = []ledger.Activity{}
	}
	if err := t.Import(d, acts, cfgArg); err != nil {
		return Applied{}, &ledger.StorageError{Op: "import", Err: err}
	}
	return Applied{DailyStats: hasDaily, Projects: hasActs, TimerConfig: hasCfg}, nil
}

func sortedKeys(d ledger.Daily) []datekey.Key {
	keys := make([]datekey.Key, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
