package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomotrack/internal/cover"
	"github.com/sadopc/pomotrack/internal/store"
	"github.com/sadopc/pomotrack/internal/timer"
)

type settingsModel struct {
	store        *store.Store
	engine       *timer.Engine
	coverLimitMB float64
	width        int
	height       int

	prefs      store.Preferences
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	study      *string
	shortBreak *string
	longBreak  *string
	cycles     *string
	freeMode   *bool
	freeBreak  *string
	theme      *string
	borders    *bool
	lastStudy  *bool
	coverImage *string
}

func newSettingsModel(s *store.Store, e *timer.Engine, coverLimitMB float64) settingsModel {
	study, short, long, cycles, freeBreak := "", "", "", "", ""
	theme, coverImage := "", ""
	freeMode, borders, lastStudy := false, false, false
	return settingsModel{
		store:        s,
		engine:       e,
		coverLimitMB: coverLimitMB,
		prefs:        s.GetPreferences(),
		study:        &study,
		shortBreak:   &short,
		longBreak:    &long,
		cycles:       &cycles,
		freeMode:     &freeMode,
		freeBreak:    &freeBreak,
		theme:        &theme,
		borders:      &borders,
		lastStudy:    &lastStudy,
		coverImage:   &coverImage,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	cfg := s.engine.Config()
	*s.study = secsToMin(cfg.StudySeconds)
	*s.shortBreak = secsToMin(cfg.ShortBreakSeconds)
	*s.longBreak = secsToMin(cfg.LongBreakSeconds)
	*s.cycles = strconv.Itoa(cfg.CyclesPerSet)
	*s.freeMode = cfg.FreeTimer
	*s.freeBreak = secsToMin(cfg.FreeTimerBreakSeconds)
	*s.theme = s.prefs.Theme
	*s.borders = s.prefs.BorderColors
	*s.lastStudy = s.prefs.ShowLastStudy
	*s.coverImage = s.prefs.CoverImage

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Study (min)").Value(s.study).Validate(validatePositive),
			huh.NewInput().Title("Short break (min)").Value(s.shortBreak).Validate(validatePositive),
			huh.NewInput().Title("Long break (min)").Value(s.longBreak).Validate(validatePositive),
			huh.NewInput().Title("Pomodoros before long break").Value(s.cycles).Validate(validatePositive),
			huh.NewConfirm().Title("Start in free timer mode").Value(s.freeMode),
			huh.NewInput().Title("Free timer break (min)").Value(s.freeBreak).Validate(validatePositive),
		).Title("Timer"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Theme").
				Options(huh.NewOptions(themeOrder...)...).
				Value(s.theme),
			huh.NewConfirm().Title("Color borders by phase").Value(s.borders),
			huh.NewConfirm().Title("Show last study day").Value(s.lastStudy),
			huh.NewInput().Title("Cover image (path, optional)").Value(s.coverImage).Validate(s.validateCover),
		).Title("Appearance"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) validateCover(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	return cover.ValidateFile(path, s.coverLimitMB)
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		if err := s.save(); err != nil {
			return s, status(fmt.Sprintf("Settings not saved: %v", err), true)
		}
		s.prefs = s.store.GetPreferences()
		return s, status("Settings saved", false)
	}

	return s, cmd
}

// save persists the form values and applies them to the running engine.
func (s settingsModel) save() error {
	cfg := timer.Config{
		StudySeconds:          minToSecs(*s.study),
		ShortBreakSeconds:     minToSecs(*s.shortBreak),
		LongBreakSeconds:      minToSecs(*s.longBreak),
		CyclesPerSet:          atoi(*s.cycles),
		FreeTimer:             *s.freeMode,
		FreeTimerBreakSeconds: minToSecs(*s.freeBreak),
	}
	if err := s.engine.SetConfig(cfg); err != nil {
		return err
	}
	if err := s.store.SaveTimerConfig(cfg); err != nil {
		return err
	}

	prefs := store.Preferences{
		Theme:         *s.theme,
		BorderColors:  *s.borders,
		ShowLastStudy: *s.lastStudy,
		CoverImage:    strings.TrimSpace(*s.coverImage),
	}
	if err := s.store.SavePreferences(prefs); err != nil {
		return err
	}
	applyTheme(prefs.Theme)
	return nil
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	cfg := s.engine.Config()
	coverImage := s.prefs.CoverImage
	if coverImage == "" {
		coverImage = "none"
	}
	mode := "pomodoro"
	if cfg.FreeTimer {
		mode = "free timer"
	}

	settings := []struct{ label, value string }{
		{"Study", fmt.Sprintf("%d min", cfg.StudySeconds/60)},
		{"Short break", fmt.Sprintf("%d min", cfg.ShortBreakSeconds/60)},
		{"Long break", fmt.Sprintf("%d min", cfg.LongBreakSeconds/60)},
		{"Cycles per set", strconv.Itoa(cfg.CyclesPerSet)},
		{"Default mode", mode},
		{"Free timer break", fmt.Sprintf("%d min", cfg.FreeTimerBreakSeconds/60)},
		{"Theme", s.prefs.Theme},
		{"Phase borders", onOff(s.prefs.BorderColors)},
		{"Show last study", onOff(s.prefs.ShowLastStudy)},
		{"Cover image", coverImage},
	}

	rows := []string{titleStyle.Render("Settings"), ""}
	for _, st := range settings {
		label := lipgloss.NewStyle().Width(20).Render(st.label)
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(st.value)))
	}
	rows = append(rows, "", mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func validatePositive(s string) error {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err != nil || n <= 0 {
		return errors.New("enter a whole number above zero")
	}
	return nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func secsToMin(secs int) string {
	return strconv.Itoa(secs / 60)
}

func minToSecs(s string) int {
	return atoi(s) * 60
}
