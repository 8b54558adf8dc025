package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomotrack/internal/ledger"
	"github.com/sadopc/pomotrack/internal/stats"
	"github.com/sadopc/pomotrack/internal/store"
	"github.com/sadopc/pomotrack/internal/timer"
)

type timerModel struct {
	engine *timer.Engine
	now    func() time.Time
	width  int
	height int

	prefs          store.Preferences
	confirmDiscard bool
}

func newTimerModel(e *timer.Engine, now func() time.Time) timerModel {
	return timerModel{engine: e, now: now}
}

func (t *timerModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}

	if t.confirmDiscard {
		t.confirmDiscard = false
		if !key.Matches(km, keys.Discard) {
			return t, status("Discard cancelled", false)
		}
		res := t.engine.DiscardToday()
		if res.Err != nil {
			return t, status(fmt.Sprintf("Discard failed: %v", res.Err), true)
		}
		return t, status("Today's study time discarded", false)
	}

	switch {
	case key.Matches(km, keys.Reset):
		if res := t.engine.Reset(); res.Err != nil {
			return t, status(fmt.Sprintf("Reset: %v", res.Err), true)
		}
		return t, status("Timer reset", false)
	case key.Matches(km, keys.Skip):
		t.engine.Skip()
		return t, nil
	case key.Matches(km, keys.Mode):
		if err := t.engine.ToggleMode(); err != nil {
			return t, status(err.Error(), true)
		}
		return t, status("Mode: "+t.engine.Snapshot().Mode.String(), false)
	case key.Matches(km, keys.Discard):
		t.confirmDiscard = true
		return t, status("Press D again to discard all of today's study time", true)
	}
	return t, nil
}

func status(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: isError} }
}

func (t timerModel) view(live ledger.Daily) string {
	w := t.width - 4
	st := t.engine.Snapshot()
	cfg := t.engine.Config()

	title := titleStyle.Render("Pomodoro Timer")
	if st.Mode == timer.FreeTimer {
		title = titleStyle.Render("Free Timer")
	}

	phaseStyle := phaseColor(st.Phase)
	digitStyle := timerStyle
	if st.Running {
		digitStyle = phaseStyle.Bold(true).Align(lipgloss.Center)
	}
	digits := digitStyle.Width(w - 6).Render(formatClock(st.Remaining))
	phaseLabel := phaseStyle.Bold(true).Render(strings.ToUpper(st.Phase.String()))

	var indicator string
	switch {
	case st.Running:
		indicator = successStyle.Render("●  RUNNING")
	case st.Phase == timer.Study && st.SessionSeconds == 0:
		indicator = mutedStyle.Render("Press space to begin")
	default:
		indicator = warningStyle.Render("⏸  PAUSED")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		digits,
		phaseLabel,
		indicator,
		"",
		t.renderProgress(st, cfg),
		"",
		t.renderToday(st, live),
		t.renderTracking(),
	)

	controls := mutedStyle.Render("space: start/pause  r: reset  k: skip  f: free timer  D: discard today")

	panel := panelStyle
	if st.Running {
		panel = activePanelStyle
	}
	if t.prefs.BorderColors {
		panel = panel.BorderForeground(phaseStyle.GetForeground())
	}
	return panel.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

func phaseColor(p timer.Phase) lipgloss.Style {
	switch p {
	case timer.ShortBreak:
		return successStyle
	case timer.LongBreak:
		return highlightStyle
	}
	return accentStyle
}

func (t timerModel) renderProgress(st timer.State, cfg timer.Config) string {
	if st.Mode == timer.FreeTimer {
		return mutedStyle.Render(fmt.Sprintf("Break after session: %d min", cfg.FreeTimerBreakSeconds/60))
	}
	var parts []string
	for i := 0; i < cfg.CyclesPerSet; i++ {
		switch {
		case i < st.Cycle:
			parts = append(parts, successStyle.Render("●"))
		case i == st.Cycle && st.Phase == timer.Study:
			parts = append(parts, accentStyle.Render("◐"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	counter := mutedStyle.Render(fmt.Sprintf("  %d/%d  sets: %d", st.Cycle, cfg.CyclesPerSet, st.TotalSets))
	return strings.Join(parts, " ") + counter
}

func (t timerModel) renderToday(st timer.State, live ledger.Daily) string {
	today := fmt.Sprintf("Today %s  %s",
		highlightStyle.Render(formatSeconds(int64(st.TodaySeconds))),
		mutedStyle.Render(stats.Plural(st.TodayPomodoros, "pomodoro")),
	)
	streak := stats.CurrentStreak(live, t.now())
	line := today + mutedStyle.Render("  ·  streak ") + highlightStyle.Render(stats.Plural(streak, "day"))
	if t.prefs.ShowLastStudy {
		line += mutedStyle.Render("  ·  last study " + stats.LastStudyLabel(live, t.now()))
	}
	return line
}

func (t timerModel) renderTracking() string {
	a, ok := t.engine.Activities().Active()
	if !ok {
		return mutedStyle.Render("Not tracking an activity")
	}
	label := fmt.Sprintf("Tracking %s (%s", a.Name, formatTracked(a.CurrentSeconds))
	if a.GoalHours > 0 {
		label += fmt.Sprintf(" of %dh", a.GoalHours)
	}
	return highlightStyle.Render(label + ")")
}
