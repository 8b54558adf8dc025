package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomotrack/internal/datekey"
	"github.com/sadopc/pomotrack/internal/ledger"
	"github.com/sadopc/pomotrack/internal/timer"
)

type activitiesModel struct {
	engine *timer.Engine
	now    func() time.Time
	width  int
	height int

	cursor        int
	showCompleted bool
	pendingDelete string

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName *string
	formGoal *string
}

func newActivitiesModel(e *timer.Engine, now func() time.Time) activitiesModel {
	name, goal := "", ""
	return activitiesModel{
		engine:   e,
		now:      now,
		formName: &name,
		formGoal: &goal,
	}
}

func (m *activitiesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m activitiesModel) items() []ledger.Activity {
	if m.showCompleted {
		return m.engine.Activities().Completed()
	}
	return m.engine.Activities().Open()
}

func (m activitiesModel) update(msg tea.Msg) (activitiesModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	items := m.items()
	if m.cursor >= len(items) {
		m.cursor = max(0, len(items)-1)
	}

	if m.pendingDelete != "" {
		id := m.pendingDelete
		m.pendingDelete = ""
		if !key.Matches(km, keys.Delete) {
			return m, status("Delete cancelled", false)
		}
		if res := m.engine.RemoveActivity(id); res.Err != nil {
			return m, status(fmt.Sprintf("Delete failed: %v", res.Err), true)
		}
		m.cursor = max(0, m.cursor-1)
		return m, status("Activity deleted", false)
	}

	switch {
	case key.Matches(km, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case key.Matches(km, keys.Left), key.Matches(km, keys.Right):
		m.showCompleted = !m.showCompleted
		m.cursor = 0
	case key.Matches(km, keys.New):
		return m.showNewForm()
	case key.Matches(km, keys.Enter):
		if len(items) == 0 || m.showCompleted {
			return m, nil
		}
		a := items[m.cursor]
		if err := m.engine.ToggleActivity(a.ID); err != nil {
			return m, status(err.Error(), true)
		}
		if m.engine.Activities().ActiveID() == a.ID {
			return m, status("Tracking "+a.Name, false)
		}
		return m, status("Stopped tracking "+a.Name, false)
	case key.Matches(km, keys.Complete):
		if len(items) == 0 || m.showCompleted {
			return m, nil
		}
		a := items[m.cursor]
		if res := m.engine.CompleteActivity(a.ID); res.Err != nil {
			return m, status(fmt.Sprintf("Complete failed: %v", res.Err), true)
		}
		return m, status(fmt.Sprintf("%s completed in %s", a.Name, formatTracked(a.CurrentSeconds)), false)
	case key.Matches(km, keys.Delete):
		if len(items) == 0 {
			return m, nil
		}
		m.pendingDelete = items[m.cursor].ID
		return m, status(fmt.Sprintf("Press d again to delete %q", items[m.cursor].Name), true)
	}
	return m, nil
}

func (m activitiesModel) showNewForm() (activitiesModel, tea.Cmd) {
	*m.formName = ""
	*m.formGoal = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Activity name").Value(m.formName).Validate(validateName),
			huh.NewInput().Title("Goal (hours, optional)").Value(m.formGoal).Validate(validateGoal),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name is required")
	}
	return nil
}

func validateGoal(s string) error {
	_, err := parseGoal(s)
	return err
}

func parseGoal(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("goal must be a whole number of hours")
	}
	return n, nil
}

func (m activitiesModel) updateForm(msg tea.Msg) (activitiesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.form = nil
		goal, _ := parseGoal(*m.formGoal)
		a, res := m.engine.AddActivity(*m.formName, goal)
		if res.Err != nil {
			return m, status(fmt.Sprintf("Add failed: %v", res.Err), true)
		}
		m.showCompleted = false
		m.cursor = len(m.engine.Activities().Open()) - 1
		return m, status("Added "+a.Name, false)
	}

	return m, cmd
}

func (m activitiesModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Activity")
		return panelStyle.Width(m.width - 4).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}
	if m.showCompleted {
		return m.renderCompleted()
	}
	return m.renderOpen()
}

func (m activitiesModel) renderOpen() string {
	w := m.width - 4
	title := titleStyle.Render("Activities") + mutedStyle.Render("  open · ←/→ completed")
	items := m.items()

	if len(items) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No activities yet. Press n to create one."),
		))
	}

	activeID := m.engine.Activities().ActiveID()
	today := datekey.FromTime(m.now())

	var rows []string
	rows = append(rows, title, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("    %-28s %10s %10s %8s", "Name", "Tracked", "Today", "Goal")))

	for i, a := range items {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		marker := " "
		if a.ID == activeID {
			marker = successStyle.Render("▶")
		}
		goal := "-"
		if a.GoalHours > 0 {
			pct := float64(a.CurrentSeconds) / float64(a.GoalHours*3600) * 100
			goal = fmt.Sprintf("%dh %3.0f%%", a.GoalHours, pct)
		}
		row := style.Render(cursor) + marker + style.Render(fmt.Sprintf(" %-28s %10s %10s %8s",
			truncate(a.Name, 28),
			formatTracked(a.CurrentSeconds),
			formatTracked(a.DailySeconds[today]),
			goal,
		))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  enter: track/untrack  c: complete  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m activitiesModel) renderCompleted() string {
	w := m.width - 4
	title := titleStyle.Render("Completed") + mutedStyle.Render("  ←/→ open")
	items := m.items()

	if len(items) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Nothing completed yet."),
		))
	}

	var rows []string
	rows = append(rows, title, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-28s %10s %8s %12s", "Name", "Hours", "Goal", "Finished")))
	for i, a := range items {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		goal := "-"
		if a.GoalHours > 0 {
			goal = fmt.Sprintf("%dh", a.GoalHours)
		}
		finished := ""
		if a.EndDate != nil {
			finished = datekey.FormatDDMM(*a.EndDate)
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-28s %9.2fh %8s %12s",
			cursor, truncate(a.Name, 28), a.EndHours, goal, finished)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
