package tui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/sadopc/pomotrack/internal/datekey"
	"github.com/sadopc/pomotrack/internal/ledger"
	"github.com/sadopc/pomotrack/internal/store"
	"github.com/sadopc/pomotrack/internal/timer"
)

// Options configures the app beyond its store.
type Options struct {
	ExportDir    string
	CoverLimitMB float64
	Logger       zerolog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
	// Bell receives a BEL when a phase ends. Defaults to os.Stderr.
	Bell io.Writer
}

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	engine *timer.Engine
	events *eventQueue
	opts   Options
	log    zerolog.Logger
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	importing     bool
	importForm    *huh.Form
	importPath    *string

	// daily is the persisted ledger; liveDaily overlays the engine's
	// uncommitted time.
	daily ledger.Daily

	timer      timerModel
	activities activitiesModel
	stats      statsModel
	settings   settingsModel

	help      help.Model
	status    string
	statusErr bool
}

// NewApp loads the ledgers and timer settings from s and builds the engine.
// A failed read is returned rather than started from empty lists, since the
// engine's first commit would overwrite the stored ones.
func NewApp(s *store.Store, opts Options) (App, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Bell == nil {
		opts.Bell = os.Stderr
	}
	log := opts.Logger.With().Str("component", "tui").Logger()

	daily, err := s.LoadDaily()
	if err != nil {
		return App{}, err
	}
	acts, err := s.LoadActivities()
	if err != nil {
		return App{}, err
	}

	q := &eventQueue{}
	eng := timer.New(
		s.GetTimerConfig(),
		daily[datekey.FromTime(opts.Now())],
		ledger.NewActivities(acts),
		s,
		timer.WithClock(opts.Now),
		timer.WithLogger(opts.Logger),
		timer.WithEventHandler(q.push),
	)

	prefs := s.GetPreferences()
	applyTheme(prefs.Theme)

	h := help.New()
	h.ShowAll = false
	path := ""

	a := App{
		store:      s,
		engine:     eng,
		events:     q,
		opts:       opts,
		log:        log,
		activeView: viewTimer,
		daily:      daily,
		timer:      newTimerModel(eng, opts.Now),
		activities: newActivitiesModel(eng, opts.Now),
		stats:      newStatsModel(opts.Now),
		settings:   newSettingsModel(s, eng, opts.CoverLimitMB),
		importPath: &path,
		help:       h,
	}
	a.timer.prefs = prefs
	return a, nil
}

// Engine exposes the timer engine, mainly for tests.
func (a App) Engine() *timer.Engine { return a.engine }

func (a App) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) loadDaily() tea.Cmd {
	s := a.store
	return func() tea.Msg {
		d, err := s.LoadDaily()
		return dailyDataMsg{daily: d, err: err}
	}
}

func (a App) liveDaily() ledger.Daily {
	return a.engine.LiveToday(a.daily)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.timer.setSize(a.width, contentHeight)
		a.activities.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		a.stats = a.stats.rebuild(a.liveDaily(), a.engine.Activities().List())
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}
		if a.importing {
			return a.updateImportForm(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, a.quit()
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Toggle):
			a.engine.Toggle()
			return a, nil
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Import):
			return a.showImportForm()
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewTimer)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewActivities)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewStats)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchView((a.activeView + 1) % viewState(len(viewNames)))
		}

	case tickMsg:
		a.engine.Tick()
		cmd := a.afterEngine()
		return a, tea.Batch(tickCmd(), cmd)

	case dailyDataMsg:
		if msg.err != nil {
			a.log.Error().Err(msg.err).Msg("reload daily stats")
			return a, nil
		}
		a.daily = msg.daily
		a.stats = a.stats.rebuild(a.liveDaily(), a.engine.Activities().List())
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.exportPicking = false
		a.status = fmt.Sprintf("Exported to %s", joinPaths(msg.paths))
		a.statusErr = false
		return a, nil

	case importDoneMsg:
		return a.afterImport(msg)
	}

	next, cmd := a.updateActiveView(msg)
	app := next.(App)
	after := app.afterEngine()
	return app, tea.Batch(cmd, after)
}

// afterEngine turns queued engine events into a status line and a bell, and
// reports a failed write.
func (a *App) afterEngine() tea.Cmd {
	var cmds []tea.Cmd
	events := a.events.drain()
	if len(events) > 0 {
		ev := events[len(events)-1]
		a.status = eventText(ev)
		a.statusErr = false
		if ev.Kind != timer.Skipped {
			cmds = append(cmds, a.ringBell())
		}
		cmds = append(cmds, a.loadDaily())
	}
	if res := a.engine.LastResult(); res.Err != nil {
		a.status = fmt.Sprintf("Save failed: %v", res.Err)
		a.statusErr = true
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (a App) ringBell() tea.Cmd {
	w := a.opts.Bell
	return func() tea.Msg {
		fmt.Fprint(w, "\a")
		return nil
	}
}

func (a App) quit() tea.Cmd {
	if res := a.engine.Commit(); res.Err != nil {
		a.log.Error().Err(res.Err).Msg("final commit")
	}
	return tea.Quit
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	if v == viewStats {
		a.stats = a.stats.rebuild(a.liveDaily(), a.engine.Activities().List())
		return a, a.loadDaily()
	}
	return a, nil
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTimer:
		a.timer, cmd = a.timer.update(msg)
	case viewActivities:
		a.activities, cmd = a.activities.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
		a.timer.prefs = a.settings.prefs
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewActivities:
		return a.activities.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimer:
		content = a.timer.view(a.liveDaily())
	case viewActivities:
		content = a.activities.view()
	case viewStats:
		content = a.stats.view()
	case viewSettings:
		content = a.settings.view()
	}

	contentHeight := max(a.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)

	switch {
	case a.exportPicking:
		content = a.renderExportPicker()
	case a.importing && a.importForm != nil:
		content = a.renderImportForm()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("pomotrack")
	gap := max(a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	// Timer indicator when the timer view is not showing
	timerInfo := ""
	if st := a.engine.Snapshot(); a.activeView != viewTimer {
		clock := formatClock(st.Remaining) + " " + st.Phase.String()
		if st.Running {
			timerInfo = successStyle.Render(" ● " + clock)
		} else if st.SessionSeconds > 0 || st.Phase != timer.Study {
			timerInfo = warningStyle.Render(" ⏸ " + clock)
		}
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}
