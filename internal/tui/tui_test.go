package tui

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/sadopc/pomotrack/internal/datekey"
	"github.com/sadopc/pomotrack/internal/export"
	"github.com/sadopc/pomotrack/internal/ledger"
	"github.com/sadopc/pomotrack/internal/store"
	"github.com/sadopc/pomotrack/internal/timer"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestApp(t *testing.T, s *store.Store) App {
	t.Helper()
	a, err := NewApp(s, Options{
		ExportDir:    t.TempDir(),
		CoverLimitMB: 2,
		Logger:       zerolog.Nop(),
		Now:          func() time.Time { return fixedNow },
		Bell:         io.Discard,
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

func sized(t *testing.T, a App) App {
	t.Helper()
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App)
}

func press(a App, k string) App {
	var msg tea.KeyMsg
	switch k {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	m, _ := a.Update(msg)
	return m.(App)
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app := newTestApp(t, newTestStore(t))

	if app.activeView != viewTimer {
		t.Fatal("default view should be timer")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking || app.importing {
		t.Fatal("overlays should be hidden by default")
	}
	st := app.Engine().Snapshot()
	if st.Phase != timer.Study || st.Running {
		t.Fatalf("engine should start paused in study, got %+v", st)
	}
	if st.Remaining != 25*60 {
		t.Fatalf("remaining = %d, want 1500", st.Remaining)
	}
}

func TestNewAppSeedsToday(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveDay(datekey.FromTime(fixedNow), 3, 75); err != nil {
		t.Fatal(err)
	}
	app := newTestApp(t, s)

	st := app.Engine().Snapshot()
	if st.TodaySeconds != 75*60 || st.TodayPomodoros != 3 {
		t.Fatalf("today = %ds/%d, want 4500s/3", st.TodaySeconds, st.TodayPomodoros)
	}
}

func TestNewAppFailsOnUnreadableStore(t *testing.T) {
	s := newTestStore(t)
	s.Close()
	_, err := NewApp(s, Options{Logger: zerolog.Nop(), Bell: io.Discard})
	if err == nil {
		t.Fatal("expected an error when the ledgers cannot be read")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	app := sized(t, newTestApp(t, newTestStore(t)))

	views := []viewState{viewTimer, viewActivities, viewStats, viewSettings}
	for _, v := range views {
		app.activeView = v
		if output := app.View(); output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	if output := app.View(); output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app := sized(t, newTestApp(t, newTestStore(t)))

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppStatusMessage(t *testing.T) {
	app := sized(t, newTestApp(t, newTestStore(t)))
	m, _ := app.Update(statusMsg{text: "test status"})
	app = m.(App)

	if !strings.Contains(app.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppTabSwitching(t *testing.T) {
	app := sized(t, newTestApp(t, newTestStore(t)))

	app = press(app, "3")
	if app.activeView != viewStats {
		t.Fatalf("view = %d, want stats", app.activeView)
	}
	m, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = m.(App)
	if app.activeView != viewSettings {
		t.Fatalf("view = %d, want settings", app.activeView)
	}
	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = m.(App)
	if app.activeView != viewTimer {
		t.Fatalf("tab should wrap to timer, got %d", app.activeView)
	}
}

// ============================================================
// Timer view
// ============================================================

func TestAppSpaceTogglesTimer(t *testing.T) {
	app := newTestApp(t, newTestStore(t))

	app = press(app, " ")
	if !app.Engine().Snapshot().Running {
		t.Fatal("space should start the timer")
	}
	app = press(app, " ")
	if app.Engine().Snapshot().Running {
		t.Fatal("space should pause the timer")
	}
}

func TestAppTickAdvancesEngine(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	app = press(app, " ")

	m, cmd := app.Update(tickMsg(fixedNow))
	app = m.(App)
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	st := app.Engine().Snapshot()
	if st.Remaining != 25*60-1 {
		t.Fatalf("remaining = %d, want 1499", st.Remaining)
	}
	if st.TodaySeconds != 1 || st.SessionSeconds != 1 {
		t.Fatalf("today/session = %d/%d, want 1/1", st.TodaySeconds, st.SessionSeconds)
	}
}

func TestTickWhilePausedIsIgnored(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	m, _ := app.Update(tickMsg(fixedNow))
	app = m.(App)
	if app.Engine().Snapshot().Remaining != 25*60 {
		t.Fatal("paused timer should not move")
	}
}

func TestSkipCountsPomodoroAndReportsEvent(t *testing.T) {
	s := newTestStore(t)
	app := newTestApp(t, s)

	app = press(app, "k")

	st := app.Engine().Snapshot()
	if st.Phase != timer.ShortBreak {
		t.Fatalf("phase = %v, want short break", st.Phase)
	}
	if st.TodayPomodoros != 1 || st.Cycle != 1 {
		t.Fatalf("pomodoros/cycle = %d/%d, want 1/1", st.TodayPomodoros, st.Cycle)
	}
	if !strings.Contains(app.status, "short break") {
		t.Fatalf("status = %q, want skip notice", app.status)
	}

	entry, ok, err := s.GetDay(datekey.FromTime(fixedNow))
	if err != nil || !ok {
		t.Fatalf("day should be committed: ok=%v err=%v", ok, err)
	}
	if entry.Pomodoros != 1 {
		t.Fatalf("stored pomodoros = %d, want 1", entry.Pomodoros)
	}
}

func TestResetUndoesSession(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	app = press(app, " ")
	for i := 0; i < 5; i++ {
		m, _ := app.Update(tickMsg(fixedNow))
		app = m.(App)
	}

	app = press(app, "r")
	st := app.Engine().Snapshot()
	if st.Running {
		t.Fatal("reset should pause")
	}
	if st.TodaySeconds != 0 || st.Remaining != 25*60 {
		t.Fatalf("after reset today=%d remaining=%d", st.TodaySeconds, st.Remaining)
	}
}

func TestModeToggle(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	app = press(app, "f")
	st := app.Engine().Snapshot()
	if st.Mode != timer.FreeTimer || st.Remaining != 0 {
		t.Fatalf("mode = %v remaining = %d, want free timer at 0", st.Mode, st.Remaining)
	}
}

func TestDiscardNeedsConfirmation(t *testing.T) {
	s := newTestStore(t)
	app := newTestApp(t, s)
	app = press(app, "k") // commits one pomodoro
	day := datekey.FromTime(fixedNow)

	app = press(app, "D")
	app = press(app, "x")
	if _, ok, _ := s.GetDay(day); !ok {
		t.Fatal("discard should be cancelled by another key")
	}

	app = press(app, "D")
	app = press(app, "D")
	if _, ok, _ := s.GetDay(day); ok {
		t.Fatal("day should be deleted after confirmation")
	}
	st := app.Engine().Snapshot()
	if st.TodayPomodoros != 0 || st.Cycle != 0 {
		t.Fatalf("counters not cleared: %+v", st)
	}
}

// ============================================================
// Activities view
// ============================================================

func TestActivitiesTrackAndComplete(t *testing.T) {
	s := newTestStore(t)
	app := sized(t, newTestApp(t, s))
	a, res := app.Engine().AddActivity("Thesis", 10)
	if res.Err != nil {
		t.Fatal(res.Err)
	}

	app = press(app, "2")
	app = press(app, "enter")
	if app.Engine().Activities().ActiveID() != a.ID {
		t.Fatal("enter should start tracking the selected activity")
	}
	if !strings.Contains(app.View(), "Thesis") {
		t.Fatal("activities view should list the activity")
	}

	app = press(app, "c")
	got, _ := app.Engine().Activities().Get(a.ID)
	if !got.Completed {
		t.Fatal("c should complete the activity")
	}
	if len(app.Engine().Activities().Open()) != 0 {
		t.Fatal("completed activity should leave the open list")
	}

	stored, err := s.LoadActivities()
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || !stored[0].Completed {
		t.Fatalf("stored = %+v, want one completed activity", stored)
	}
}

func TestActivitiesDeleteNeedsConfirmation(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	app.Engine().AddActivity("A", 0)
	app.Engine().AddActivity("B", 0)
	app = press(app, "2")

	app = press(app, "d")
	app = press(app, "j")
	if app.Engine().Activities().Len() != 2 {
		t.Fatal("delete should be cancelled")
	}

	app = press(app, "d")
	app = press(app, "d")
	if app.Engine().Activities().Len() != 1 {
		t.Fatalf("len = %d, want 1", app.Engine().Activities().Len())
	}
}

func TestParseGoal(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{" 12 ", 12, false},
		{"0", 0, false},
		{"-1", 0, true},
		{"1.5", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := parseGoal(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseGoal(%q) = %d, %v", tt.in, got, err)
		}
	}
	if validateName("   ") == nil {
		t.Error("blank name should be rejected")
	}
}

// ============================================================
// Stats view
// ============================================================

func TestStatsRebuildOnSwitch(t *testing.T) {
	s := newTestStore(t)
	s.SaveDay("2024-03-14", 1, 30)
	s.SaveDay("2024-03-15", 2, 50)
	app := sized(t, newTestApp(t, s))

	app = press(app, "3")
	if app.stats.streak != 2 {
		t.Fatalf("streak = %d, want 2", app.stats.streak)
	}
	if app.stats.last != "Today" {
		t.Fatalf("last study = %q, want Today", app.stats.last)
	}
	if app.stats.heatmap.Year != 2024 {
		t.Fatalf("heatmap year = %d", app.stats.heatmap.Year)
	}

	for _, k := range []string{"l", "l", "p", "o", "y"} {
		app = press(app, k)
		if app.View() == "" {
			t.Fatalf("stats view empty after %q", k)
		}
	}
	if app.stats.section != sectionProjects {
		t.Fatalf("section = %d, want projects", app.stats.section)
	}
	if app.stats.period != 1 || app.stats.donePeriod != 1 {
		t.Fatalf("period/donePeriod = %d/%d", app.stats.period, app.stats.donePeriod)
	}
}

func TestStatsIncludeLiveSession(t *testing.T) {
	app := sized(t, newTestApp(t, newTestStore(t)))
	app = press(app, " ")
	for i := 0; i < 60; i++ {
		m, _ := app.Update(tickMsg(fixedNow))
		app = m.(App)
	}
	app = press(app, "3")
	if app.stats.streak != 1 {
		t.Fatalf("uncommitted minute should count toward the streak, got %d", app.stats.streak)
	}
}

func TestNextYear(t *testing.T) {
	tests := []struct {
		years   []int
		current int
		want    int
	}{
		{nil, 2024, 2024},
		{[]int{2023, 2024}, 2023, 2024},
		{[]int{2023, 2024}, 2024, 2023},
		{[]int{2022, 2023}, 2025, 2023},
	}
	for _, tt := range tests {
		if got := nextYear(tt.years, tt.current); got != tt.want {
			t.Errorf("nextYear(%v, %d) = %d, want %d", tt.years, tt.current, got, tt.want)
		}
	}
}

// ============================================================
// Settings view
// ============================================================

func TestSettingsSave(t *testing.T) {
	s := newTestStore(t)
	app := newTestApp(t, s)

	sm, _ := app.settings.showForm()
	*sm.study = "50"
	*sm.cycles = "2"
	*sm.theme = "forest"
	*sm.borders = false
	if err := sm.save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	cfg := s.GetTimerConfig()
	if cfg.StudySeconds != 3000 || cfg.CyclesPerSet != 2 {
		t.Fatalf("stored cfg = %+v", cfg)
	}
	if app.Engine().Config().StudySeconds != 3000 {
		t.Fatal("engine should pick up the new config")
	}
	if app.Engine().Snapshot().Remaining != 3000 {
		t.Fatal("current phase should rewind to the new length")
	}
	prefs := s.GetPreferences()
	if prefs.Theme != "forest" || prefs.BorderColors {
		t.Fatalf("prefs = %+v", prefs)
	}
	applyTheme("light")
}

func TestSettingsRejectsBadValues(t *testing.T) {
	s := newTestStore(t)
	app := newTestApp(t, s)

	sm, _ := app.settings.showForm()
	*sm.shortBreak = "0"
	if err := sm.save(); err == nil {
		t.Fatal("zero break should be rejected")
	}
	if s.GetTimerConfig().ShortBreakSeconds != 300 {
		t.Fatal("invalid config should not be stored")
	}
}

func TestSettingsValidateCover(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	dir := t.TempDir()

	txt := filepath.Join(dir, "notes.txt")
	os.WriteFile(txt, []byte("plain text"), 0o644)
	if app.settings.validateCover(txt) == nil {
		t.Fatal("text file should be rejected")
	}

	png := filepath.Join(dir, "cover.png")
	os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n0000"), 0o644)
	if err := app.settings.validateCover(png); err != nil {
		t.Fatalf("png should be accepted: %v", err)
	}
	if app.settings.validateCover("") != nil {
		t.Fatal("empty path clears the cover")
	}
}

func TestSettingsHelpers(t *testing.T) {
	if secsToMin(1500) != "25" {
		t.Fatal("secsToMin")
	}
	if minToSecs(" 5 ") != 300 {
		t.Fatal("minToSecs")
	}
	if minToSecs("x") != 0 {
		t.Fatal("minToSecs should yield 0 for garbage")
	}
	for _, bad := range []string{"", "0", "-3", "2.5"} {
		if validatePositive(bad) == nil {
			t.Errorf("validatePositive(%q) should fail", bad)
		}
	}
	if validatePositive("10") != nil {
		t.Error("validatePositive(10) should pass")
	}
}

// ============================================================
// Export / import
// ============================================================

func TestExportAll(t *testing.T) {
	s := newTestStore(t)
	s.SaveDay("2024-03-14", 2, 50)
	app := newTestApp(t, s)
	app.Engine().AddActivity("Thesis", 5)

	msg := app.doExport(len(exportFormats) - 1)()
	done, ok := msg.(exportDoneMsg)
	if !ok {
		t.Fatalf("expected exportDoneMsg, got %#v", msg)
	}
	if len(done.paths) != 3 {
		t.Fatalf("paths = %v, want 3 files", done.paths)
	}
	for _, p := range done.paths {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("missing export %s: %v", p, err)
		}
		if !strings.Contains(filepath.Base(p), "2024-03-15") {
			t.Fatalf("file %s should carry the date", p)
		}
	}

	doc, err := export.ReadFile(done.paths[0])
	if err != nil {
		t.Fatalf("exported JSON should parse: %v", err)
	}
	if len(doc.Data.Projects) != 1 || doc.Data.DailyStats["2024-03-14"].Minutes != 50 {
		t.Fatalf("exported data = %+v", doc.Data)
	}
}

func TestExportPickerNavigation(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	app = press(app, "e")
	if !app.exportPicking {
		t.Fatal("e should open the export picker")
	}
	app = press(app, "j")
	app = press(app, "j")
	if app.exportCursor != 2 {
		t.Fatalf("cursor = %d, want 2", app.exportCursor)
	}
	app = press(app, "esc")
	if app.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

func TestImportPartialKeepsActivities(t *testing.T) {
	s := newTestStore(t)
	app := newTestApp(t, s)
	app.Engine().AddActivity("Keep me", 0)

	path := filepath.Join(t.TempDir(), "in.json")
	raw := `{"version":"1.0","data":{
		"dailyStats":{"2024-03-15":{"minutes":90,"pomos":3}},
		"timerConfig":{"pomodoroTime":3000,"shortBreakTime":600,"longBreakTime":1200,"cyclesPerSet":3,"freeTimerMode":false,"freeTimerBreakTime":300}
	}}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	msg := app.doImport(path)()
	if _, ok := msg.(importDoneMsg); !ok {
		t.Fatalf("expected importDoneMsg, got %#v", msg)
	}
	m, _ := app.Update(msg)
	app = m.(App)

	st := app.Engine().Snapshot()
	if st.TodaySeconds != 90*60 || st.TodayPomodoros != 3 {
		t.Fatalf("today = %d/%d, want 5400/3", st.TodaySeconds, st.TodayPomodoros)
	}
	if app.Engine().Config().StudySeconds != 3000 {
		t.Fatal("imported timer config should be applied")
	}
	acts := app.Engine().Activities().List()
	if len(acts) != 1 || acts[0].Name != "Keep me" {
		t.Fatalf("activities changed: %+v", acts)
	}
	if !strings.Contains(app.status, "dailyStats") || strings.Contains(app.status, "projects") {
		t.Fatalf("status = %q", app.status)
	}
}

func TestImportRejectsBadFile(t *testing.T) {
	app := newTestApp(t, newTestStore(t))
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte(`{"data":{}}`), 0o644)

	msg := app.doImport(path)()
	sm, ok := msg.(statusMsg)
	if !ok || !sm.isError {
		t.Fatalf("expected error status, got %#v", msg)
	}
}

func TestImportReloadFailureKeepsEngineData(t *testing.T) {
	s := newTestStore(t)
	app := newTestApp(t, s)
	if _, res := app.Engine().AddActivity("Thesis", 10); !res.Success {
		t.Fatal(res.Err)
	}
	app.Engine().ReloadToday(ledger.DayEntry{Minutes: 30, Pomodoros: 1})
	s.Close()

	m, _ := app.afterImport(importDoneMsg{applied: export.Applied{DailyStats: true, Projects: true}})
	app = m.(App)

	if app.Engine().Activities().Len() != 1 {
		t.Fatalf("activities = %d, want 1 kept", app.Engine().Activities().Len())
	}
	if got := app.Engine().Snapshot().TodaySeconds; got != 30*60 {
		t.Fatalf("today seconds = %d, want 1800 kept", got)
	}
	if !app.statusErr {
		t.Fatalf("expected an error status, got %q", app.status)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got := expandHome("~/x.json"); got != filepath.Join(home, "x.json") {
		t.Fatalf("expandHome = %q", got)
	}
	if got := expandHome("/tmp/x.json"); got != "/tmp/x.json" {
		t.Fatalf("absolute path changed: %q", got)
	}
}

// ============================================================
// Helper functions
// ============================================================

func TestFormatClock(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{1500, "25:00"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{-4, "00:00"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.secs); got != tt.want {
			t.Errorf("formatClock(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestFormatTracked(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "0 min"},
		{59 * 60, "59 min"},
		{3600, "1.00h"},
		{5400, "1.50h"},
	}
	for _, tt := range tests {
		if got := formatTracked(tt.secs); got != tt.want {
			t.Errorf("formatTracked(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{time.Minute, "00:01:00"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
	if formatSeconds(90) != "00:01:30" {
		t.Fatal("formatSeconds")
	}
	if formatHours(90) != "1.5h" {
		t.Fatal("formatHours")
	}
}

func TestTruncate(t *testing.T) {
	if truncate("short", 10) != "short" {
		t.Fatal("short strings are untouched")
	}
	if got := truncate("a very long activity name", 6); got != "a ver…" {
		t.Fatalf("truncate = %q", got)
	}
}

func TestEventText(t *testing.T) {
	kinds := []timer.EventKind{timer.StudyEnded, timer.BreakEnded, timer.LongBreakEnded, timer.Skipped}
	for _, k := range kinds {
		if eventText(timer.Event{Kind: k, Next: timer.Study}) == "" {
			t.Fatalf("no text for %v", k)
		}
	}
}

func TestEventQueueDrain(t *testing.T) {
	q := &eventQueue{}
	q.push(timer.Event{Kind: timer.StudyEnded})
	q.push(timer.Event{Kind: timer.BreakEnded})
	if got := q.drain(); len(got) != 2 {
		t.Fatalf("drained %d, want 2", len(got))
	}
	if got := q.drain(); len(got) != 0 {
		t.Fatal("queue should be empty after drain")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"timer", func() string { return timerStyle.Render("test") }},
		{"card", func() string { return cardStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"heat0", func() string { return heatStyle(0).Render("test") }},
		{"heatClamp", func() string { return heatStyle(9).Render("test") }},
	}

	for _, s := range styles {
		if s.fn() == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}

func TestApplyThemeFallback(t *testing.T) {
	applyTheme("no-such-theme")
	if colorPrimary != themes["light"] {
		t.Fatalf("primary = %v, want light theme", colorPrimary)
	}
	applyTheme("ocean")
	if colorPrimary != themes["ocean"] {
		t.Fatal("ocean theme not applied")
	}
	applyTheme("light")
}
