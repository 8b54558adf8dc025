package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomotrack/internal/datekey"
	"github.com/sadopc/pomotrack/internal/export"
)

var exportFormats = []string{"JSON backup", "CSV daily log", "CSV activities", "All of the above"}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  to "+a.opts.ExportDir))
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport snapshots the live ledgers now and writes them in the
// background.
func (a App) doExport(format int) tea.Cmd {
	now := a.opts.Now()
	daily := a.liveDaily()
	acts := a.engine.Activities().List()
	doc := export.Build(daily, acts, a.engine.Config(), now)
	dir := a.opts.ExportDir
	stamp := datekey.FromTime(now).String()
	all := format == len(exportFormats)-1

	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		var paths []string
		if all || format == 0 {
			path := filepath.Join(dir, fmt.Sprintf("pomotrack-backup-%s.json", stamp))
			if err := export.ToJSON(doc, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
			paths = append(paths, path)
		}
		if all || format == 1 {
			path := filepath.Join(dir, fmt.Sprintf("pomotrack-daily-%s.csv", stamp))
			if err := export.ToCSV(daily, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
			paths = append(paths, path)
		}
		if all || format == 2 {
			path := filepath.Join(dir, fmt.Sprintf("pomotrack-activities-%s.csv", stamp))
			if err := export.ActivitiesToCSV(acts, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
			paths = append(paths, path)
		}
		return exportDoneMsg{paths: paths}
	}
}

func joinPaths(paths []string) string {
	if len(paths) == 1 {
		return paths[0]
	}
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return filepath.Dir(paths[0]) + " (" + strings.Join(names, ", ") + ")"
}

func (a App) showImportForm() (tea.Model, tea.Cmd) {
	*a.importPath = ""
	a.importForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Backup file to import").
				Description("Sections present in the file replace the stored ones.").
				Value(a.importPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("path is required")
					}
					return nil
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)
	a.importing = true
	return a, a.importForm.Init()
}

func (a App) renderImportForm() string {
	title := titleStyle.Render("Import")
	return activePanelStyle.Width(a.width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", a.importForm.View()),
	)
}

func (a App) updateImportForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		a.importing = false
		a.importForm = nil
		return a, nil
	}

	form, cmd := a.importForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.importForm = f
	}

	if a.importForm.State == huh.StateCompleted {
		a.importing = false
		a.importForm = nil
		return a, a.doImport(expandHome(strings.TrimSpace(*a.importPath)))
	}
	return a, cmd
}

func (a App) doImport(path string) tea.Cmd {
	s := a.store
	now := a.opts.Now()
	return func() tea.Msg {
		doc, err := export.ReadFile(path)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Import error: %v", err), isError: true}
		}
		applied, err := export.Apply(doc, s, now)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Import error: %v", err), isError: true}
		}
		return importDoneMsg{applied: applied}
	}
}

// afterImport reloads whatever the import replaced into the engine. A
// section that cannot be read back is left as the engine has it.
func (a App) afterImport(msg importDoneMsg) (tea.Model, tea.Cmd) {
	var reloadErr error
	if msg.applied.Projects {
		acts, err := a.store.LoadActivities()
		if err != nil {
			a.log.Error().Err(err).Msg("reload activities after import")
			reloadErr = err
		} else {
			a.engine.ReplaceActivities(acts)
		}
	}
	if msg.applied.DailyStats {
		entry, _, err := a.store.GetDay(a.engine.Snapshot().Day)
		if err != nil {
			a.log.Error().Err(err).Msg("reload today after import")
			reloadErr = err
		} else {
			a.engine.ReloadToday(entry)
		}
	}
	if msg.applied.TimerConfig {
		if err := a.engine.SetConfig(a.store.GetTimerConfig()); err != nil {
			a.log.Error().Err(err).Msg("apply imported timer config")
		}
	}

	sections := msg.applied.Sections()
	a.status = "Imported " + strings.Join(sections, ", ")
	if len(sections) == 0 {
		a.status = "Import contained no data"
	}
	a.statusErr = false
	if reloadErr != nil {
		a.status = fmt.Sprintf("Imported, but reload failed: %v", reloadErr)
		a.statusErr = true
	}
	a.log.Info().Strs("sections", sections).Msg("import applied")
	return a, a.loadDaily()
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
