package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomotrack/internal/datekey"
	"github.com/sadopc/pomotrack/internal/ledger"
	"github.com/sadopc/pomotrack/internal/stats"
)

type statsSection int

const (
	sectionOverview statsSection = iota
	sectionHeatmap
	sectionProjects
)

var sectionNames = []string{"Overview", "Heatmap", "Projects"}

var distPeriods = []struct {
	key, label string
}{
	{datekey.PeriodToday, "Today"},
	{datekey.PeriodThisMonth, "This month"},
	{datekey.PeriodLastMonth, "Last month"},
	{datekey.PeriodPast30, "Past 30 days"},
}

var completedPeriods = []struct {
	key, label string
}{
	{stats.CompletedThisMonth, "This month"},
	{stats.CompletedPastMonth, "Past month"},
	{stats.CompletedSixMonths, "6 months"},
	{stats.CompletedEntireYear, "This year"},
}

const weeksInTrend = stats.TrendDays / 7

type statsModel struct {
	now    func() time.Time
	width  int
	height int

	section    statsSection
	year       int
	period     int
	donePeriod int

	daily  ledger.Daily
	acts   []ledger.Activity
	years  []int
	streak int
	last   string

	records   stats.Records
	summary   stats.MonthSummary
	heatmap   stats.Heatmap
	dist      stats.Distribution
	completed []ledger.Activity

	chart barchart.Model
}

func newStatsModel(now func() time.Time) statsModel {
	return statsModel{
		now:   now,
		year:  now().Year(),
		chart: barchart.New(60, 12),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

// rebuild recomputes every figure from a live ledger and activity list.
func (s statsModel) rebuild(d ledger.Daily, acts []ledger.Activity) statsModel {
	now := s.now()
	s.daily = d
	s.acts = acts

	s.years = stats.AvailableYears(d)
	if n := len(s.years); n == 0 || s.years[n-1] != now.Year() {
		s.years = append(s.years, now.Year())
	}

	s.streak = stats.CurrentStreak(d, now)
	s.last = stats.LastStudyLabel(d, now)
	s.records = stats.PersonalRecords(d, now)
	s.summary = stats.SummarizeMonth(d, acts, now)
	s.heatmap = stats.BuildHeatmap(d, s.year, now)
	s.dist = stats.ProjectDistribution(acts, d, distPeriods[s.period].key, now)
	s.completed = stats.FilterCompletedProjects(acts, completedPeriods[s.donePeriod].key, now)
	s.buildChart(stats.DailySeries(d, now, stats.TrendDays))
	return s
}

func (s statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(km, keys.Left):
		s.section = (s.section + statsSection(len(sectionNames)) - 1) % statsSection(len(sectionNames))
	case key.Matches(km, keys.Right):
		s.section = (s.section + 1) % statsSection(len(sectionNames))
	case key.Matches(km, keys.Year):
		s.year = nextYear(s.years, s.year)
		s.heatmap = stats.BuildHeatmap(s.daily, s.year, s.now())
	case key.Matches(km, keys.Period):
		s.period = (s.period + 1) % len(distPeriods)
		s.dist = stats.ProjectDistribution(s.acts, s.daily, distPeriods[s.period].key, s.now())
	case key.Matches(km, keys.Finished):
		s.donePeriod = (s.donePeriod + 1) % len(completedPeriods)
		s.completed = stats.FilterCompletedProjects(s.acts, completedPeriods[s.donePeriod].key, s.now())
	}
	return s, nil
}

// nextYear cycles through years, wrapping to the first.
func nextYear(years []int, current int) int {
	if len(years) == 0 {
		return current
	}
	for i, y := range years {
		if y == current {
			return years[(i+1)%len(years)]
		}
	}
	return years[len(years)-1]
}

// buildChart groups the trend series into week bars.
func (s *statsModel) buildChart(series []stats.DayPoint) {
	chartWidth := max(s.width-8, 20)
	chartHeight := 10
	if s.height > 36 {
		chartHeight = 14
	}
	s.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for i := 0; i+7 <= len(series); i += 7 {
		week := series[i : i+7]
		minutes := 0
		for _, p := range week {
			minutes += p.Minutes
		}
		bars = append(bars, barchart.BarData{
			Label: datekey.FormatDDMM(week[0].Day.Time()),
			Values: []barchart.BarValue{{
				Name:  "hours",
				Value: float64(minutes) / 60,
				Style: lipgloss.NewStyle().Foreground(colorPrimary),
			}},
		})
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statsModel) view() string {
	w := s.width - 4

	var tabs []string
	for i, name := range sectionNames {
		if statsSection(i) == s.section {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		append([]string{titleStyle.Render("Stats"), "  "}, tabs...)...,
	)

	var body string
	switch s.section {
	case sectionHeatmap:
		body = s.renderHeatmap()
	case sectionProjects:
		body = lipgloss.JoinVertical(lipgloss.Left, s.renderDistribution(w), "", s.renderCompleted())
	default:
		body = s.renderOverview()
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", body, "", mutedStyle.Render("  ←/→: section  y: year  p: period  o: completed period"),
		),
	)
}

func (s statsModel) renderOverview() string {
	streak := fmt.Sprintf("Current streak %s  ·  longest %s  ·  last study %s",
		highlightStyle.Render(stats.Plural(s.streak, "day")),
		highlightStyle.Render(stats.Plural(s.records.LongestStreak, "day")),
		highlightStyle.Render(s.last),
	)

	best := s.summary.BestWeekday.Name
	if best != stats.NotAvailable {
		best = fmt.Sprintf("%s (%.0f min)", best, s.summary.BestWeekday.AvgMinutes)
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("This month", fmt.Sprintf("%.1fh", s.summary.Hours)),
		card("Best weekday", best),
		card("Completed", stats.Plural(s.summary.CompletedProjects, "project")),
	)

	bestDay := stats.NotAvailable
	if s.records.HasBestDay {
		bestDay = fmt.Sprintf("%s  %s", s.records.BestDay.Day, formatHours(s.records.BestDay.Minutes))
	}
	bestMonth := s.records.BestMonth.Label
	if bestMonth != stats.NotAvailable {
		bestMonth = fmt.Sprintf("%s  %.1fh", bestMonth, s.records.BestMonth.Hours)
	}
	records := strings.Join([]string{
		titleStyle.Render("Personal records"),
		fmt.Sprintf("  %-16s %s", "Best day", bestDay),
		fmt.Sprintf("  %-16s %s", "Best week", formatHours(s.records.BestWeek)),
		fmt.Sprintf("  %-16s %s", "Best month", bestMonth),
	}, "\n")

	trend := titleStyle.Render(fmt.Sprintf("Last %d weeks (hours)", weeksInTrend))

	return lipgloss.JoinVertical(lipgloss.Left,
		streak, "", cards, "", records, "", trend, s.chart.View(),
	)
}

func card(label, value string) string {
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.Render(label),
		highlightStyle.Bold(true).Render(value),
	))
}

func (s statsModel) renderHeatmap() string {
	hm := s.heatmap
	title := titleStyle.Render(fmt.Sprintf("%d", hm.Year)) +
		mutedStyle.Render(fmt.Sprintf("  %s in %d",
			formatHours(s.daily.TotalMinutesInRange(datekey.YearRange(hm.Year))), hm.Year))

	// Month labels above the first week of each month.
	labels := []byte(strings.Repeat(" ", 2*len(hm.Weeks)+2))
	var lastMonth time.Month
	for i, week := range hm.Weeks {
		if week.Month != lastMonth {
			copy(labels[2*i:], week.Month.String()[:3])
			lastMonth = week.Month
		}
	}

	rows := []string{title, "", mutedStyle.Render("     " + strings.TrimRight(string(labels), " "))}
	dayLabels := [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	for wd := 0; wd < 7; wd++ {
		var b strings.Builder
		b.WriteString(mutedStyle.Render(dayLabels[wd] + "  "))
		for _, week := range hm.Weeks {
			cell := week.Days[wd]
			switch {
			case cell == nil:
				b.WriteString("  ")
			case cell.Today:
				b.WriteString(heatStyle(cell.Bucket).Render("◆") + " ")
			default:
				b.WriteString(heatStyle(cell.Bucket).Render("■") + " ")
			}
		}
		rows = append(rows, b.String())
	}

	th := hm.Thresholds
	legend := mutedStyle.Render("Less ")
	for b := 0; b < len(heatColors); b++ {
		legend += heatStyle(b).Render("■") + " "
	}
	legend += mutedStyle.Render(fmt.Sprintf("More   (≤%d, ≤%d, ≤%d, >%d min)", th[0], th[1], th[2], th[2]))
	rows = append(rows, "", legend)

	return strings.Join(rows, "\n")
}

func (s statsModel) renderDistribution(w int) string {
	p := distPeriods[s.period]
	title := titleStyle.Render("Time by activity") + mutedStyle.Render("  "+p.label)
	d := s.dist

	if d.TotalStudyMinutes == 0 && len(d.Projects) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render("  No study time in this period"))
	}

	barWidth := max(min(w-50, 30), 5)
	total := max(d.TotalStudyMinutes, d.TotalProjectMinutes, 1)

	rows := []string{title}
	line := func(name string, minutes int, style lipgloss.Style) string {
		n := minutes * barWidth / total
		bar := style.Render(strings.Repeat("█", n)) + mutedStyle.Render(strings.Repeat("░", barWidth-n))
		return fmt.Sprintf("  %-24s %s %7s %4.0f%%", truncate(name, 24), bar, formatHours(minutes), float64(minutes)/float64(total)*100)
	}
	for _, pt := range d.Projects {
		style := highlightStyle
		if pt.Completed {
			style = successStyle
		}
		rows = append(rows, line(pt.Name, pt.Minutes, style))
	}
	if d.UnattributedMinutes > 0 {
		rows = append(rows, line("Other study", d.UnattributedMinutes, mutedStyle))
	}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  Total %s", formatHours(d.TotalStudyMinutes))))
	return strings.Join(rows, "\n")
}

func (s statsModel) renderCompleted() string {
	p := completedPeriods[s.donePeriod]
	title := titleStyle.Render("Completed activities") + mutedStyle.Render("  "+p.label)
	if len(s.completed) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render("  None"))
	}
	rows := []string{title}
	for _, a := range s.completed {
		end := ""
		if a.EndDate != nil {
			end = datekey.FormatDDMM(*a.EndDate)
		}
		rows = append(rows, fmt.Sprintf("  %s %-24s %7.2fh  %s",
			successStyle.Render("✓"), truncate(a.Name, 24), a.EndHours, mutedStyle.Render(end)))
	}
	return strings.Join(rows, "\n")
}
