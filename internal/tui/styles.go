package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorAccent    = lipgloss.Color("#FF6B6B")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// themes maps the app_theme preference to a primary color.
var themes = map[string]lipgloss.Color{
	"light":  "#6C63FF",
	"dark":   "#7AA2F7",
	"forest": "#2ECC71",
	"ocean":  "#2EC4B6",
	"sunset": "#FF8C42",
}

var themeOrder = []string{"light", "dark", "forest", "ocean", "sunset"}

// heatColors are the heatmap buckets 0 (no study) to 4.
var heatColors = [5]lipgloss.Color{"#2A2E3F", "#0E4429", "#006D32", "#26A641", "#39D353"}

// Styles
var (
	// Tabs
	activeTabStyle   lipgloss.Style
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle lipgloss.Style

	// Timer digits while idle; a running phase uses its own color.
	timerStyle lipgloss.Style

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	accentStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// Stats cards
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorSubtle).
			Padding(0, 1).
			Width(24)

	// List items
	selectedItemStyle lipgloss.Style

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)

func init() {
	applyTheme("light")
}

// applyTheme rebuilds the styles that use the primary color. Unknown names
// fall back to the light theme.
func applyTheme(name string) {
	c, ok := themes[name]
	if !ok {
		c = themes["light"]
	}
	colorPrimary = c

	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(colorPrimary).
		Padding(0, 2)

	activePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2)

	timerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary).
		Align(lipgloss.Center)

	selectedItemStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)
}

func heatStyle(bucket int) lipgloss.Style {
	bucket = min(max(bucket, 0), len(heatColors)-1)
	return lipgloss.NewStyle().Foreground(heatColors[bucket])
}
