package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

const (
	DefaultBarWidth = 30
	defaultBoxWidth = 38
)

// Theme is the rendering configuration. Styles are bound to one
// lipgloss renderer so output written to a pipe carries no escapes.
type Theme struct {
	BarWidth int
	BoxWidth int
	Fill     string
	Empty    string
	Border   string

	Work      lipgloss.Style
	Break     lipgloss.Style
	Title     lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style
	Box       lipgloss.Style
	Panel     lipgloss.Style
}

// NewTheme builds the default theme for r. A barWidth below 1 falls back
// to DefaultBarWidth.
func NewTheme(r *lipgloss.Renderer, barWidth int) Theme {
	if barWidth < 1 {
		barWidth = DefaultBarWidth
	}
	return Theme{
		BarWidth: barWidth,
		BoxWidth: defaultBoxWidth,
		Fill:     "■",
		Empty:    " ",
		Border:   "║",

		Work: r.NewStyle().
			Bold(true).
			Foreground(colorSuccess),
		Break: r.NewStyle().
			Bold(true).
			Foreground(colorWarning),
		Title: r.NewStyle().
			Bold(true).
			Foreground(colorFg),
		Muted: r.NewStyle().
			Foreground(colorMuted),
		Success: r.NewStyle().
			Foreground(colorSuccess),
		Error: r.NewStyle().
			Foreground(colorError),
		Highlight: r.NewStyle().
			Foreground(colorHighlight),
		Box: r.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorPrimary).
			Width(defaultBoxWidth).
			PaddingLeft(2),
		Panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2),
	}
}
