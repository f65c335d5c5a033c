package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorBorder   lipgloss.Color = "#585b70"
	colorAccent   lipgloss.Color = "#cba6f7"
	colorFocus    lipgloss.Color = "#b4befe"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorError    lipgloss.Color = "#f38ba8"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorFocus).MarginTop(1)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	keyStyle     = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	valueStyle   = lipgloss.NewStyle().Foreground(colorText).Bold(true)

	sidebarStyle = lipgloss.NewStyle().
			Padding(1, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(colorBorder)
	radioOnStyle  = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	radioOffStyle = lipgloss.NewStyle().Foreground(colorMuted)

	errorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Foreground(colorError).
			Padding(0, 1)

	statusBarStyle    = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().Foreground(colorError).Background(colorSurface0).Bold(true)

	pickerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFocus).
			Background(colorMantle).
			Padding(0, 1)
	pickerTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorFocus)
	pickerQueryStyle    = lipgloss.NewStyle().Foreground(colorText)
	pickerCursorStyle   = lipgloss.NewStyle().Foreground(colorAccent)
	pickerSelectedStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)
