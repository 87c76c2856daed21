package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the widget uses.
const (
	colorBlue     lipgloss.Color = "#89b4fa"
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorRed      lipgloss.Color = "#f38ba8"
)

const cardWidth = 60

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(1, 3).
			Width(cardWidth).
			Align(lipgloss.Center)

	contentStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	authorStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			MarginTop(1)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(colorSubtext0)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBlue).
			Padding(0, 2).
			MarginTop(1)

	buttonDisabledStyle = buttonStyle.
				Foreground(colorOverlay0).
				Background(colorSurface1)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)
