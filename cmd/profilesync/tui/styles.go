package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

var (
	colorText     = lipgloss.Color(flavor.Text().Hex)
	colorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorGreen    = lipgloss.Color(flavor.Green().Hex)
	colorRed      = lipgloss.Color(flavor.Red().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorSurface1 = lipgloss.Color(flavor.Surface1().Hex)
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)

	subtitleStyle = lipgloss.NewStyle().Foreground(colorSubtext0)

	// selectedStyle marks the item under the cursor.
	selectedStyle = lipgloss.NewStyle().Foreground(colorBlue).Background(colorSurface1).Bold(true)

	itemStyle = lipgloss.NewStyle().Foreground(colorText)

	okStyle = lipgloss.NewStyle().Foreground(colorGreen)

	warnStyle = lipgloss.NewStyle().Foreground(colorYellow)

	errStyle = lipgloss.NewStyle().Foreground(colorRed)

	helpStyle = lipgloss.NewStyle().Foreground(colorSubtext0)

	spinnerStyle = lipgloss.NewStyle().Foreground(colorBlue)
)
