package ui

import (
	"github.com/wahlandcase/attuned.changelog/internal/models"
	"github.com/wahlandcase/attuned.changelog/internal/selection"

	"github.com/charmbracelet/lipgloss"
)

// Note: Warp terminal fix is in internal/termfix package, imported first in main.go

var (
	ColorCyan       = lipgloss.Color("#00FFFF")
	ColorGreen      = lipgloss.Color("#00FF00")
	ColorYellow     = lipgloss.Color("#FFFF00")
	ColorRed        = lipgloss.Color("#FF0000")
	ColorMagenta    = lipgloss.Color("#FF00FF")
	ColorBlue       = lipgloss.Color("#5555FF")
	ColorPurple     = lipgloss.Color("#AA55FF")
	ColorOrange     = lipgloss.Color("#FFA500")
	ColorLightGreen = lipgloss.Color("#90EE90")
	ColorWhite      = lipgloss.Color("#FFFFFF")
	ColorDarkGray   = lipgloss.Color("8") // ANSI 8 - matches ratatui's DarkGray
)

// RefColor returns the display color for a reference kind
func RefColor(kind models.RefKind) lipgloss.Color {
	switch kind {
	case models.RefBranch:
		return ColorGreen
	case models.RefTag:
		return ColorYellow
	case models.RefRelease:
		return ColorMagenta
	default:
		return ColorWhite
	}
}

// RowStyle returns the style of a commit row in the given class
func RowStyle(class selection.RowClass) lipgloss.Style {
	switch class {
	case selection.RowSelected:
		return lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	case selection.RowInRange:
		return lipgloss.NewStyle().Foreground(ColorLightGreen)
	case selection.RowDisabled:
		return lipgloss.NewStyle().Foreground(ColorDarkGray)
	default:
		return lipgloss.NewStyle().Foreground(ColorWhite)
	}
}

// StatusColor returns the color of a changed-file status
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "added":
		return ColorGreen
	case "removed":
		return ColorRed
	case "renamed":
		return ColorBlue
	case "copied", "changed":
		return ColorOrange
	default:
		return ColorYellow
	}
}
