package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CrumbState is how a step appears in the breadcrumb
type CrumbState int

const (
	CrumbPending CrumbState = iota
	CrumbDone
	CrumbCurrent
	CrumbSkipped
)

// Crumb is one step of the breadcrumb
type Crumb struct {
	Key   string // shortcut shown next to reachable steps
	Label string
	State CrumbState
}

// Breadcrumb renders the wizard steps on one line. Done steps show their
// shortcut key since they can be jumped back to.
func Breadcrumb(crumbs []Crumb) string {
	sep := lipgloss.NewStyle().Foreground(ColorDarkGray).Render(" › ")
	parts := make([]string, 0, len(crumbs))
	for _, c := range crumbs {
		switch c.State {
		case CrumbDone:
			key := lipgloss.NewStyle().Foreground(ColorYellow).Bold(true).Render(c.Key)
			parts = append(parts, key+" "+lipgloss.NewStyle().Foreground(ColorGreen).Render("✓ "+c.Label))
		case CrumbCurrent:
			parts = append(parts, lipgloss.NewStyle().Foreground(ColorCyan).Bold(true).Underline(true).Render(c.Label))
		case CrumbSkipped:
			parts = append(parts, lipgloss.NewStyle().Foreground(ColorDarkGray).Strikethrough(true).Render(c.Label))
		default:
			parts = append(parts, lipgloss.NewStyle().Foreground(ColorDarkGray).Render(c.Label))
		}
	}
	return "  " + strings.Join(parts, sep)
}
