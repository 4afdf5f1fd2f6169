package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SectionHeader creates a styled section header with a title and color
// Example: "─── TITLE ───────────"
func SectionHeader(title string, color lipgloss.Color) string {
	dashes := strings.Repeat("─", max(25-len(title), 0))
	headerStyle := lipgloss.NewStyle().Foreground(color)
	titleStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	return fmt.Sprintf("%s%s%s",
		headerStyle.Render("  ─── "),
		titleStyle.Render(title),
		headerStyle.Render(" "+dashes),
	)
}

// RangeDiagram shows a comparison as two boxes joined by an arrow
// Example: v1.0 ====> v1.1
func RangeDiagram(base, head string, baseColor, headColor lipgloss.Color) string {
	width := max(len([]rune(base)), len([]rune(head)), 7)
	width = min(width, 20)

	baseStyle := lipgloss.NewStyle().Foreground(baseColor)
	baseBold := lipgloss.NewStyle().Foreground(baseColor).Bold(true)
	headStyle := lipgloss.NewStyle().Foreground(headColor)
	headBold := lipgloss.NewStyle().Foreground(headColor).Bold(true)
	arrowStyle := lipgloss.NewStyle().Foreground(ColorCyan)

	bar := strings.Repeat("─", width+2)
	gap := strings.Repeat(" ", 9)

	line1 := baseStyle.Render("  ┌"+bar+"┐") + gap + headStyle.Render("┌"+bar+"┐")
	line2 := baseStyle.Render("  │ ") + baseBold.Render(centerText(base, width)) + baseStyle.Render(" │") +
		arrowStyle.Render("  ====>  ") +
		headStyle.Render("│ ") + headBold.Render(centerText(head, width)) + headStyle.Render(" │")
	line3 := baseStyle.Render("  └"+bar+"┘") + gap + headStyle.Render("└"+bar+"┘")

	return line1 + "\n" + line2 + "\n" + line3
}

// centerText centers a string within a given width
func centerText(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	leftPad := (width - len(r)) / 2
	rightPad := width - len(r) - leftPad
	return strings.Repeat(" ", leftPad) + s + strings.Repeat(" ", rightPad)
}

// Spinner frames using braille characters
var SpinnerFrames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Spinner returns the spinner character at the given frame index
func Spinner(frame int) string {
	return string(SpinnerFrames[frame%len(SpinnerFrames)])
}

// Checkbox renders a checkbox in the given state
func Checkbox(checked bool) string {
	if checked {
		return "[✓]"
	}
	return "[ ]"
}

// Arrow returns an arrow indicator for selection
func Arrow(selected bool) string {
	if selected {
		return "▶ "
	}
	return "  "
}

// Caret returns the collapse indicator of an expandable row
func Caret(open bool) string {
	if open {
		return "▾"
	}
	return "▸"
}

// KeyBinding renders a key binding hint
func KeyBinding(key, description string, color lipgloss.Color) string {
	keyStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	return fmt.Sprintf("%s %s",
		keyStyle.Render(key),
		descStyle.Render(description),
	)
}

// StatusIcon returns the appropriate status icon and color
func StatusIcon(status string) (string, lipgloss.Color) {
	switch status {
	case "published", "success":
		return "✓", ColorGreen
	case "dry-run":
		return "⊘", ColorYellow
	case "failed", "error":
		return "✗", ColorRed
	case "loading":
		return "⏳", ColorYellow
	default:
		return "·", ColorWhite
	}
}

// ErrorLine renders the single current error
func ErrorLine(kind, message string) string {
	label := lipgloss.NewStyle().Foreground(ColorRed).Bold(true).Render("✗ " + kind)
	return label + " " + lipgloss.NewStyle().Foreground(ColorRed).Render(message)
}

// UnifiedPanel creates two columns with a vertical separator (no border - outer border is in View)
func UnifiedPanel(leftContent, rightContent string, leftWidth, rightWidth int) string {
	leftStyle := lipgloss.NewStyle().Width(leftWidth).Padding(0, 1)
	rightStyle := lipgloss.NewStyle().Width(rightWidth).Padding(0, 1)

	leftCol := leftStyle.Render(leftContent)
	rightCol := rightStyle.Render(rightContent)

	// Build vertical separator to match column height
	separator := lipgloss.NewStyle().Foreground(ColorDarkGray).Render("│")
	lines := max(lipgloss.Height(leftCol), lipgloss.Height(rightCol))
	sepLines := make([]string, lines)
	for i := range sepLines {
		sepLines[i] = separator
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, leftCol, strings.Join(sepLines, "\n"), rightCol)
}

// ColumnBox creates a bordered column with title for two-column layouts
// If height > 0, content is padded/truncated to exactly that many lines
func ColumnBox(content string, title string, color lipgloss.Color, isActive bool, width int, height int) string {
	borderColor := color
	if !isActive {
		borderColor = ColorDarkGray
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width)

	var fullContent string
	if title != "" {
		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(color)
		fullContent = titleStyle.Render(" "+title+" ") + "\n" + content
	} else {
		fullContent = content
	}

	// Manually pad/truncate to fixed height
	if height > 0 {
		lines := strings.Split(fullContent, "\n")
		for len(lines) < height {
			lines = append(lines, "")
		}
		fullContent = strings.Join(lines[:height], "\n")
	}

	return style.Render(fullContent)
}

// FilterInput renders an input box around an already rendered input line
// If width > 0, the box will have a fixed width
func FilterInput(input string, title string, color lipgloss.Color, width int) string {
	searchIcon := lipgloss.NewStyle().Foreground(ColorCyan).Render(" 🔍 ")

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)

	if width > 0 {
		style = style.Width(width)
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(color)
	return style.Render(titleStyle.Render(title) + "\n" + searchIcon + input)
}

// SlotBox renders one side of the range picker: a label and the chosen commit, or a placeholder
func SlotBox(label, value string, color lipgloss.Color, width int) string {
	content := lipgloss.NewStyle().Foreground(ColorDarkGray).Render("click a commit…")
	if value != "" {
		content = lipgloss.NewStyle().Foreground(color).Bold(true).Render(value)
	}
	return ColumnBox(content, label, color, value != "", width, 0)
}

// MenuRow renders a menu row with optional highlight background
// width should be the inner width of the panel (excluding border)
func MenuRow(icon, title, desc string, color lipgloss.Color, selected bool, width int) []string {
	arrow := Arrow(selected)

	if selected {
		// For selected items, render the whole line with background
		rowStyle := lipgloss.NewStyle().Background(ColorDarkGray).Width(width)
		arrowStyle := lipgloss.NewStyle().Foreground(color).Background(ColorDarkGray)
		iconStyle := lipgloss.NewStyle().Background(ColorDarkGray)
		titleStyle := lipgloss.NewStyle().Foreground(color).Bold(true).Background(ColorDarkGray)
		descStyle := lipgloss.NewStyle().Foreground(ColorWhite).Background(ColorDarkGray)

		line1 := rowStyle.Render(arrowStyle.Render(arrow) + iconStyle.Render(icon+"  ") + titleStyle.Render(title))
		if desc == "" {
			return []string{line1}
		}
		line2 := rowStyle.Render("       " + descStyle.Render(desc))
		return []string{line1, line2}
	}

	// Non-selected items - no background
	arrowStyle := lipgloss.NewStyle().Foreground(color)
	titleStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	line1 := arrowStyle.Render(arrow) + icon + "  " + titleStyle.Render(title)
	if desc == "" {
		return []string{line1}
	}
	line2 := "       " + descStyle.Render(desc)
	return []string{line1, line2}
}

// Truncate shortens s to maxLen runes, ending in an ellipsis
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
