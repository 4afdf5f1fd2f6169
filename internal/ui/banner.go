package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Banner is the ASCII art header
var Banner = []string{
	"    _  _____ _____ _   _ _   _ _____ ____        ____ _   _    _    _   _  ____ _____ _     ___   ____ ",
	"   / \\|_   _|_   _| | | | \\ | | ____|  _ \\      / ___| | | |  / \\  | \\ | |/ ___| ____| |   / _ \\ / ___|",
	"  / _ \\ | |   | | | | | |  \\| |  _| | | | |    | |   | |_| | / _ \\ |  \\| | |  _|  _| | |  | | | | |  _ ",
	" / ___ \\| |   | | | |_| | |\\  | |___| |_| |    | |___|  _  |/ ___ \\| |\\  | |_| | |___| |__| |_| | |_| |",
	"/_/   \\_\\_|   |_|  \\___/|_| \\_|_____|____/      \\____|_| |_/_/   \\_\\_| \\_|\\____|_____|_____\\___/ \\____|",
}

// RenderBanner returns the styled banner, with a warning line in dry run mode
func RenderBanner(dryRun bool) string {
	bannerStyle := lipgloss.NewStyle().
		Foreground(ColorCyan).
		Align(lipgloss.Center)

	var lines []string
	for _, line := range Banner {
		lines = append(lines, bannerStyle.Render(line))
	}

	if dryRun {
		lines = append(lines, "")
		warningStyle := lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true).
			Align(lipgloss.Center)
		lines = append(lines, warningStyle.Render("⚠ DRY RUN MODE: changelogs are not written"))
	}

	return strings.Join(lines, "\n")
}

// BannerHeight returns the number of lines RenderBanner produces
func BannerHeight(dryRun bool) int {
	if dryRun {
		return len(Banner) + 2
	}
	return len(Banner)
}
