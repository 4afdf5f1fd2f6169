package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/wahlandcase/attuned.changelog/internal/ui"
	"github.com/wahlandcase/attuned.changelog/internal/update"
	"github.com/wahlandcase/attuned.changelog/internal/wizard"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// contentWidth returns the usable content width, adapting to terminal size
func (m Model) contentWidth() int {
	w := m.width - 8
	if w < 40 {
		w = 40
	}
	return w
}

// availableHeight is the space left for screen content
func (m Model) availableHeight() int {
	// banner, breadcrumb, gaps and the status bar
	h := m.height - ui.BannerHeight(m.dryRun) - 4 - 4
	if h < 10 {
		h = 10
	}
	return h
}

// View renders the application
func (m Model) View() string {
	if m.shouldQuit {
		return ""
	}

	var sections []string

	// Banner
	sections = append(sections, ui.RenderBanner(m.dryRun))
	sections = append(sections, "")
	sections = append(sections, m.renderBreadcrumb())
	sections = append(sections, "")

	contentWidth := m.contentWidth()
	availableHeight := m.availableHeight()

	// Screens that manage their own full layout (no outer box)
	fullLayoutScreens := m.screen() == ScreenChooseBranch ||
		m.screen() == ScreenChooseCommits

	if fullLayoutScreens {
		sections = append(sections, m.renderContent(availableHeight))
	} else {
		// Standard outer box for simpler screens - always use fixed width
		outerBox := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorPurple).
			Width(contentWidth).
			Padding(1, 2)

		sections = append(sections, outerBox.Render(m.renderContent(availableHeight)))
	}

	// Status bar
	sections = append(sections, "")
	sections = append(sections, m.renderStatusBar())

	content := strings.Join(sections, "\n")

	// Center horizontally in the terminal
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, content)
}

func (m Model) renderContent(availableHeight int) string {
	switch m.screen() {
	case ScreenAddRepo:
		return m.renderAddRepo()
	case ScreenChooseBranch:
		return m.renderChooseBranch(availableHeight)
	case ScreenChooseCommits:
		return m.renderChooseCommits(availableHeight)
	case ScreenReviewDiff:
		return m.renderReviewDiff()
	case ScreenCreateChangelog:
		return m.renderCreateChangelog()
	case ScreenPublished:
		return m.renderPublished()
	case ScreenUpdatePrompt:
		return m.renderUpdatePrompt()
	case ScreenUpdating:
		return m.renderUpdating()
	default:
		return ""
	}
}

func (m Model) renderBreadcrumb() string {
	reachable := make(map[wizard.Step]bool)
	for _, s := range m.state.Reachable() {
		reachable[s] = true
	}
	var crumbs []ui.Crumb
	for _, s := range wizard.Steps {
		c := ui.Crumb{Key: fmt.Sprint(int(s) + 1), Label: s.Title()}
		switch {
		case s == m.state.Step:
			c.State = ui.CrumbCurrent
		case s < m.state.Step && reachable[s]:
			c.State = ui.CrumbDone
		case s < m.state.Step:
			c.State = ui.CrumbSkipped
		}
		crumbs = append(crumbs, c)
	}
	return ui.Breadcrumb(crumbs)
}

func (m Model) spinnerLine(text string) string {
	spinnerStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan)
	statusStyle := lipgloss.NewStyle().Foreground(ui.ColorYellow)
	return fmt.Sprintf("   %s %s", spinnerStyle.Render(ui.Spinner(m.spinnerFrame)), statusStyle.Render(text))
}

func (m Model) renderAddRepo() string {
	var lines []string

	lines = append(lines, ui.SectionHeader("Add a repository", ui.ColorCyan))
	lines = append(lines, "")
	lines = append(lines, ui.FilterInput(m.urlInput.View(), "Public GitHub repository URL", ui.ColorCyan, m.contentWidth()-10))
	lines = append(lines, "")

	if m.state.IsLoading(wizard.OpResolve) {
		lines = append(lines, m.spinnerLine("Resolving repository..."))
		lines = append(lines, "")
	}

	if len(m.recent) > 0 {
		lines = append(lines, ui.SectionHeader("Recent", ui.ColorBlue))
		lines = append(lines, "")
		for i, url := range m.recent {
			lines = append(lines, ui.MenuRow("↺", url, "", ui.ColorBlue, i == m.recentIndex, m.contentWidth()-8)...)
		}
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderRepoInfo() string {
	repo := m.state.Repo
	if repo == nil {
		return ""
	}
	nameStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)
	line := fmt.Sprintf("  %s  %s", nameStyle.Render(repo.FullName), dimStyle.Render(fmt.Sprintf("★ %d", repo.Stars)))
	if repo.Description != "" {
		line += "\n  " + dimStyle.Render(ui.Truncate(repo.Description, m.contentWidth()-4))
	}
	return line
}

func (m Model) renderChooseBranch(availableHeight int) string {
	width := m.contentWidth()
	colWidth := width/2 - 2
	listHeight := max(availableHeight-8, 5)

	var left []string
	branches := m.state.Catalog.Branches
	start := scrollStart(m.branchCursor, len(branches), listHeight-1)
	for i := start; i < len(branches) && i < start+listHeight-1; i++ {
		b := branches[i]
		style := lipgloss.NewStyle().Foreground(ui.ColorWhite)
		if i == m.branchCursor && m.column == columnBranches {
			style = style.Foreground(ui.ColorGreen).Bold(true)
		}
		name := b.Name
		if m.state.Repo != nil && b.Name == m.state.Repo.DefaultBranch {
			name += lipgloss.NewStyle().Foreground(ui.ColorDarkGray).Render(" (default)")
		}
		check := ui.Checkbox(b.Name == m.state.Branch)
		left = append(left, style.Render(ui.Arrow(i == m.branchCursor)+check+" ")+name)
	}
	if len(branches) == 0 {
		left = append(left, lipgloss.NewStyle().Foreground(ui.ColorDarkGray).Render("  No branches"))
	}

	var right []string
	refs := m.refList()
	start = scrollStart(m.refCursor, len(refs), listHeight-1)
	for i := start; i < len(refs) && i < start+listHeight-1; i++ {
		r := refs[i]
		style := lipgloss.NewStyle().Foreground(ui.RefColor(r.Kind))
		if i == m.refCursor && m.column == columnRefs {
			style = style.Bold(true)
		}
		marker := "   "
		switch r.Name {
		case m.base:
			marker = "[b]"
		case m.head:
			marker = "[h]"
		}
		kind := lipgloss.NewStyle().Foreground(ui.ColorDarkGray).Render(" " + r.Kind.String())
		right = append(right, style.Render(ui.Arrow(i == m.refCursor && m.column == columnRefs)+marker+" "+r.Name)+kind)
	}

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		ui.ColumnBox(strings.Join(left, "\n"), "BRANCH HISTORY", ui.ColorGreen, m.column == columnBranches, colWidth, listHeight),
		" ",
		ui.ColumnBox(strings.Join(right, "\n"), "COMPARE REFERENCES", ui.ColorYellow, m.column == columnRefs, colWidth, listHeight),
	)

	var sections []string
	sections = append(sections, m.renderRepoInfo())
	sections = append(sections, columns)
	switch {
	case m.state.IsLoading(wizard.OpCommits):
		sections = append(sections, m.spinnerLine(fmt.Sprintf("Loading commits on %s...", m.state.Branch)))
	case m.base != "" || m.head != "":
		sections = append(sections, ui.RangeDiagram(orDash(m.base), orDash(m.head), ui.ColorYellow, ui.ColorGreen))
	}
	return strings.Join(sections, "\n")
}

func orDash(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

// scrollStart returns the first visible row keeping cursor in view
func scrollStart(cursor, total, visible int) int {
	if visible <= 0 || total <= visible {
		return 0
	}
	start := cursor - visible/2
	if start < 0 {
		start = 0
	}
	if start > total-visible {
		start = total - visible
	}
	return start
}

func (m Model) slotLabel(sha string) string {
	if sha == "" {
		return ""
	}
	c, ok := m.state.Ledger.Get(sha)
	if !ok {
		return shortSHA(sha)
	}
	return c.ShortSHA() + " " + ui.Truncate(c.Subject(), 40)
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func (m Model) renderChooseCommits(availableHeight int) string {
	width := m.contentWidth()
	sel := m.state.Selection

	slots := lipgloss.JoinHorizontal(lipgloss.Top,
		ui.SlotBox("END (newest)", m.slotLabel(sel.End), ui.ColorCyan, width/2-2),
		" ",
		ui.SlotBox("START (oldest)", m.slotLabel(sel.Start), ui.ColorMagenta, width/2-2),
	)

	var lines []string
	if m.searching || m.searchInput.Value() != "" {
		lines = append(lines, ui.FilterInput(m.searchInput.View(), "Search", ui.ColorYellow, width-6))
	}

	rows := m.commitRows()
	listHeight := max(availableHeight-10-len(lines)*3, 5)
	body := m.renderCommitRows(rows, listHeight, width-4)

	footer := m.renderCommitsFooter(len(rows))
	list := ui.ColumnBox(body, fmt.Sprintf("COMMITS ON %s", m.state.Branch), ui.ColorGreen, true, width-2, listHeight+1)

	sections := []string{slots}
	sections = append(sections, lines...)
	sections = append(sections, list, footer)
	return strings.Join(sections, "\n")
}

func (m Model) renderCommitRows(rows []int, height, width int) string {
	if len(rows) == 0 {
		return lipgloss.NewStyle().Foreground(ui.ColorDarkGray).Render("  No commits match")
	}

	sel := m.state.Selection
	dimStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)
	var lines []string
	start := scrollStart(m.commitCursor, len(rows), height)
	for i := start; i < len(rows) && len(lines) < height; i++ {
		c := m.state.Ledger.At(rows[i])
		class := sel.Classify(c.SHA, m.state.Ledger.IndexOf)
		style := ui.RowStyle(class)
		if i == m.commitCursor {
			style = style.Bold(true).Background(ui.ColorDarkGray)
		}

		marker := " "
		switch c.SHA {
		case sel.End:
			marker = "E"
		case sel.Start:
			marker = "S"
		}
		meta := fmt.Sprintf("%s · %s", c.Author, relativeTime(c.Date))
		subjectWidth := max(width-len(meta)-16, 10)
		line := fmt.Sprintf("%s%s %s %s", ui.Arrow(i == m.commitCursor), marker, c.ShortSHA(), ui.Truncate(c.Subject(), subjectWidth))
		lines = append(lines, style.Render(line)+"  "+dimStyle.Render(meta))

		lines = append(lines, m.renderInlineDiff(c.SHA)...)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// renderInlineDiff shows the files a commit changed relative to its older neighbor
func (m Model) renderInlineDiff(sha string) []string {
	indent := "        "
	if m.state.AnchorPending(sha) {
		return []string{indent + m.spinnerLine("Loading previous commit...")}
	}
	key, ok := m.state.CommitDiffKey(sha)
	if !ok {
		return nil
	}
	if m.state.DiffPending(key) {
		return []string{indent + m.spinnerLine("Loading diff...")}
	}
	files, ok := m.state.Diffs.Get(key)
	if !ok || !m.state.Diffs.Visible(key) {
		return nil
	}

	var lines []string
	const maxInlineFiles = 8
	for i, f := range files {
		if i == maxInlineFiles {
			more := lipgloss.NewStyle().Foreground(ui.ColorDarkGray).Render(fmt.Sprintf("... and %d more files", len(files)-maxInlineFiles))
			lines = append(lines, indent+more)
			break
		}
		lines = append(lines, indent+ui.FileHeader(f, false, false))
	}
	if len(files) == 0 {
		lines = append(lines, indent+lipgloss.NewStyle().Foreground(ui.ColorDarkGray).Render("(no file changes)"))
	}
	return lines
}

func (m Model) renderCommitsFooter(shown int) string {
	dimStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)
	footer := dimStyle.Render(fmt.Sprintf("  %d of %d loaded commits · page %d", shown, m.state.Ledger.Len(), m.state.Ledger.Page()))
	switch {
	case m.state.IsLoading(wizard.OpCommits):
		footer += "\n" + m.spinnerLine("Loading more commits...")
	case m.state.Ledger.HasNext():
		footer += dimStyle.Render("  ·  more available")
	}
	if m.state.Selection.Len() == 1 {
		footer += "\n" + lipgloss.NewStyle().Foreground(ui.ColorMagenta).Render("  Now pick an older commit as the start of the range")
	}
	return footer
}

// reviewLabels returns how the base and head of the review are shown
func (m Model) reviewLabels() (string, string) {
	if m.state.Compare != nil {
		return m.state.Compare.Base, m.state.Compare.Head
	}
	if m.state.Review != nil {
		return shortSHA(m.state.Review.Base), shortSHA(m.state.Review.Head)
	}
	return "?", "?"
}

func (m Model) renderReviewDiff() string {
	var lines []string
	base, head := m.reviewLabels()
	lines = append(lines, ui.RangeDiagram(base, head, ui.ColorMagenta, ui.ColorCyan))
	lines = append(lines, "")

	review := m.state.Review
	files, hidden, ok := m.reviewFiles()
	switch {
	case review != nil && m.state.DiffPending(review.Key):
		lines = append(lines, m.spinnerLine("Loading diff..."))
	case !ok:
		lines = append(lines, lipgloss.NewStyle().Foreground(ui.ColorRed).Render("   The diff could not be loaded. Press R to retry."))
	case !m.state.Diffs.Visible(review.Key):
		lines = append(lines, lipgloss.NewStyle().Foreground(ui.ColorDarkGray).Render("   Diff hidden. Press v to show it."))
	default:
		var adds, dels int
		for _, f := range files {
			adds += f.Additions
			dels += f.Deletions
		}
		summary := fmt.Sprintf("   %d files changed  %s %s",
			len(files),
			lipgloss.NewStyle().Foreground(ui.ColorGreen).Render(fmt.Sprintf("+%d", adds)),
			lipgloss.NewStyle().Foreground(ui.ColorRed).Render(fmt.Sprintf("-%d", dels)),
		)
		if hidden > 0 {
			summary += lipgloss.NewStyle().Foreground(ui.ColorDarkGray).Render(fmt.Sprintf("  (%d hidden by diff.exclude)", hidden))
		}
		if commits := m.state.RangeCommits(); len(commits) > 0 {
			summary += lipgloss.NewStyle().Foreground(ui.ColorDarkGray).Render(fmt.Sprintf("  ·  %d commits", len(commits)))
		}
		lines = append(lines, summary)
		lines = append(lines, "")
		lines = append(lines, m.diffView.View())
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderCreateChangelog() string {
	var lines []string
	base, head := m.reviewLabels()
	labelStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)

	lines = append(lines, ui.SectionHeader("Create changelog", ui.ColorCyan))
	lines = append(lines, "")
	summary := fmt.Sprintf("   %s → %s", base, head)
	if commits := m.state.RangeCommits(); len(commits) > 0 {
		summary += fmt.Sprintf("  ·  %d commits", len(commits))
	}
	lines = append(lines, dimStyle.Render(summary))
	lines = append(lines, "")

	lines = append(lines, labelStyle.Render("   Title"))
	lines = append(lines, "   "+m.titleInput.View())
	lines = append(lines, "")
	lines = append(lines, labelStyle.Render("   Content"))
	lines = append(lines, m.bodyInput.View())
	lines = append(lines, "")

	switch {
	case m.state.IsLoading(wizard.OpGenerate):
		lines = append(lines, m.spinnerLine("Generating draft..."))
	case m.state.IsLoading(wizard.OpPublish):
		lines = append(lines, m.spinnerLine("Publishing..."))
	case !m.state.Draft.Ready():
		lines = append(lines, dimStyle.Render("   Write a title and content, or press Ctrl+G to generate a draft."))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderPublished() string {
	var lines []string
	c := m.state.Published
	if c == nil {
		return ""
	}

	status, title := "published", "Changelog published"
	if m.dryRun {
		status, title = "dry-run", "Dry run: changelog not written"
	}
	icon, color := ui.StatusIcon(status)
	lines = append(lines, ui.SectionHeader(title, color))
	lines = append(lines, "")

	label := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)
	value := lipgloss.NewStyle().Foreground(ui.ColorWhite).Bold(true)

	var left []string
	left = append(left, fmt.Sprintf("%s %s", lipgloss.NewStyle().Foreground(color).Render(icon), value.Render(c.Title)))
	left = append(left, "")
	left = append(left, label.Render("Repository  ")+c.Repository.FullName)
	left = append(left, label.Render("Range       ")+fmt.Sprintf("%s → %s", c.Base, c.Head))
	if len(c.Commits) > 0 {
		left = append(left, label.Render("Commits     ")+fmt.Sprint(len(c.Commits)))
	}
	left = append(left, label.Render("File        ")+lipgloss.NewStyle().Foreground(ui.ColorCyan).Render(c.Path))

	if m.deps.History == nil || len(m.deps.History.Entries) == 0 {
		lines = append(lines, strings.Join(left, "\n"))
		return strings.Join(lines, "\n")
	}

	var right []string
	right = append(right, lipgloss.NewStyle().Foreground(ui.ColorBlue).Bold(true).Render("History"))
	right = append(right, "")
	for i, e := range m.deps.History.Entries {
		if i == 5 {
			break
		}
		right = append(right, value.Render(ui.Truncate(e.Title, 30)))
		right = append(right, label.Render(fmt.Sprintf("  %s · %s", e.Repository, relativeTime(e.PublishedAt))))
	}

	inner := m.contentWidth() - 8
	leftWidth := inner * 3 / 5
	lines = append(lines, ui.UnifiedPanel(strings.Join(left, "\n"), strings.Join(right, "\n"), leftWidth, inner-leftWidth-1))
	return strings.Join(lines, "\n")
}

func (m Model) renderUpdatePrompt() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, ui.SectionHeader("Update Available!", ui.ColorCyan))
	lines = append(lines, "")

	if m.updateAvailable != nil {
		versionStyle := lipgloss.NewStyle().Foreground(ui.ColorGreen).Bold(true)
		currentStyle := lipgloss.NewStyle().Foreground(ui.ColorYellow)

		lines = append(lines, fmt.Sprintf("   Current version: %s", currentStyle.Render(m.version)))
		lines = append(lines, fmt.Sprintf("   New version:     %s", versionStyle.Render(update.VersionDisplay(m.updateAvailable.TagName))))
		lines = append(lines, "")
	}

	lines = append(lines, "   What would you like to do?")
	lines = append(lines, "")

	options := []struct {
		key   string
		label string
		color lipgloss.Color
	}{
		{"y", "Update now", ui.ColorGreen},
		{"n", "Skip for now", ui.ColorYellow},
		{"s", "Skip this version", ui.ColorRed},
	}

	var buttons []string
	for i, opt := range options {
		text := fmt.Sprintf("[%s] %s", opt.key, opt.label)
		var style lipgloss.Style
		if i == m.updateSelection {
			style = lipgloss.NewStyle().
				Background(opt.color).
				Foreground(lipgloss.Color("#000000")).
				Padding(0, 1).
				Bold(true)
		} else {
			style = lipgloss.NewStyle().
				Foreground(opt.color).
				Padding(0, 1)
		}
		buttons = append(buttons, style.Render(text))
	}

	lines = append(lines, "   "+strings.Join(buttons, "   "))
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}

func (m Model) renderUpdating() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, ui.SectionHeader("Updating...", ui.ColorCyan))
	lines = append(lines, "")
	lines = append(lines, m.spinnerLine("Downloading and installing update..."))
	lines = append(lines, "")

	if m.updateAvailable != nil {
		dimStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)
		lines = append(lines, dimStyle.Render(fmt.Sprintf("   Installing version %s", update.VersionDisplay(m.updateAvailable.TagName))))
	}

	return strings.Join(lines, "\n")
}

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func (m Model) keyHint(b key.Binding, color lipgloss.Color) string {
	k, desc := hint(b)
	return ui.KeyBinding(k, desc, color)
}

func (m Model) renderStatusBar() string {
	var hints []string
	k := m.keys

	switch m.screen() {
	case ScreenAddRepo:
		hints = []string{
			ui.KeyBinding("Enter", "Load repo", ui.ColorGreen),
			ui.KeyBinding("↑↓", "Recent", ui.ColorWhite),
			m.keyHint(k.CheckUpdate, ui.ColorCyan),
			ui.KeyBinding("Esc", "Quit", ui.ColorRed),
		}
	case ScreenChooseBranch:
		hints = []string{
			m.keyHint(k.Tab, ui.ColorWhite),
			ui.KeyBinding("↑↓", "Navigate", ui.ColorWhite),
		}
		if m.column == columnBranches {
			hints = append(hints,
				ui.KeyBinding("Space", "Choose", ui.ColorGreen),
				ui.KeyBinding("Enter", "Load commits", ui.ColorGreen),
			)
		} else {
			hints = append(hints,
				m.keyHint(k.Base, ui.ColorYellow),
				m.keyHint(k.Head, ui.ColorYellow),
				m.keyHint(k.Compare, ui.ColorGreen),
			)
		}
		hints = append(hints, m.keyHint(k.Back, ui.ColorYellow))
	case ScreenChooseCommits:
		if m.searching {
			hints = []string{
				ui.KeyBinding("Type", "Search", ui.ColorYellow),
				ui.KeyBinding("Enter", "Done", ui.ColorGreen),
				ui.KeyBinding("Esc", "Clear", ui.ColorYellow),
			}
			break
		}
		hints = []string{
			m.keyHint(k.Select, ui.ColorGreen),
			m.keyHint(k.Diff, ui.ColorBlue),
			m.keyHint(k.Search, ui.ColorYellow),
		}
		if m.state.Ledger.HasNext() {
			hints = append(hints, m.keyHint(k.LoadMore, ui.ColorBlue))
		}
		if m.state.Selection.Len() > 0 {
			hints = append(hints, m.keyHint(k.ClearEnd, ui.ColorRed))
		}
		if m.state.Selection.Complete() {
			hints = append(hints, m.keyHint(k.ClearStart, ui.ColorRed), m.keyHint(k.Review, ui.ColorGreen))
		}
		hints = append(hints, m.keyHint(k.Back, ui.ColorYellow))
	case ScreenReviewDiff:
		hints = []string{
			ui.KeyBinding("↑↓", "Files", ui.ColorWhite),
			m.keyHint(k.Collapse, ui.ColorBlue),
			m.keyHint(k.Visible, ui.ColorBlue),
		}
		if _, ok := m.state.ReviewFiles(); ok {
			hints = append(hints, ui.KeyBinding("Enter", "Write changelog", ui.ColorGreen))
		} else {
			hints = append(hints, m.keyHint(k.Retry, ui.ColorYellow))
		}
		hints = append(hints, m.keyHint(k.Back, ui.ColorYellow))
	case ScreenCreateChangelog:
		hints = []string{
			m.keyHint(k.Tab, ui.ColorWhite),
			m.keyHint(k.Generate, ui.ColorMagenta),
			m.keyHint(k.Publish, ui.ColorGreen),
			m.keyHint(k.Back, ui.ColorYellow),
		}
	case ScreenPublished:
		hints = []string{
			m.keyHint(k.Copy, ui.ColorBlue),
			m.keyHint(k.Open, ui.ColorBlue),
			m.keyHint(k.New, ui.ColorGreen),
			m.keyHint(k.Quit, ui.ColorRed),
		}
	case ScreenUpdatePrompt:
		hints = []string{
			ui.KeyBinding("←→", "Select", ui.ColorWhite),
			ui.KeyBinding("y", "Update", ui.ColorGreen),
			ui.KeyBinding("n", "Skip", ui.ColorYellow),
			ui.KeyBinding("s", "Skip version", ui.ColorRed),
			ui.KeyBinding("Enter", "Confirm", ui.ColorGreen),
		}
	}

	var contentLines []string

	if e := m.state.Err; e != nil {
		contentLines = append(contentLines, ui.ErrorLine(e.Kind.String(), e.Message))
	}

	hotkeysLine := strings.Join(hints, "  ")

	// Add copy feedback if present
	if m.copyFeedback != "" {
		feedbackStyle := lipgloss.NewStyle().Foreground(ui.ColorGreen).Bold(true)
		if strings.HasPrefix(m.copyFeedback, "✗") {
			feedbackStyle = lipgloss.NewStyle().Foreground(ui.ColorRed).Bold(true)
		}
		if hotkeysLine != "" {
			hotkeysLine += "  │  "
		}
		hotkeysLine += feedbackStyle.Render(m.copyFeedback)
	}

	if hotkeysLine != "" {
		contentLines = append(contentLines, hotkeysLine)
	}

	if m.version != "" {
		versionStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)
		versionLine := fmt.Sprintf("Version: %s", update.VersionDisplay(m.version))
		if m.updateCheckInProgress {
			spinnerStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan)
			versionLine = fmt.Sprintf("%s  •  Checking updates %s", versionLine, spinnerStyle.Render(ui.Spinner(m.spinnerFrame)))
		}
		if m.updateNotice != "" {
			versionLine = fmt.Sprintf("%s  •  %s", versionLine, m.updateNotice)
		}

		targetWidth := max(lipgloss.Width(hotkeysLine), lipgloss.Width(versionLine))
		if targetWidth > 0 {
			versionLine = lipgloss.PlaceHorizontal(targetWidth, lipgloss.Center, versionLine)
		}
		contentLines = append(contentLines, versionStyle.Render(versionLine))
	}

	// Don't render an empty box if there is nothing to show
	if len(contentLines) == 0 {
		return ""
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorDarkGray).
		Padding(0, 1)

	return borderStyle.Render(strings.Join(contentLines, "\n"))
}
