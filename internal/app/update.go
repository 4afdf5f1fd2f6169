package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/wahlandcase/attuned.changelog/internal/diffcache"
	"github.com/wahlandcase/attuned.changelog/internal/models"
	"github.com/wahlandcase/attuned.changelog/internal/publish"
	"github.com/wahlandcase/attuned.changelog/internal/ui"
	"github.com/wahlandcase/attuned.changelog/internal/update"
	"github.com/wahlandcase/attuned.changelog/internal/wizard"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tickMsg:
		m.spinnerFrame = (m.spinnerFrame + 1) % len(ui.SpinnerFrames)
		return m, tickCmd()

	// Effect results come back as wizard actions
	case wizard.Action:
		return m.dispatch(msg)

	case updateCheckResult:
		return m.handleUpdateCheckResult(msg)

	case updateDownloadResult:
		return m.handleUpdateDownloadResult(msg)
	}

	// Cursor blink and other component messages
	return m.updateFocused(msg)
}

// dispatch runs a through the reducer and starts the effects it returns
func (m Model) dispatch(a wizard.Action) (Model, tea.Cmd) {
	if gen, ok := wizard.Generation(a); ok && gen != m.state.Gen {
		slog.Debug("dropping stale result",
			slog.String("action", fmt.Sprintf("%T", a)),
			slog.Int("gen", gen),
			slog.Int("current", m.state.Gen),
		)
	}
	m.recordPublished(a)

	prev := m.state
	next, effects := wizard.Reduce(m.state, a)
	m.state = next
	m.afterTransition(prev)

	cmds := make([]tea.Cmd, 0, len(effects))
	for _, e := range effects {
		cmds = append(cmds, m.runEffect(e))
	}
	return m, tea.Batch(cmds...)
}

// recordPublished adds a fresh publish result to the history
func (m Model) recordPublished(a wizard.Action) {
	res, ok := a.(wizard.ChangelogPublished)
	if !ok || res.Err != nil || res.Gen != m.state.Gen || m.dryRun || m.deps.History == nil {
		return
	}
	c := res.Changelog
	m.deps.History.Add(publish.Entry{
		Repository:  c.Repository.FullName,
		URL:         c.Repository.HTMLURL,
		Title:       c.Title,
		Path:        c.Path,
		PublishedAt: c.PublishedAt,
	})
}

// afterTransition keeps the inputs and cursors in step with the wizard
func (m *Model) afterTransition(prev wizard.State) {
	if m.state.Step != prev.Step {
		m.enterStep(prev.Step)
	}
	m.syncDraftInputs()
	if m.state.Step == wizard.StepReviewDiff {
		m.refreshDiffView()
	}
	m.clampCursors()
}

func (m *Model) enterStep(from wizard.Step) {
	m.urlInput.Blur()
	m.searchInput.Blur()
	m.searching = false
	m.titleInput.Blur()
	m.bodyInput.Blur()

	switch m.state.Step {
	case wizard.StepAddRepo:
		m.urlInput.Focus()
		if m.deps.History != nil {
			m.recent = m.deps.History.RecentRepos(5)
		}
		m.recentIndex = -1

	case wizard.StepChooseBranch:
		if from == wizard.StepAddRepo {
			m.column = columnBranches
			m.refCursor = 0
			m.base, m.head = "", ""
		}
		m.branchCursor = 0
		for i, b := range m.state.Catalog.Branches {
			if b.Name == m.state.Branch {
				m.branchCursor = i
			}
		}

	case wizard.StepChooseCommits:
		if from < wizard.StepChooseCommits {
			m.commitCursor = 0
			m.searchInput.SetValue("")
		}

	case wizard.StepReviewDiff:
		if m.state.Review != nil && m.state.Review.Key != m.reviewKey {
			m.reviewKey = m.state.Review.Key
			m.collapsed = make(map[string]bool)
			m.fileCursor = 0
			m.diffView.GotoTop()
		}

	case wizard.StepCreateChangelog:
		m.field = fieldTitle
		m.titleInput.Focus()
	}
}

func (m *Model) syncDraftInputs() {
	if m.titleInput.Value() != m.state.Draft.Title {
		m.titleInput.SetValue(m.state.Draft.Title)
	}
	if m.bodyInput.Value() != m.state.Draft.Body {
		m.bodyInput.SetValue(m.state.Draft.Body)
	}
}

func (m *Model) clampCursors() {
	clamp := func(v, n int) int {
		if v >= n {
			v = n - 1
		}
		return max(v, 0)
	}
	m.branchCursor = clamp(m.branchCursor, len(m.state.Catalog.Branches))
	m.refCursor = clamp(m.refCursor, len(m.refList()))
	m.commitCursor = clamp(m.commitCursor, len(m.commitRows()))
	files, _, _ := m.reviewFiles()
	m.fileCursor = clamp(m.fileCursor, len(files))
}

// resize fits the scrollable components to the window
func (m *Model) resize() {
	w := m.contentWidth()
	m.urlInput.Width = w - 16
	m.searchInput.Width = w - 16
	m.titleInput.Width = w - 12
	m.bodyInput.SetWidth(w - 8)
	m.bodyInput.SetHeight(max(m.availableHeight()-14, 4))
	m.diffView.Width = w - 4
	m.diffView.Height = max(m.availableHeight()-7, 5)
	if m.state.Step == wizard.StepReviewDiff {
		m.refreshDiffView()
	}
}

// refList lists branches followed by tags and releases with distinct names
func (m Model) refList() []models.Reference {
	return m.state.Catalog.References()
}

// commitRows returns the ledger positions matching the search query
func (m Model) commitRows() []int {
	return m.state.Ledger.Search(m.searchInput.Value())
}

// cursorCommit returns the commit under the cursor
func (m Model) cursorCommit() (models.Commit, bool) {
	rows := m.commitRows()
	if m.commitCursor < 0 || m.commitCursor >= len(rows) {
		return models.Commit{}, false
	}
	return m.state.Ledger.At(rows[m.commitCursor]), true
}

// reviewFiles returns the reviewed files after diff.exclude, the hidden count,
// and whether the comparison is loaded
func (m Model) reviewFiles() ([]models.DiffFile, int, bool) {
	files, ok := m.state.ReviewFiles()
	if !ok {
		return nil, 0, false
	}
	kept, hidden := diffcache.Filter(files, m.config.Diff.Exclude)
	return kept, hidden, true
}

func (m *Model) refreshDiffView() {
	files, _, ok := m.reviewFiles()
	m.fileOffsets = m.fileOffsets[:0]
	if !ok {
		m.diffView.SetContent("")
		return
	}
	var lines []string
	for i, f := range files {
		m.fileOffsets = append(m.fileOffsets, len(lines))
		open := !m.collapsed[f.Filename]
		lines = append(lines, ui.FileHeader(f, open, i == m.fileCursor))
		if open {
			lines = append(lines, m.renderer.Patch(f)...)
			lines = append(lines, "")
		}
	}
	m.diffView.SetContent(strings.Join(lines, "\n"))
}

// updateFocused forwards msg to whichever input has focus
func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.urlInput.Focused():
		m.urlInput, cmd = m.urlInput.Update(msg)
	case m.searchInput.Focused():
		m.searchInput, cmd = m.searchInput.Update(msg)
	case m.titleInput.Focused():
		m.titleInput, cmd = m.titleInput.Update(msg)
	case m.bodyInput.Focused():
		m.bodyInput, cmd = m.bodyInput.Update(msg)
	}
	return m, cmd
}

// handleKey processes keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear copy feedback on any keypress
	m.copyFeedback = ""

	// Global quit
	if key.Matches(msg, m.keys.ForceQuit) {
		m.shouldQuit = true
		return m, tea.Quit
	}

	switch m.screen() {
	case ScreenUpdatePrompt:
		return m.handleUpdatePromptKey(msg)
	case ScreenUpdating:
		return m, nil
	case ScreenAddRepo:
		return m.handleAddRepoKey(msg)
	case ScreenChooseBranch:
		return m.handleChooseBranchKey(msg)
	case ScreenChooseCommits:
		return m.handleChooseCommitsKey(msg)
	case ScreenReviewDiff:
		return m.handleReviewDiffKey(msg)
	case ScreenCreateChangelog:
		return m.handleCreateChangelogKey(msg)
	case ScreenPublished:
		return m.handlePublishedKey(msg)
	}
	return m, nil
}

// handleCommonKey covers keys shared by the list screens. ok is false when
// the key was not handled.
func (m Model) handleCommonKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shouldQuit = true
		return m, tea.Quit, true
	case key.Matches(msg, m.keys.Back):
		if m.state.Err != nil {
			next, cmd := m.dispatch(wizard.DismissError{})
			return next, cmd, true
		}
		next, cmd := m.dispatch(wizard.Back{})
		return next, cmd, true
	case key.Matches(msg, m.keys.Jump):
		step := wizard.Step(int(msg.Runes[0] - '1'))
		next, cmd := m.dispatch(wizard.BackTo{Step: step})
		return next, cmd, true
	}
	return m, nil, false
}

func (m Model) handleAddRepoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		return m.dispatch(wizard.SubmitRepoURL{URL: strings.TrimSpace(m.urlInput.Value())})
	case msg.Type == tea.KeyEsc:
		if m.state.Err != nil {
			return m.dispatch(wizard.DismissError{})
		}
		m.shouldQuit = true
		return m, tea.Quit
	case msg.Type == tea.KeyUp, msg.Type == tea.KeyDown:
		if len(m.recent) == 0 {
			return m, nil
		}
		if msg.Type == tea.KeyUp {
			m.recentIndex = (m.recentIndex - 1 + len(m.recent)) % len(m.recent)
		} else {
			m.recentIndex = (m.recentIndex + 1) % len(m.recent)
		}
		m.urlInput.SetValue(m.recent[m.recentIndex])
		m.urlInput.CursorEnd()
		return m, nil
	case key.Matches(msg, m.keys.CheckUpdate):
		if m.deps.Releases == nil || m.updateCheckInProgress {
			return m, nil
		}
		m.updateCheckInProgress = true
		return m, checkUpdateCmd(m.deps.Releases, m.version, m.config.Update.Repo, true)
	}

	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

func (m Model) handleChooseBranchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, ok := m.handleCommonKey(msg); ok {
		return next, cmd
	}

	refs := m.refList()
	switch {
	case key.Matches(msg, m.keys.Tab):
		if m.column == columnBranches {
			m.column = columnRefs
		} else {
			m.column = columnBranches
		}
	case key.Matches(msg, m.keys.Up):
		if m.column == columnBranches && m.branchCursor > 0 {
			m.branchCursor--
		} else if m.column == columnRefs && m.refCursor > 0 {
			m.refCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.column == columnBranches && m.branchCursor < len(m.state.Catalog.Branches)-1 {
			m.branchCursor++
		} else if m.column == columnRefs && m.refCursor < len(refs)-1 {
			m.refCursor++
		}
	case key.Matches(msg, m.keys.Select):
		if m.column == columnBranches && m.branchCursor < len(m.state.Catalog.Branches) {
			return m.dispatch(wizard.ChooseBranch{Name: m.state.Catalog.Branches[m.branchCursor].Name})
		}
	case key.Matches(msg, m.keys.Enter):
		if m.column == columnRefs {
			return m.dispatch(wizard.CompareRefs{Base: m.base, Head: m.head})
		}
		if m.branchCursor < len(m.state.Catalog.Branches) {
			m, _ = m.dispatch(wizard.ChooseBranch{Name: m.state.Catalog.Branches[m.branchCursor].Name})
		}
		return m.dispatch(wizard.ConfirmBranch{})
	case key.Matches(msg, m.keys.Base):
		if m.column == columnRefs && m.refCursor < len(refs) {
			m.base = refs[m.refCursor].Name
		}
	case key.Matches(msg, m.keys.Head):
		if m.column == columnRefs && m.refCursor < len(refs) {
			m.head = refs[m.refCursor].Name
		}
	case key.Matches(msg, m.keys.Compare):
		return m.dispatch(wizard.CompareRefs{Base: m.base, Head: m.head})
	}
	return m, nil
}

func (m Model) handleChooseCommitsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.Type {
		case tea.KeyEnter:
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		case tea.KeyEsc:
			m.searching = false
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			m.commitCursor = 0
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.commitCursor = 0
		return m, cmd
	}

	if next, cmd, ok := m.handleCommonKey(msg); ok {
		return next, cmd
	}

	rows := m.commitRows()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.commitCursor > 0 {
			m.commitCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.commitCursor < len(rows)-1 {
			m.commitCursor++
		}
	case key.Matches(msg, m.keys.PageUp):
		m.commitCursor = max(m.commitCursor-10, 0)
	case key.Matches(msg, m.keys.PageDown):
		m.commitCursor = max(min(m.commitCursor+10, len(rows)-1), 0)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, nil
	case key.Matches(msg, m.keys.Select):
		if c, ok := m.cursorCommit(); ok {
			return m.dispatch(wizard.SelectCommit{SHA: c.SHA})
		}
	case key.Matches(msg, m.keys.ClearEnd):
		return m.dispatch(wizard.ClearEnd{})
	case key.Matches(msg, m.keys.ClearStart):
		return m.dispatch(wizard.ClearStart{})
	case key.Matches(msg, m.keys.Diff):
		if c, ok := m.cursorCommit(); ok {
			return m.dispatch(wizard.ToggleCommitDiff{SHA: c.SHA})
		}
	case key.Matches(msg, m.keys.LoadMore):
		return m.dispatch(wizard.LoadMoreCommits{})
	case key.Matches(msg, m.keys.Review):
		return m.dispatch(wizard.ReviewRange{})
	}
	return m, nil
}

func (m Model) handleReviewDiffKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, ok := m.handleCommonKey(msg); ok {
		return next, cmd
	}

	files, _, _ := m.reviewFiles()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.fileCursor > 0 {
			m.fileCursor--
			m.refreshDiffView()
			m.scrollToFile()
		}
	case key.Matches(msg, m.keys.Down):
		if m.fileCursor < len(files)-1 {
			m.fileCursor++
			m.refreshDiffView()
			m.scrollToFile()
		}
	case key.Matches(msg, m.keys.PageUp):
		m.diffView.HalfPageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.diffView.HalfPageDown()
	case key.Matches(msg, m.keys.Collapse):
		if m.fileCursor < len(files) {
			name := files[m.fileCursor].Filename
			m.collapsed[name] = !m.collapsed[name]
			m.refreshDiffView()
			m.scrollToFile()
		}
	case key.Matches(msg, m.keys.Visible):
		if m.state.Review != nil {
			return m.dispatch(wizard.ToggleDiff{Key: m.state.Review.Key})
		}
	case key.Matches(msg, m.keys.Retry):
		return m.dispatch(wizard.RetryDiff{})
	case key.Matches(msg, m.keys.Enter):
		return m.dispatch(wizard.StartChangelog{})
	}
	return m, nil
}

func (m *Model) scrollToFile() {
	if m.fileCursor < len(m.fileOffsets) {
		m.diffView.SetYOffset(m.fileOffsets[m.fileCursor])
	}
}

func (m Model) handleCreateChangelogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.state.Err != nil {
			return m.dispatch(wizard.DismissError{})
		}
		return m.dispatch(wizard.Back{})
	case key.Matches(msg, m.keys.Generate):
		return m.dispatch(wizard.GenerateDraft{})
	case key.Matches(msg, m.keys.Publish):
		return m.dispatch(wizard.PublishDraft{})
	case key.Matches(msg, m.keys.Tab), msg.Type == tea.KeyEnter && m.field == fieldTitle:
		m.focusField(1 - m.field)
		return m, nil
	}

	var cmd tea.Cmd
	if m.field == fieldTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.bodyInput, cmd = m.bodyInput.Update(msg)
	}
	draft := models.Draft{Title: m.titleInput.Value(), Body: m.bodyInput.Value()}
	if draft == m.state.Draft {
		return m, cmd
	}
	next, effects := m.dispatch(wizard.EditDraft{Draft: draft})
	return next, tea.Batch(cmd, effects)
}

func (m *Model) focusField(f draftField) {
	m.field = f
	if f == fieldTitle {
		m.bodyInput.Blur()
		m.titleInput.Focus()
	} else {
		m.titleInput.Blur()
		m.bodyInput.Focus()
	}
}

func (m Model) handlePublishedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, ok := m.handleCommonKey(msg); ok {
		return next, cmd
	}

	published := m.state.Published
	switch {
	case key.Matches(msg, m.keys.Copy):
		if published == nil {
			return m, nil
		}
		if err := copyToClipboard(published.Path); err == nil {
			m.copyFeedback = "✓ Copied path!"
		} else {
			m.copyFeedback = "✗ Copy failed"
		}
	case key.Matches(msg, m.keys.Open):
		if published != nil && !m.dryRun {
			if err := openURL(published.Path); err != nil {
				m.copyFeedback = "✗ Open failed"
			}
		}
	case key.Matches(msg, m.keys.New):
		return m.dispatch(wizard.BackTo{Step: wizard.StepChooseBranch})
	}
	return m, nil
}

func (m Model) handleUpdateCheckResult(msg updateCheckResult) (tea.Model, tea.Cmd) {
	m.updateCheckInProgress = false
	m.config.RecordUpdateCheck()
	if err := m.config.Save(); err != nil {
		slog.Warn("save config", slog.Any("err", err))
	}

	if msg.err != nil {
		slog.Warn("update check failed", slog.Any("err", msg.err))
		if msg.manual {
			m.copyFeedback = "✗ Update check failed"
		}
		return m, nil
	}
	if msg.release == nil {
		if msg.manual {
			m.copyFeedback = "✓ Up to date"
		}
		return m, nil
	}
	if !msg.manual && msg.release.TagName == m.config.Update.SkippedVersion {
		return m, nil
	}

	m.updateAvailable = msg.release
	m.updateSelection = 0
	s := ScreenUpdatePrompt
	m.overlay = &s
	return m, nil
}

func (m Model) handleUpdatePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	choice := -1
	switch msg.String() {
	case "left", "h":
		m.updateSelection = (m.updateSelection + 2) % 3
	case "right", "l", "tab":
		m.updateSelection = (m.updateSelection + 1) % 3
	case "y":
		choice = 0
	case "n", "esc":
		choice = 1
	case "s":
		choice = 2
	case "enter":
		choice = m.updateSelection
	}

	switch choice {
	case 0:
		s := ScreenUpdating
		m.overlay = &s
		return m, downloadUpdateCmd(m.deps.Releases, m.updateAvailable, m.config.Update.Repo)
	case 1:
		m.overlay = nil
	case 2:
		m.config.Update.SkippedVersion = m.updateAvailable.TagName
		if err := m.config.Save(); err != nil {
			slog.Warn("save config", slog.Any("err", err))
		}
		m.overlay = nil
	}
	return m, nil
}

func (m Model) handleUpdateDownloadResult(msg updateDownloadResult) (tea.Model, tea.Cmd) {
	m.overlay = nil
	if !msg.success {
		slog.Warn("update failed", slog.Any("err", msg.err))
		m.copyFeedback = "✗ Update failed"
		return m, nil
	}
	m.updateAvailable = nil
	m.updateNotice = fmt.Sprintf("Updated to %s. Restart attcl to use it.", update.VersionDisplay(msg.version))
	return m, nil
}
