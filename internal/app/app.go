// Package app is the terminal front end of the changelog wizard. It owns
// the inputs and layout; every wizard transition goes through wizard.Reduce.
package app

import (
	"time"

	"github.com/wahlandcase/attuned.changelog/internal/config"
	"github.com/wahlandcase/attuned.changelog/internal/diffcache"
	"github.com/wahlandcase/attuned.changelog/internal/generate"
	"github.com/wahlandcase/attuned.changelog/internal/github"
	"github.com/wahlandcase/attuned.changelog/internal/publish"
	"github.com/wahlandcase/attuned.changelog/internal/ui"
	"github.com/wahlandcase/attuned.changelog/internal/update"
	"github.com/wahlandcase/attuned.changelog/internal/wizard"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Deps are the collaborators the wizard's effects run against
type Deps struct {
	Source    Source
	Releases  update.ReleaseSource
	Generator generate.Generator
	Writer    *publish.Writer
	History   *publish.History
}

// Options tune a Model
type Options struct {
	DryRun  bool
	Version string
	// RepoURL prefills the add-repo input
	RepoURL string
}

// Model is the main application state
type Model struct {
	// Configuration
	config *config.Config
	deps   Deps
	dryRun bool
	keys   keyMap

	// Wizard state; only changed through dispatch
	state wizard.State

	// Effects infrastructure shared by copies of the model
	diffs    *diffcache.Group
	renderer *ui.DiffRenderer

	// add-repo
	urlInput    textinput.Model
	recent      []string
	recentIndex int

	// choose-branch
	column       branchColumn
	branchCursor int
	refCursor    int
	base         string
	head         string

	// choose-commits
	commitCursor int
	searchInput  textinput.Model
	searching    bool

	// review-diff
	diffView    viewport.Model
	reviewKey   string
	fileCursor  int
	collapsed   map[string]bool
	fileOffsets []int

	// create-changelog
	titleInput textinput.Model
	bodyInput  textarea.Model
	field      draftField

	// UI state
	overlay      *Screen
	spinnerFrame int
	copyFeedback string
	shouldQuit   bool

	// Update state
	version               string          // Current app version
	updateAvailable       *github.Release // Non-nil if update available
	updateSelection       int             // 0=Update now, 1=Skip, 2=Skip this version
	updateCheckInProgress bool            // True while checking for updates (manual)
	updateNotice          string

	// Window size
	width  int
	height int
}

// New creates a new application model
func New(cfg *config.Config, deps Deps, opts Options) Model {
	url := textinput.New()
	url.Placeholder = "https://github.com/owner/repo"
	url.CharLimit = 200
	url.SetValue(opts.RepoURL)
	url.Focus()

	search := textinput.New()
	search.Placeholder = "message, author or sha"
	search.CharLimit = 100

	title := textinput.New()
	title.Placeholder = "Changelog title"
	title.CharLimit = 120

	body := textarea.New()
	body.Placeholder = "What changed in this range?"
	body.ShowLineNumbers = false
	body.CharLimit = 0

	m := Model{
		config:      cfg,
		deps:        deps,
		dryRun:      opts.DryRun,
		keys:        newKeyMap(),
		state:       wizard.New(),
		diffs:       &diffcache.Group{},
		renderer:    ui.NewDiffRenderer(cfg.Diff.Style, cfg.Diff.Highlight),
		urlInput:    url,
		searchInput: search,
		titleInput:  title,
		bodyInput:   body,
		diffView:    viewport.New(80, 20),
		collapsed:   make(map[string]bool),
		version:     opts.Version,
		width:       80,
		height:      24,
	}
	if deps.History != nil {
		m.recent = deps.History.RecentRepos(5)
	}
	m.recentIndex = -1
	return m
}

// State returns the wizard state, for callers that drive the model directly
func (m Model) State() wizard.State {
	return m.state
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		tickCmd(),
	}
	// Check for updates if enabled and 24h since last check
	if !m.dryRun && m.deps.Releases != nil && m.config.ShouldCheckForUpdate() {
		cmds = append(cmds, checkUpdateCmd(m.deps.Releases, m.version, m.config.Update.Repo, false))
	}
	return tea.Batch(cmds...)
}

// tickMsg is sent on each tick for animations
type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}
