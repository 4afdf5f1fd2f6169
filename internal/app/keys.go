package app

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Tab      key.Binding
	Back     key.Binding
	Enter    key.Binding
	Jump     key.Binding

	// choose-branch
	Base    key.Binding
	Head    key.Binding
	Compare key.Binding

	// choose-commits
	Select     key.Binding
	ClearEnd   key.Binding
	ClearStart key.Binding
	Diff       key.Binding
	LoadMore   key.Binding
	Search     key.Binding
	Review     key.Binding

	// review-diff
	Collapse key.Binding
	Visible  key.Binding
	Retry    key.Binding

	// create-changelog
	Generate key.Binding
	Publish  key.Binding

	// published
	Copy key.Binding
	Open key.Binding
	New  key.Binding

	// Meta
	CheckUpdate key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("Tab", "switch"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "continue"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "jump to step"),
		),
		Base: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "base"),
		),
		Head: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "head"),
		),
		Compare: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "compare"),
		),
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "select"),
		),
		ClearEnd: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "clear end"),
		),
		ClearStart: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "clear start"),
		),
		Diff: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "diff"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "load more"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Review: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("Enter", "review"),
		),
		Collapse: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "fold file"),
		),
		Visible: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "show/hide diff"),
		),
		Retry: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "retry"),
		),
		Generate: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("C-g", "generate"),
		),
		Publish: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "publish"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new changelog"),
		),
		CheckUpdate: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "check update"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// hint renders a binding for the status bar
func hint(b key.Binding) (string, string) {
	h := b.Help()
	return h.Key, h.Desc
}
