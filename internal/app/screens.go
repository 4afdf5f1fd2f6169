package app

import "github.com/wahlandcase/attuned.changelog/internal/wizard"

// Screen represents the current view in the application
type Screen int

const (
	ScreenAddRepo Screen = iota
	ScreenChooseBranch
	ScreenChooseCommits
	ScreenReviewDiff
	ScreenCreateChangelog
	ScreenPublished
	ScreenUpdatePrompt
	ScreenUpdating
)

func (s Screen) String() string {
	names := []string{
		"AddRepo",
		"ChooseBranch",
		"ChooseCommits",
		"ReviewDiff",
		"CreateChangelog",
		"Published",
		"UpdatePrompt",
		"Updating",
	}
	if int(s) >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// screenFor maps a wizard step to the screen that shows it
func screenFor(step wizard.Step) Screen {
	switch step {
	case wizard.StepChooseBranch:
		return ScreenChooseBranch
	case wizard.StepChooseCommits:
		return ScreenChooseCommits
	case wizard.StepReviewDiff:
		return ScreenReviewDiff
	case wizard.StepCreateChangelog:
		return ScreenCreateChangelog
	case wizard.StepPublished:
		return ScreenPublished
	default:
		return ScreenAddRepo
	}
}

// screen returns the visible screen: an update overlay or the wizard step
func (m Model) screen() Screen {
	if m.overlay != nil {
		return *m.overlay
	}
	return screenFor(m.state.Step)
}

// branchColumn is the active list on the choose-branch screen
type branchColumn int

const (
	columnBranches branchColumn = iota
	columnRefs
)

// draftField is the focused input on the create-changelog screen
type draftField int

const (
	fieldTitle draftField = iota
	fieldBody
)
