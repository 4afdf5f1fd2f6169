package wizard

// Step is a screen of the wizard
type Step int

const (
	StepAddRepo Step = iota
	StepChooseBranch
	StepChooseCommits
	StepReviewDiff
	StepCreateChangelog
	StepPublished
)

// Steps lists every step in order
var Steps = []Step{
	StepAddRepo,
	StepChooseBranch,
	StepChooseCommits,
	StepReviewDiff,
	StepCreateChangelog,
	StepPublished,
}

func (s Step) String() string {
	names := []string{
		"add-repo",
		"choose-branch",
		"choose-commits",
		"review-diff",
		"create-changelog",
		"published",
	}
	if int(s) >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// Title is the human label used in the breadcrumb
func (s Step) Title() string {
	titles := []string{
		"Add Repo",
		"Choose Branch",
		"Choose Commits",
		"Review Diff",
		"Create Changelog",
		"Published",
	}
	if int(s) >= 0 && int(s) < len(titles) {
		return titles[s]
	}
	return "Unknown"
}
