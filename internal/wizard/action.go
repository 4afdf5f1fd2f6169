package wizard

import (
	"github.com/wahlandcase/attuned.changelog/internal/catalog"
	"github.com/wahlandcase/attuned.changelog/internal/models"
)

// Action is an input to Reduce: a user intent or an effect result
type Action interface {
	isAction()
}

// User intents

type SubmitRepoURL struct{ URL string }
type ChooseBranch struct{ Name string }
type ConfirmBranch struct{}
type CompareRefs struct{ Base, Head string }
type LoadMoreCommits struct{}
type SelectCommit struct{ SHA string }
type ClearEnd struct{}
type ClearStart struct{}
type ToggleCommitDiff struct{ SHA string }
type ReviewRange struct{}
type ToggleDiff struct{ Key string }
type RetryDiff struct{}
type StartChangelog struct{}
type EditDraft struct{ Draft models.Draft }
type GenerateDraft struct{}
type PublishDraft struct{}
type Back struct{}
type BackTo struct{ Step Step }
type DismissError struct{}

// Effect results. Gen must be copied from the effect that produced them.

type RepoResolved struct {
	Gen     int
	Repo    models.Repository
	Catalog catalog.Catalog
	Err     error
}

type CommitsLoaded struct {
	Gen  int
	Page models.CommitPage
	Err  error
}

type AnchoredLoaded struct {
	Gen int
	SHA string
	// Parent is the first parent of SHA, empty for a root commit
	Parent  string
	Commits []models.Commit
	Err     error
}

type DiffLoaded struct {
	Gen   int
	Key   string
	Files []models.DiffFile
	Err   error
}

type DraftGenerated struct {
	Gen   int
	Draft models.Draft
	Err   error
}

type ChangelogPublished struct {
	Gen       int
	Changelog models.Changelog
	Err       error
}

func (SubmitRepoURL) isAction()    {}
func (ChooseBranch) isAction()     {}
func (ConfirmBranch) isAction()    {}
func (CompareRefs) isAction()      {}
func (LoadMoreCommits) isAction()  {}
func (SelectCommit) isAction()     {}
func (ClearEnd) isAction()         {}
func (ClearStart) isAction()       {}
func (ToggleCommitDiff) isAction() {}
func (ReviewRange) isAction()      {}
func (ToggleDiff) isAction()       {}
func (RetryDiff) isAction()        {}
func (StartChangelog) isAction()   {}
func (EditDraft) isAction()        {}
func (GenerateDraft) isAction()    {}
func (PublishDraft) isAction()     {}
func (Back) isAction()             {}
func (BackTo) isAction()           {}
func (DismissError) isAction()     {}

func (RepoResolved) isAction()       {}
func (CommitsLoaded) isAction()      {}
func (AnchoredLoaded) isAction()     {}
func (DiffLoaded) isAction()         {}
func (DraftGenerated) isAction()     {}
func (ChangelogPublished) isAction() {}

// Generation returns the generation a result action was issued in.
// ok is false for user intents.
func Generation(a Action) (gen int, ok bool) {
	switch a := a.(type) {
	case RepoResolved:
		return a.Gen, true
	case CommitsLoaded:
		return a.Gen, true
	case AnchoredLoaded:
		return a.Gen, true
	case DiffLoaded:
		return a.Gen, true
	case DraftGenerated:
		return a.Gen, true
	case ChangelogPublished:
		return a.Gen, true
	}
	return 0, false
}
