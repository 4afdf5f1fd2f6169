package wizard

import (
	"slices"

	"github.com/wahlandcase/attuned.changelog/internal/catalog"
	"github.com/wahlandcase/attuned.changelog/internal/diffcache"
	"github.com/wahlandcase/attuned.changelog/internal/github"
	"github.com/wahlandcase/attuned.changelog/internal/ledger"
	"github.com/wahlandcase/attuned.changelog/internal/models"
	"github.com/wahlandcase/attuned.changelog/internal/selection"
)

// Reduce applies a to s. Results from an older generation are ignored.
// Actions that do not apply to the current step leave s unchanged.
func Reduce(s State, a Action) (State, []Effect) {
	if gen, ok := Generation(a); ok && gen != s.Gen {
		return s, nil
	}

	switch a := a.(type) {
	case SubmitRepoURL:
		return s.submitRepoURL(a.URL)
	case RepoResolved:
		return s.repoResolved(a), nil

	case ChooseBranch:
		if s.Step == StepChooseBranch && !s.IsLoading(OpCommits) && s.isBranch(a.Name) {
			s.Branch = a.Name
		}
		return s, nil
	case ConfirmBranch:
		return s.confirmBranch()
	case CompareRefs:
		return s.compareRefs(a.Base, a.Head)
	case CommitsLoaded:
		return s.commitsLoaded(a), nil
	case LoadMoreCommits:
		return s.loadMore()

	case SelectCommit:
		if s.Step == StepChooseCommits {
			s.Selection = s.Selection.Select(a.SHA, s.Ledger.IndexOf)
		}
		return s, nil
	case ClearEnd:
		if s.Step == StepChooseCommits {
			s.Selection = s.Selection.ClearEnd()
		}
		return s, nil
	case ClearStart:
		if s.Step == StepChooseCommits {
			s.Selection = s.Selection.ClearStart()
		}
		return s, nil
	case ToggleCommitDiff:
		return s.toggleCommitDiff(a.SHA)
	case AnchoredLoaded:
		return s.anchoredLoaded(a)
	case ReviewRange:
		return s.reviewRange()

	case DiffLoaded:
		s = s.withPendingDiff(a.Key, false)
		if a.Err != nil {
			s.Err = classify(a.Err)
			return s, nil
		}
		s.Diffs = s.Diffs.Put(a.Key, a.Files)
		return s, nil
	case ToggleDiff:
		s.Diffs = s.Diffs.Toggle(a.Key)
		return s, nil
	case RetryDiff:
		if s.Step != StepReviewDiff || s.Review == nil {
			return s, nil
		}
		s.Err = nil
		return s.requestDiff(s.Review.Base, s.Review.Head, s.Review.Key)

	case StartChangelog:
		if _, ok := s.ReviewFiles(); s.Step == StepReviewDiff && ok {
			s.Step = StepCreateChangelog
			s.Err = nil
		}
		return s, nil
	case EditDraft:
		if s.Step == StepCreateChangelog {
			s.Draft = a.Draft
		}
		return s, nil
	case GenerateDraft:
		return s.generateDraft()
	case DraftGenerated:
		s.Loading &^= OpGenerate
		if a.Err != nil {
			s.Err = classify(a.Err)
			return s, nil
		}
		s.Draft = a.Draft
		return s, nil
	case PublishDraft:
		return s.publishDraft()
	case ChangelogPublished:
		s.Loading &^= OpPublish
		if a.Err != nil {
			s.Err = classify(a.Err)
			return s, nil
		}
		published := a.Changelog
		s.Published = &published
		s.Step = StepPublished
		return s, nil

	case Back:
		if prev, ok := s.previous(); ok {
			return s.backTo(prev), nil
		}
		return s, nil
	case BackTo:
		if a.Step < s.Step && slices.Contains(s.Reachable(), a.Step) {
			return s.backTo(a.Step), nil
		}
		return s, nil
	case DismissError:
		s.Err = nil
		return s, nil
	}
	return s, nil
}

func (s State) submitRepoURL(url string) (State, []Effect) {
	if s.Step != StepAddRepo || s.IsLoading(OpResolve) {
		return s, nil
	}
	s.URL = url
	owner, name, err := github.ParseRepoURL(url)
	if err != nil {
		s.Err = classify(err)
		return s, nil
	}
	s.Gen++
	s.Loading |= OpResolve
	s.Err = nil
	return s, []Effect{ResolveRepo{Gen: s.Gen, Owner: owner, Name: name}}
}

func (s State) repoResolved(a RepoResolved) State {
	s.Loading &^= OpResolve
	if a.Err != nil {
		s.Err = classify(a.Err)
		return s
	}
	repo := a.Repo
	s.Repo = &repo
	s.Catalog = a.Catalog
	s.Branch = repo.DefaultBranch
	// Each repository starts with an empty diff cache
	s.Diffs = diffcache.Cache{}
	s.Step = StepChooseBranch
	s.Err = nil
	return s
}

func (s State) isBranch(name string) bool {
	for _, b := range s.Catalog.Branches {
		if b.Name == name {
			return true
		}
	}
	return false
}

func (s State) confirmBranch() (State, []Effect) {
	if s.Step != StepChooseBranch || s.Repo == nil || s.Branch == "" || s.IsLoading(OpCommits) {
		return s, nil
	}
	s.Loading |= OpCommits
	s.Err = nil
	return s, []Effect{FetchCommits{Gen: s.Gen, Owner: s.Repo.Owner, Name: s.Repo.Name, Branch: s.Branch, Page: 1}}
}

func (s State) commitsLoaded(a CommitsLoaded) State {
	s.Loading &^= OpCommits
	if a.Err != nil {
		s.Err = classify(a.Err)
		return s
	}
	if s.Step == StepChooseBranch {
		s.Ledger = ledger.Ledger{}.Merge(a.Page.Commits).WithPage(a.Page.Page, a.Page.HasNext)
		s.Parents = nil
		s.Selection = selection.Selection{}
		s.Step = StepChooseCommits
		return s
	}
	s.Ledger = s.Ledger.Merge(a.Page.Commits).WithPage(a.Page.Page, a.Page.HasNext)
	return s
}

func (s State) loadMore() (State, []Effect) {
	if s.Step != StepChooseCommits || !s.Ledger.HasNext() || s.IsLoading(OpCommits) {
		return s, nil
	}
	s.Loading |= OpCommits
	s.Err = nil
	return s, []Effect{FetchCommits{Gen: s.Gen, Owner: s.Repo.Owner, Name: s.Repo.Name, Branch: s.Branch, Page: s.Ledger.Page() + 1}}
}

// resolve maps a ref name to its commit id so equal ranges share a cache key
func resolve(c catalog.Catalog, name string) string {
	if sha, ok := c.Resolve(name); ok {
		return sha
	}
	return name
}

func (s State) compareRefs(base, head string) (State, []Effect) {
	if s.Step != StepChooseBranch || s.Repo == nil || s.IsLoading(OpCommits) {
		return s, nil
	}
	if base == "" || head == "" || base == head || !s.Catalog.Has(base) || !s.Catalog.Has(head) {
		s.Err = validation("Choose two different references to compare.")
		return s, nil
	}
	b, h := resolve(s.Catalog, base), resolve(s.Catalog, head)
	if b == h {
		s.Err = validation("Both references point to the same commit.")
		return s, nil
	}
	key := diffcache.Key(b, h)
	s.Compare = &RefPair{Base: base, Head: head}
	s.Review = &Review{Key: key, Base: b, Head: h}
	s.Step = StepReviewDiff
	s.Err = nil
	return s.requestDiff(b, h, key)
}

func (s State) reviewRange() (State, []Effect) {
	if s.Step != StepChooseCommits || !s.Selection.Complete() {
		return s, nil
	}
	base, head := s.Selection.Start, s.Selection.End
	key := diffcache.Key(base, head)
	s.Compare = nil
	s.Review = &Review{Key: key, Base: base, Head: head}
	s.Step = StepReviewDiff
	s.Err = nil
	return s.requestDiff(base, head, key)
}

// requestDiff shows a cached comparison or asks for it once
func (s State) requestDiff(base, head, key string) (State, []Effect) {
	if s.Diffs.Has(key) {
		s.Diffs = s.Diffs.SetVisible(key, true)
		return s, nil
	}
	if s.DiffPending(key) {
		return s, nil
	}
	s = s.withPendingDiff(key, true)
	return s, []Effect{FetchDiff{Gen: s.Gen, Owner: s.Repo.Owner, Name: s.Repo.Name, Base: base, Head: head, Key: key}}
}

func (s State) toggleCommitDiff(sha string) (State, []Effect) {
	if s.Step != StepChooseCommits || s.Ledger.IndexOf(sha) < 0 {
		return s, nil
	}
	if key, ok := s.CommitDiffKey(sha); ok {
		if s.Diffs.Has(key) {
			s.Diffs = s.Diffs.Toggle(key)
			return s, nil
		}
		prev, _ := s.previousCommit(sha)
		s.Err = nil
		return s.requestDiff(prev, sha, key)
	}
	if s.AnchorPending(sha) {
		return s, nil
	}
	s = s.withPendingAnchor(sha, true)
	s.Err = nil
	return s, []Effect{FetchAnchored{Gen: s.Gen, Owner: s.Repo.Owner, Name: s.Repo.Name, SHA: sha}}
}

func (s State) anchoredLoaded(a AnchoredLoaded) (State, []Effect) {
	s = s.withPendingAnchor(a.SHA, false)
	if a.Err != nil {
		s.Err = classify(a.Err)
		return s, nil
	}
	s.Ledger = s.Ledger.Merge(a.Commits)
	// A parent dated after its child (rebased history) sorts ahead of it
	if a.Parent != "" {
		if _, ok := s.Ledger.OlderNeighbor(a.SHA); !ok {
			s = s.withParent(a.SHA, a.Parent)
		}
	}
	prev, ok := s.previousCommit(a.SHA)
	if !ok {
		s.Err = validation("This is the first commit; there is nothing earlier to compare against.")
		return s, nil
	}
	return s.requestDiff(prev, a.SHA, diffcache.Key(prev, a.SHA))
}

func (s State) generateDraft() (State, []Effect) {
	if s.Step != StepCreateChangelog || s.IsLoading(OpGenerate) {
		return s, nil
	}
	files, _ := s.ReviewFiles()
	s.Loading |= OpGenerate
	s.Err = nil
	return s, []Effect{Generate{Gen: s.Gen, Repo: *s.Repo, Commits: s.RangeCommits(), Files: files}}
}

func (s State) publishDraft() (State, []Effect) {
	if s.Step != StepCreateChangelog || s.IsLoading(OpPublish) {
		return s, nil
	}
	if !s.Draft.Ready() {
		s.Err = validation("A changelog needs both a title and content.")
		return s, nil
	}
	base, head := s.Review.Base, s.Review.Head
	if s.Compare != nil {
		base, head = s.Compare.Base, s.Compare.Head
	}
	s.Loading |= OpPublish
	s.Err = nil
	return s, []Effect{Publish{Gen: s.Gen, Changelog: models.Changelog{
		Draft:      s.Draft,
		Repository: *s.Repo,
		Base:       base,
		Head:       head,
		Commits:    s.RangeCommits(),
	}}}
}

// backTo moves to target and clears everything produced by leaving target.
// In-flight requests become stale.
func (s State) backTo(target Step) State {
	s.Gen++
	s.Loading = 0
	s.PendingDiffs = nil
	s.PendingAnchors = nil
	s.Err = nil

	if target <= StepAddRepo {
		s.Repo = nil
		s.Catalog = catalog.Catalog{}
		s.Branch = ""
		s.Diffs = diffcache.Cache{}
	}
	if target <= StepChooseBranch {
		s.Compare = nil
		s.Ledger = ledger.Ledger{}
		s.Parents = nil
		s.Selection = selection.Selection{}
	}
	if target <= StepChooseCommits {
		s.Review = nil
	}
	if target <= StepReviewDiff {
		s.Draft = models.Draft{}
	}
	if target <= StepCreateChangelog {
		s.Published = nil
	}
	s.Step = target
	return s
}
