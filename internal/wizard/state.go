// Package wizard holds the changelog wizard state and its transitions.
//
// Reduce is the only way to change State. It never performs I/O; work is
// returned as Effects whose results come back as Actions.
package wizard

import (
	"maps"

	"github.com/wahlandcase/attuned.changelog/internal/catalog"
	"github.com/wahlandcase/attuned.changelog/internal/diffcache"
	"github.com/wahlandcase/attuned.changelog/internal/ledger"
	"github.com/wahlandcase/attuned.changelog/internal/models"
	"github.com/wahlandcase/attuned.changelog/internal/selection"
)

// Op is an operation that blocks re-entrant triggering while in flight
type Op uint8

const (
	OpResolve Op = 1 << iota
	OpCommits
	OpGenerate
	OpPublish
)

// RefPair is a branch/tag comparison chosen on the branch step
type RefPair struct {
	Base string
	Head string
}

// Review is the comparison shown on the review step
type Review struct {
	Key  string
	Base string
	Head string
}

// State is the whole wizard. Treat it as a value: Reduce returns a new one.
type State struct {
	Step Step
	// Gen increases whenever results of earlier requests become stale
	Gen int

	// add-repo
	URL     string
	Repo    *models.Repository
	Catalog catalog.Catalog

	// choose-branch
	Branch  string
	Compare *RefPair

	// choose-commits
	Ledger    ledger.Ledger
	Selection selection.Selection
	// Parents records first parents learned from anchored fetches, by sha
	Parents map[string]string

	// review-diff
	Diffs  diffcache.Cache
	Review *Review

	// create-changelog
	Draft models.Draft

	// published
	Published *models.Changelog

	Loading Op
	// Pending diff keys and anchored fetches (by sha) in flight
	PendingDiffs   map[string]bool
	PendingAnchors map[string]bool

	Err *Error
}

// New returns the initial state
func New() State {
	return State{Step: StepAddRepo}
}

// IsLoading reports whether op is in flight
func (s State) IsLoading(op Op) bool {
	return s.Loading&op != 0
}

// DiffPending reports whether key is being fetched
func (s State) DiffPending(key string) bool {
	return s.PendingDiffs[key]
}

// AnchorPending reports whether an anchored fetch for sha is in flight
func (s State) AnchorPending(sha string) bool {
	return s.PendingAnchors[sha]
}

// previousCommit returns the commit sha is diffed against: its older
// neighbor in the ledger, or the parent learned from an anchored fetch when
// the ledger order has none
func (s State) previousCommit(sha string) (string, bool) {
	if prev, ok := s.Ledger.OlderNeighbor(sha); ok {
		return prev.SHA, true
	}
	parent, ok := s.Parents[sha]
	return parent, ok
}

// CommitDiffKey returns the cache key for sha against its previous commit
func (s State) CommitDiffKey(sha string) (string, bool) {
	prev, ok := s.previousCommit(sha)
	if !ok {
		return "", false
	}
	return diffcache.Key(prev, sha), true
}

// ReviewFiles returns the files of the reviewed comparison, if loaded
func (s State) ReviewFiles() ([]models.DiffFile, bool) {
	if s.Review == nil {
		return nil, false
	}
	return s.Diffs.Get(s.Review.Key)
}

// RangeCommits returns the commits covered by the current review.
// Ref comparisons have no ledger range and return nil.
func (s State) RangeCommits() []models.Commit {
	if s.Compare != nil || !s.Selection.Complete() {
		return nil
	}
	return s.Ledger.Between(s.Selection.End, s.Selection.Start)
}

// Reachable lists the steps on the current path up to and including Step.
// A ref comparison skips choose-commits.
func (s State) Reachable() []Step {
	var out []Step
	for _, st := range Steps {
		if st > s.Step {
			break
		}
		if st == StepChooseCommits && s.Compare != nil {
			continue
		}
		out = append(out, st)
	}
	return out
}

// previous returns the step before the current one on the current path
func (s State) previous() (Step, bool) {
	path := s.Reachable()
	if len(path) < 2 {
		return 0, false
	}
	return path[len(path)-2], true
}

func (s State) withPendingDiff(key string, v bool) State {
	m := maps.Clone(s.PendingDiffs)
	if m == nil {
		m = make(map[string]bool)
	}
	if v {
		m[key] = true
	} else {
		delete(m, key)
	}
	s.PendingDiffs = m
	return s
}

func (s State) withParent(sha, parent string) State {
	m := maps.Clone(s.Parents)
	if m == nil {
		m = make(map[string]string)
	}
	m[sha] = parent
	s.Parents = m
	return s
}

func (s State) withPendingAnchor(sha string, v bool) State {
	m := maps.Clone(s.PendingAnchors)
	if m == nil {
		m = make(map[string]bool)
	}
	if v {
		m[sha] = true
	} else {
		delete(m, sha)
	}
	s.PendingAnchors = m
	return s
}
