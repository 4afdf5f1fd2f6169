package wizard

import "github.com/wahlandcase/attuned.changelog/internal/models"

// Effect is work the reducer asks the caller to perform.
// Every effect carries the generation it was issued in; the result action
// must echo it back so stale results can be dropped.
type Effect interface {
	isEffect()
}

// ResolveRepo loads repository metadata, branches, tags and releases
type ResolveRepo struct {
	Gen   int
	Owner string
	Name  string
}

// FetchCommits loads one page of branch history
type FetchCommits struct {
	Gen    int
	Owner  string
	Name   string
	Branch string
	Page   int
}

// FetchAnchored loads the commit SHA and its first parent
type FetchAnchored struct {
	Gen   int
	Owner string
	Name  string
	SHA   string
}

// FetchDiff loads a comparison. Key is the cache key the result belongs to.
type FetchDiff struct {
	Gen   int
	Owner string
	Name  string
	Base  string
	Head  string
	Key   string
}

// Generate drafts changelog text
type Generate struct {
	Gen     int
	Repo    models.Repository
	Commits []models.Commit
	Files   []models.DiffFile
}

// Publish writes the changelog
type Publish struct {
	Gen       int
	Changelog models.Changelog
}

func (ResolveRepo) isEffect()   {}
func (FetchCommits) isEffect()  {}
func (FetchAnchored) isEffect() {}
func (FetchDiff) isEffect()     {}
func (Generate) isEffect()      {}
func (Publish) isEffect()       {}
