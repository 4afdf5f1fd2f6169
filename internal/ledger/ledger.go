// Package ledger keeps the commits loaded for a branch, newest first.
package ledger

import (
	"sort"
	"strings"

	"github.com/wahlandcase/attuned.changelog/internal/models"
)

// Ledger is an ordered, de-duplicated list of commits.
// Methods never mutate the receiver; changes return a new Ledger.
type Ledger struct {
	commits []models.Commit
	index   map[string]int
	page    int
	hasNext bool
}

// Merge adds commits whose ids are not yet present and re-sorts by author
// date, newest first. Ties keep insertion order.
func (l Ledger) Merge(batch []models.Commit) Ledger {
	merged := make([]models.Commit, len(l.commits), len(l.commits)+len(batch))
	copy(merged, l.commits)

	seen := make(map[string]bool, len(l.commits)+len(batch))
	for _, c := range l.commits {
		seen[c.SHA] = true
	}
	added := false
	for _, c := range batch {
		if seen[c.SHA] {
			continue
		}
		seen[c.SHA] = true
		merged = append(merged, c)
		added = true
	}
	if !added {
		return l
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})

	index := make(map[string]int, len(merged))
	for i, c := range merged {
		index[c.SHA] = i
	}
	l.commits = merged
	l.index = index
	return l
}

// WithPage records the last fetched page and whether another exists
func (l Ledger) WithPage(page int, hasNext bool) Ledger {
	l.page = page
	l.hasNext = hasNext
	return l
}

// Page returns the last fetched page (0 before any fetch)
func (l Ledger) Page() int { return l.page }

// HasNext reports whether the upstream advertised a further page
func (l Ledger) HasNext() bool { return l.hasNext }

// Len returns the number of commits
func (l Ledger) Len() int { return len(l.commits) }

// Commits returns a copy of the ordered commits
func (l Ledger) Commits() []models.Commit {
	out := make([]models.Commit, len(l.commits))
	copy(out, l.commits)
	return out
}

// At returns the commit at position i
func (l Ledger) At(i int) models.Commit { return l.commits[i] }

// IndexOf returns the position of id, or -1
func (l Ledger) IndexOf(id string) int {
	if i, ok := l.index[id]; ok {
		return i
	}
	return -1
}

// Get returns the commit with the given id
func (l Ledger) Get(id string) (models.Commit, bool) {
	i := l.IndexOf(id)
	if i < 0 {
		return models.Commit{}, false
	}
	return l.commits[i], true
}

// OlderNeighbor returns the commit immediately after id, if loaded
func (l Ledger) OlderNeighbor(id string) (models.Commit, bool) {
	i := l.IndexOf(id)
	if i < 0 || i+1 >= len(l.commits) {
		return models.Commit{}, false
	}
	return l.commits[i+1], true
}

// Between returns the commits from endID down to startID, both included.
// It returns nil when either id is unknown or startID is newer than endID.
func (l Ledger) Between(endID, startID string) []models.Commit {
	end, start := l.IndexOf(endID), l.IndexOf(startID)
	if end < 0 || start < 0 || start < end {
		return nil
	}
	out := make([]models.Commit, start-end+1)
	copy(out, l.commits[end:start+1])
	return out
}

// Search returns the positions of commits whose message, author or id
// contains query (case-insensitive). An empty query matches everything.
func (l Ledger) Search(query string) []int {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]int, 0, len(l.commits))
	for i, c := range l.commits {
		if q == "" ||
			strings.Contains(strings.ToLower(c.Message), q) ||
			strings.Contains(strings.ToLower(c.Author), q) ||
			strings.HasPrefix(c.SHA, q) {
			out = append(out, i)
		}
	}
	return out
}
