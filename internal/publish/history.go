package publish

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Entry is one published changelog remembered across sessions
type Entry struct {
	Repository  string    `json:"repository"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Path        string    `json:"path"`
	PublishedAt time.Time `json:"published_at"`
}

// History is the newest-first list of published changelogs, capped to Size
type History struct {
	path    string
	size    int
	Entries []Entry
}

// LoadHistory reads the history file. A missing or unreadable file yields
// an empty history.
func LoadHistory(path string, size int) *History {
	h := &History{path: path, size: size}
	data, err := os.ReadFile(path)
	if err != nil {
		return h
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return h
	}
	h.Entries = entries
	h.prune()
	return h
}

// Add records e at the front and saves, best effort
func (h *History) Add(e Entry) {
	h.Entries = append([]Entry{e}, h.Entries...)
	h.prune()
	_ = h.Save()
}

func (h *History) prune() {
	if h.size > 0 && len(h.Entries) > h.size {
		h.Entries = h.Entries[:h.size]
	}
}

// Save writes the history file
func (h *History) Save() error {
	if h.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(h.Entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(h.path, data, 0644)
}

// RecentRepos returns distinct repository URLs, newest first
func (h *History) RecentRepos(limit int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range h.Entries {
		if e.URL == "" || seen[e.URL] {
			continue
		}
		seen[e.URL] = true
		out = append(out, e.URL)
		if len(out) == limit {
			break
		}
	}
	return out
}
