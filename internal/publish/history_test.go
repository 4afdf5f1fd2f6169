package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestHistoryAddAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	h := LoadHistory(path, 3)
	for i := 0; i < 5; i++ {
		h.Add(Entry{Repository: "acme/widgets", URL: fmt.Sprintf("https://github.com/acme/r%d", i%2), Title: fmt.Sprintf("t%d", i)})
	}
	if len(h.Entries) != 3 {
		t.Fatalf("len = %d, want 3", len(h.Entries))
	}
	if h.Entries[0].Title != "t4" {
		t.Errorf("newest = %q, want t4", h.Entries[0].Title)
	}

	reloaded := LoadHistory(path, 3)
	if len(reloaded.Entries) != 3 || reloaded.Entries[2].Title != "t2" {
		t.Errorf("reloaded = %+v", reloaded.Entries)
	}

	recent := reloaded.RecentRepos(5)
	if len(recent) != 2 || recent[0] != "https://github.com/acme/r0" {
		t.Errorf("RecentRepos = %v", recent)
	}
}

func TestLoadHistoryTolerant(t *testing.T) {
	dir := t.TempDir()
	if h := LoadHistory(filepath.Join(dir, "missing.json"), 5); len(h.Entries) != 0 {
		t.Error("missing file should give empty history")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if h := LoadHistory(bad, 5); len(h.Entries) != 0 {
		t.Error("corrupt file should give empty history")
	}
}
