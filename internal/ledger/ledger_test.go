package ledger

import (
	"testing"
	"time"

	"github.com/wahlandcase/attuned.changelog/internal/models"
)

var base = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func commit(sha string, hoursAgo int) models.Commit {
	return models.Commit{SHA: sha, Message: "commit " + sha, Author: "dev", Date: base.Add(-time.Duration(hoursAgo) * time.Hour)}
}

func shas(l Ledger) []string {
	var out []string
	for _, c := range l.Commits() {
		out = append(out, c.SHA)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMergeInterleavesByDate(t *testing.T) {
	l := Ledger{}.Merge([]models.Commit{commit("a", 0), commit("c", 2)})
	l = l.Merge([]models.Commit{commit("b", 1), commit("d", 3)})

	if got, want := shas(l), []string{"a", "b", "c", "d"}; !equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if l.IndexOf("c") != 2 {
		t.Errorf("IndexOf(c) = %d, want 2", l.IndexOf("c"))
	}
	if l.IndexOf("zzz") != -1 {
		t.Error("IndexOf of unknown id should be -1")
	}
}

func TestMergeDeduplicates(t *testing.T) {
	l := Ledger{}.Merge([]models.Commit{commit("a", 0), commit("b", 1)})
	l = l.Merge([]models.Commit{commit("b", 1), commit("a", 0), commit("b", 1)})

	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
}

func TestMergeDoesNotMutateReceiver(t *testing.T) {
	first := Ledger{}.Merge([]models.Commit{commit("a", 0)})
	_ = first.Merge([]models.Commit{commit("b", 1)})

	if first.Len() != 1 {
		t.Errorf("receiver changed: Len() = %d", first.Len())
	}
}

func TestOlderNeighbor(t *testing.T) {
	l := Ledger{}.Merge([]models.Commit{commit("a", 0), commit("b", 1), commit("c", 2)})

	tests := []struct {
		id     string
		want   string
		wantOK bool
	}{
		{id: "a", want: "b", wantOK: true},
		{id: "b", want: "c", wantOK: true},
		{id: "c", wantOK: false},
		{id: "missing", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := l.OlderNeighbor(tt.id)
			if ok != tt.wantOK || got.SHA != tt.want {
				t.Errorf("OlderNeighbor(%q) = %q, %v; want %q, %v", tt.id, got.SHA, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestBetween(t *testing.T) {
	l := Ledger{}.Merge([]models.Commit{commit("a", 0), commit("b", 1), commit("c", 2), commit("d", 3)})

	if got := l.Between("b", "d"); len(got) != 3 || got[0].SHA != "b" || got[2].SHA != "d" {
		t.Errorf("Between(b, d) = %v", got)
	}
	if got := l.Between("d", "b"); got != nil {
		t.Errorf("Between(d, b) = %v, want nil", got)
	}
	if got := l.Between("a", "x"); got != nil {
		t.Errorf("Between with unknown id = %v, want nil", got)
	}
}

func TestPagination(t *testing.T) {
	l := Ledger{}
	if l.Page() != 0 || l.HasNext() {
		t.Fatal("zero ledger should have no page")
	}
	l = l.WithPage(2, true)
	if l.Page() != 2 || !l.HasNext() {
		t.Errorf("Page() = %d, HasNext() = %v", l.Page(), l.HasNext())
	}
}

func TestSearch(t *testing.T) {
	l := Ledger{}.Merge([]models.Commit{
		{SHA: "aaa111", Message: "feat: Add login", Author: "Ann", Date: base},
		{SHA: "bbb222", Message: "fix: crash", Author: "Bob", Date: base.Add(-time.Hour)},
	})

	tests := []struct {
		query string
		want  int
	}{
		{query: "", want: 2},
		{query: "LOGIN", want: 1},
		{query: "bob", want: 1},
		{query: "bbb", want: 1},
		{query: "nothing", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := l.Search(tt.query); len(got) != tt.want {
				t.Errorf("Search(%q) = %v, want %d hits", tt.query, got, tt.want)
			}
		})
	}
}
