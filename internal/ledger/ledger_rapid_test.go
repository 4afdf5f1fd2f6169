package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/wahlandcase/attuned.changelog/internal/models"
	"pgregory.net/rapid"
)

// --- Generators ---

func genPage() *rapid.Generator[[]models.Commit] {
	return rapid.Custom(func(t *rapid.T) []models.Commit {
		count := rapid.IntRange(0, 30).Draw(t, "count")
		page := make([]models.Commit, count)
		for i := 0; i < count; i++ {
			// Small id space so pages overlap.
			id := rapid.IntRange(0, 40).Draw(t, fmt.Sprintf("id%d", i))
			page[i] = models.Commit{
				SHA: fmt.Sprintf("sha%02d", id),
				// Date derived from id so the same id always carries the same date.
				Date: base.Add(-time.Duration(id) * time.Minute),
			}
		}
		return page
	})
}

// --- Property Tests ---

func TestRapidLedger_SortedAndUnique(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pages := rapid.SliceOfN(genPage(), 1, 5).Draw(t, "pages")
		l := Ledger{}
		for _, p := range pages {
			l = l.Merge(p)
		}

		seen := make(map[string]bool)
		commits := l.Commits()
		for i, c := range commits {
			if seen[c.SHA] {
				t.Fatalf("duplicate id %s", c.SHA)
			}
			seen[c.SHA] = true
			if i > 0 && commits[i-1].Date.Before(c.Date) {
				t.Fatalf("not sorted descending at %d", i)
			}
			if l.IndexOf(c.SHA) != i {
				t.Fatalf("IndexOf(%s) = %d, want %d", c.SHA, l.IndexOf(c.SHA), i)
			}
		}
	})
}

func TestRapidLedger_MergeKnownIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		page := genPage().Draw(t, "page")
		once := Ledger{}.Merge(page)
		twice := once.Merge(once.Commits())

		if !equal(shas(once), shas(twice)) {
			t.Fatalf("re-merging known commits changed order: %v vs %v", shas(once), shas(twice))
		}
	})
}

func TestRapidLedger_OlderNeighborIsNextIndex(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := Ledger{}.Merge(genPage().Draw(t, "page"))
		if l.Len() == 0 {
			return
		}
		i := rapid.IntRange(0, l.Len()-1).Draw(t, "i")
		id := l.At(i).SHA

		got, ok := l.OlderNeighbor(id)
		if i == l.Len()-1 {
			if ok {
				t.Fatalf("last commit %s has neighbor %s", id, got.SHA)
			}
			return
		}
		if !ok || got.SHA != l.At(i+1).SHA {
			t.Fatalf("OlderNeighbor(%s) = %s, %v; want %s", id, got.SHA, ok, l.At(i+1).SHA)
		}
	})
}
