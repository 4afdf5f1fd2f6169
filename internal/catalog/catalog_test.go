package catalog

import (
	"strings"
	"testing"

	"github.com/wahlandcase/attuned.changelog/internal/models"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		tags     []string
		releases []string
		want     []string
	}{
		{name: "shared name listed once", tags: []string{"v1.0", "v0.9"}, releases: []string{"v1.0", "v1.1"}, want: []string{"v1.0", "v0.9", "v1.1"}},
		{name: "no releases", tags: []string{"v1"}, want: []string{"v1"}},
		{name: "no tags", releases: []string{"r1", "r2"}, want: []string{"r1", "r2"}},
		{name: "empty", want: []string{}},
		{name: "duplicate releases", releases: []string{"r1", "r1"}, want: []string{"r1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(refs(tt.tags, models.RefTag), refs(tt.releases, models.RefRelease))
			if len(got) != len(tt.want) {
				t.Fatalf("Merge() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i].Name != tt.want[i] {
					t.Errorf("Merge()[%d] = %q, want %q", i, got[i].Name, tt.want[i])
				}
			}
		})
	}
}

func TestMergeKeepsTagEntry(t *testing.T) {
	tags := []models.Reference{{Name: "v1.0", SHA: "abc", Kind: models.RefTag}}
	releases := []models.Reference{{Name: "v1.0", Kind: models.RefRelease}}

	got := Merge(tags, releases)
	if len(got) != 1 || got[0].Kind != models.RefTag || got[0].SHA != "abc" {
		t.Errorf("Merge() = %+v, want the tag entry", got)
	}
}

func TestResolve(t *testing.T) {
	c := New(
		[]models.Reference{{Name: "main", SHA: "m1", Kind: models.RefBranch}},
		[]models.Reference{{Name: "v1.0", SHA: "t1", Kind: models.RefTag}, {Name: "main", SHA: "t2", Kind: models.RefTag}},
		[]models.Reference{{Name: "v2.0", Kind: models.RefRelease}},
	)

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{name: "main", want: "m1", wantOK: true},
		{name: "v1.0", want: "t1", wantOK: true},
		{name: "v2.0", wantOK: false},
		{name: "nope", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Resolve(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Resolve(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if !c.Has("v2.0") {
		t.Error("Has(v2.0) = false, want true")
	}
	all := c.References()
	var names []string
	for _, r := range all {
		names = append(names, r.Name)
	}
	if strings.Join(names, ",") != "main,v1.0,v2.0" {
		t.Errorf("References() = %v, want main, v1.0, v2.0", names)
	}
	if all[0].Kind != models.RefBranch {
		t.Errorf("main kind = %s, want branch", all[0].Kind)
	}
}

func refs(names []string, kind models.RefKind) []models.Reference {
	out := make([]models.Reference, 0, len(names))
	for _, n := range names {
		out = append(out, models.Reference{Name: n, Kind: kind})
	}
	return out
}
