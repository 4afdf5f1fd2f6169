package ui

import (
	"strings"
	"testing"

	"github.com/wahlandcase/attuned.changelog/internal/models"

	"github.com/muesli/termenv"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated text", 6, "trunc…"},
		{"héllo wörld", 5, "héll…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab  " {
		t.Errorf("centerText = %q", got)
	}
	if got := centerText("abcdefgh", 4); got != "abcd" {
		t.Errorf("centerText overflow = %q", got)
	}
}

func TestBreadcrumb(t *testing.T) {
	out := Breadcrumb([]Crumb{
		{Key: "1", Label: "Add repo", State: CrumbDone},
		{Key: "2", Label: "Choose branch", State: CrumbCurrent},
		{Key: "3", Label: "Choose commits", State: CrumbPending},
	})
	for _, want := range []string{"1", "✓ Add repo", "Choose branch", "Choose commits", "›"} {
		if !strings.Contains(out, want) {
			t.Errorf("breadcrumb missing %q: %s", want, out)
		}
	}
}

func TestPatchPlain(t *testing.T) {
	r := NewDiffRenderer("", false)
	if r.Highlighting() {
		t.Fatal("highlighting should be off")
	}
	lines := r.Patch(models.DiffFile{
		Filename: "main.go",
		Patch:    "@@ -1,2 +1,2 @@\n package main\n-var a = 1\n+var a = 2\n\\ No newline at end of file",
	})
	want := []string{"@@ -1,2 +1,2 @@", "package main", "-var a = 1", "+var a = 2", `\ No newline`}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i, w := range want {
		if !strings.Contains(lines[i], w) {
			t.Errorf("line %d = %q, want it to contain %q", i, lines[i], w)
		}
	}

	binary := r.Patch(models.DiffFile{Filename: "logo.png"})
	if len(binary) != 1 || !strings.Contains(binary[0], "binary") {
		t.Errorf("binary placeholder = %v", binary)
	}
}

func TestPatchHighlighted(t *testing.T) {
	r := &DiffRenderer{style: styleFor("monokai", true), formatter: formatterFor(termenv.TrueColor)}
	lines := r.Patch(models.DiffFile{Filename: "main.go", Patch: "+func main() {}"})
	if len(lines) != 1 {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "\x1b[") {
		t.Errorf("expected ANSI escapes in %q", lines[0])
	}
	if !strings.Contains(lines[0], "main") {
		t.Errorf("code lost: %q", lines[0])
	}
}

func TestStyleFor(t *testing.T) {
	if st := styleFor("monokai", true); st.Name != "monokai" {
		t.Errorf("named style = %s", st.Name)
	}
	if st := styleFor("", false); st.Name != "github" {
		t.Errorf("light default = %s", st.Name)
	}
	if st := styleFor("no-such-style", true); st.Name != "github-dark" {
		t.Errorf("unknown style fallback = %s", st.Name)
	}
	if formatterFor(termenv.Ascii) != nil {
		t.Error("ascii profile should disable highlighting")
	}
}

func TestFileHeader(t *testing.T) {
	out := FileHeader(models.DiffFile{Filename: "a.go", Status: "modified", Additions: 3, Deletions: 1}, true, false)
	for _, want := range []string{"▾", "a.go", "modified", "+3", "-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q: %s", want, out)
		}
	}
}
