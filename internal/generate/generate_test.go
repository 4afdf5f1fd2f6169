package generate

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/wahlandcase/attuned.changelog/internal/models"
)

func TestParseDraft(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantTitle string
		wantBody  string
	}{
		{name: "title and body", text: "Release 1.2\n\n- Added search\n- Fixed crash", wantTitle: "Release 1.2", wantBody: "- Added search\n- Fixed crash"},
		{name: "markdown heading", text: "## Release 1.2\n\nBody", wantTitle: "Release 1.2", wantBody: "Body"},
		{name: "only first blank line splits", text: "T\n\nA\n\nB", wantTitle: "T", wantBody: "A\n\nB"},
		{name: "crlf", text: "T\r\n\r\nBody", wantTitle: "T", wantBody: "Body"},
		{name: "no blank line", text: "just one paragraph", wantTitle: "", wantBody: "just one paragraph"},
		{name: "surrounding space", text: "\n  T \n\n body \n", wantTitle: "T", wantBody: "body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDraft(tt.text)
			if got.Title != tt.wantTitle || got.Body != tt.wantBody {
				t.Errorf("ParseDraft(%q) = %q / %q, want %q / %q", tt.text, got.Title, got.Body, tt.wantTitle, tt.wantBody)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	repo := models.Repository{FullName: "acme/widgets", Description: "Widgets"}
	commits := []models.Commit{{SHA: "a", Message: "feat: search\n\nlong body", Author: "Ann"}}
	files := []models.DiffFile{{Filename: "search.go", Additions: 3, Patch: "+func Search() {}"}}

	prompt := BuildPrompt(repo, commits, files, 0)
	for _, want := range []string{"acme/widgets", "- feat: search (Ann)", "### search.go (+3 -0)", "+func Search() {}"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "long body") {
		t.Error("prompt should only carry commit subjects")
	}
}

func TestBuildPromptTruncatesPatches(t *testing.T) {
	var files []models.DiffFile
	for i := 0; i < 3; i++ {
		files = append(files, models.DiffFile{Filename: fmt.Sprintf("f%d.go", i), Patch: strings.Repeat("Q", 100)})
	}

	prompt := BuildPrompt(models.Repository{}, nil, files, 150)
	if got := strings.Count(prompt, "Q"); got != 150 {
		t.Errorf("patch bytes = %d, want 150", got)
	}
	if !strings.Contains(prompt, "### f2.go") {
		t.Error("file headers should be kept after truncation")
	}
	if !strings.Contains(prompt, "[remaining patches omitted]") {
		t.Error("missing truncation marker")
	}
}

func TestBuildPromptTruncatesOnRuneBoundary(t *testing.T) {
	files := []models.DiffFile{{Filename: "greeting.txt", Patch: "+héllo"}}

	// A limit of 3 bytes falls inside the two-byte é
	prompt := BuildPrompt(models.Repository{}, nil, files, 3)
	if !utf8.ValidString(prompt) {
		t.Fatalf("prompt is not valid UTF-8: %q", prompt)
	}
	if !strings.Contains(prompt, "\n+h\n") {
		t.Errorf("patch should be cut before é:\n%s", prompt)
	}
}
