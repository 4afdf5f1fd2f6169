package app

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wahlandcase/attuned.changelog/internal/config"
	"github.com/wahlandcase/attuned.changelog/internal/models"
	"github.com/wahlandcase/attuned.changelog/internal/publish"
	"github.com/wahlandcase/attuned.changelog/internal/wizard"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeSource struct {
	mu           sync.Mutex
	repoErr      error
	commits      []models.Commit
	files        []models.DiffFile
	compareCalls int
}

func (f *fakeSource) GetRepository(ctx context.Context, owner, name string) (models.Repository, error) {
	if f.repoErr != nil {
		return models.Repository{}, f.repoErr
	}
	return models.Repository{
		Owner:         owner,
		Name:          name,
		FullName:      owner + "/" + name,
		DefaultBranch: "main",
		HTMLURL:       "https://github.com/" + owner + "/" + name,
	}, nil
}

func (f *fakeSource) ListBranches(ctx context.Context, owner, name string) ([]models.Reference, error) {
	return []models.Reference{
		{Name: "main", SHA: "c3", Kind: models.RefBranch},
		{Name: "dev", SHA: "c2", Kind: models.RefBranch},
	}, nil
}

func (f *fakeSource) ListTags(ctx context.Context, owner, name string) ([]models.Reference, error) {
	return []models.Reference{
		{Name: "v1.0.0", SHA: "c1", Kind: models.RefTag},
		{Name: "main", SHA: "c1", Kind: models.RefTag},
	}, nil
}

func (f *fakeSource) ListReleases(ctx context.Context, owner, name string) ([]models.Reference, error) {
	return []models.Reference{{Name: "v1.0.0", Kind: models.RefRelease}}, nil
}

func (f *fakeSource) ListCommits(ctx context.Context, owner, name, branch string, page int) (models.CommitPage, error) {
	return models.CommitPage{Commits: f.commits, Page: page}, nil
}

// GetCommit treats each listed commit as the parent of the one before it
func (f *fakeSource) GetCommit(ctx context.Context, owner, name, sha string) (models.Commit, []string, error) {
	for i, c := range f.commits {
		if c.SHA != sha {
			continue
		}
		if i+1 < len(f.commits) {
			return c, []string{f.commits[i+1].SHA}, nil
		}
		return c, nil, nil
	}
	return models.Commit{}, nil, errors.New("no such commit")
}

func (f *fakeSource) Compare(ctx context.Context, owner, name, base, head string) ([]models.DiffFile, error) {
	f.mu.Lock()
	f.compareCalls++
	f.mu.Unlock()
	return f.files, nil
}

func newFakeSource() *fakeSource {
	day := time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC)
	return &fakeSource{
		commits: []models.Commit{
			{SHA: "c3", Message: "feat: search filters", Author: "ana", Date: day},
			{SHA: "c2", Message: "fix: empty results", Author: "bo", Date: day.Add(-time.Hour)},
			{SHA: "c1", Message: "chore: release", Author: "ana", Date: day.Add(-2 * time.Hour)},
		},
		files: []models.DiffFile{
			{Filename: "search.go", Status: "modified", Additions: 3, Deletions: 1, Patch: "@@ -1 +1 @@\n-old\n+new"},
			{Filename: "go.sum", Status: "modified", Additions: 10},
		},
	}
}

func newTestModel(t *testing.T, src Source, dryRun bool) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Diff.Highlight = false
	dir := t.TempDir()
	deps := Deps{
		Source:  src,
		Writer:  publish.NewWriter(dir, dryRun),
		History: publish.LoadHistory(dir+"/history.json", 5),
	}
	m := New(cfg, deps, Options{DryRun: dryRun, RepoURL: "https://github.com/acme/widgets"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	return next.(Model)
}

// drain runs cmd and feeds every wizard result back into the model
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case wizard.Action:
			next, more := m.Update(msg)
			m = next.(Model)
			queue = append(queue, more)
		}
	}
	return m
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	space = tea.KeyMsg{Type: tea.KeySpace}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	ctrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
)

// walkToCreate drives the model from add-repo to create-changelog over c3..c2
func walkToCreate(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := press(t, m, enter)
	m = drain(t, m, cmd)
	if m.screen() != ScreenChooseBranch {
		t.Fatalf("after submit: screen = %s, err = %+v", m.screen(), m.state.Err)
	}

	m, cmd = press(t, m, enter)
	m = drain(t, m, cmd)
	if m.screen() != ScreenChooseCommits {
		t.Fatalf("after confirm: screen = %s", m.screen())
	}

	m, _ = press(t, m, space)
	m, _ = press(t, m, down)
	m, _ = press(t, m, space)
	if !m.state.Selection.Complete() {
		t.Fatalf("selection = %+v, want complete", m.state.Selection)
	}

	m, cmd = press(t, m, enter)
	m = drain(t, m, cmd)
	if m.screen() != ScreenReviewDiff {
		t.Fatalf("after review: screen = %s", m.screen())
	}

	m, cmd = press(t, m, enter)
	m = drain(t, m, cmd)
	if m.screen() != ScreenCreateChangelog {
		t.Fatalf("after start: screen = %s, err = %+v", m.screen(), m.state.Err)
	}
	return m
}

func TestWizardFlowDryRun(t *testing.T) {
	src := newFakeSource()
	m := walkToCreate(t, newTestModel(t, src, true))

	if got := m.state.Review; got == nil || got.Base != "c2" || got.Head != "c3" {
		t.Fatalf("review = %+v, want c2..c3", got)
	}
	if src.compareCalls != 1 {
		t.Errorf("compare calls = %d, want 1", src.compareCalls)
	}
	files, hidden, ok := m.reviewFiles()
	if !ok || len(files) != 1 || hidden != 1 {
		t.Errorf("review files = %d hidden = %d ok = %v, want 1 kept and go.sum hidden", len(files), hidden, ok)
	}

	m, _ = m.dispatch(wizard.EditDraft{Draft: models.Draft{Title: "Search filters", Body: "- Added filters"}})
	if m.titleInput.Value() != "Search filters" {
		t.Errorf("title input = %q, want synced draft title", m.titleInput.Value())
	}

	m, cmd := press(t, m, ctrlS)
	m = drain(t, m, cmd)
	if m.screen() != ScreenPublished {
		t.Fatalf("after publish: screen = %s, err = %+v", m.screen(), m.state.Err)
	}
	if m.state.Published.Path == "" {
		t.Error("published path is empty")
	}
	if _, err := os.Stat(m.state.Published.Path); !os.IsNotExist(err) {
		t.Errorf("dry run wrote %s", m.state.Published.Path)
	}
	if n := len(m.deps.History.Entries); n != 0 {
		t.Errorf("history has %d entries after dry run, want 0", n)
	}
	if !strings.Contains(m.View(), "Dry run") {
		t.Error("published view does not mention the dry run")
	}
}

func TestWizardFlowRecordsHistory(t *testing.T) {
	m := walkToCreate(t, newTestModel(t, newFakeSource(), false))

	m, _ = m.dispatch(wizard.EditDraft{Draft: models.Draft{Title: "Search filters", Body: "- Added filters"}})
	m, cmd := press(t, m, ctrlS)
	m = drain(t, m, cmd)

	if m.screen() != ScreenPublished {
		t.Fatalf("after publish: screen = %s, err = %+v", m.screen(), m.state.Err)
	}
	data, err := os.ReadFile(m.state.Published.Path)
	if err != nil {
		t.Fatalf("read published file: %v", err)
	}
	if !strings.Contains(string(data), "Search filters") {
		t.Errorf("published file missing title:\n%s", data)
	}
	entries := m.deps.History.Entries
	if len(entries) != 1 || entries[0].Repository != "acme/widgets" {
		t.Errorf("history = %+v, want one acme/widgets entry", entries)
	}

	// New changelog keeps the repository and branch
	m, cmd = press(t, m, runes("n"))
	m = drain(t, m, cmd)
	if m.screen() != ScreenChooseBranch || m.state.Repo == nil {
		t.Errorf("after new: screen = %s repo = %v", m.screen(), m.state.Repo)
	}
}

func TestPublishRequiresDraft(t *testing.T) {
	m := walkToCreate(t, newTestModel(t, newFakeSource(), true))

	m, cmd := press(t, m, ctrlS)
	if cmd != nil {
		t.Error("publish with an empty draft started a command")
	}
	if m.state.Err == nil || m.state.Err.Kind != wizard.KindValidation {
		t.Fatalf("err = %+v, want validation", m.state.Err)
	}
	if !strings.Contains(m.View(), "validation") {
		t.Error("error line not rendered")
	}
}

func TestStaleResultIsDropped(t *testing.T) {
	m := newTestModel(t, newFakeSource(), true)
	m, cmd := press(t, m, enter)
	m = drain(t, m, cmd)

	// Confirm the branch, then go back before the commits arrive
	m, pending := press(t, m, enter)
	if !m.state.IsLoading(wizard.OpCommits) {
		t.Fatal("commits are not loading after confirm")
	}
	m, _ = press(t, m, esc)
	if m.screen() != ScreenAddRepo {
		t.Fatalf("after back: screen = %s", m.screen())
	}

	m = drain(t, m, pending)
	if m.screen() != ScreenAddRepo {
		t.Errorf("stale commits moved the wizard to %s", m.screen())
	}
	if m.state.Ledger.Len() != 0 {
		t.Errorf("stale commits merged into the ledger: %d", m.state.Ledger.Len())
	}
}

func TestResolveErrors(t *testing.T) {
	t.Run("invalid url", func(t *testing.T) {
		m := newTestModel(t, newFakeSource(), true)
		m.urlInput.SetValue("not a repository")
		m, cmd := press(t, m, enter)
		if cmd != nil {
			t.Error("invalid url started a request")
		}
		if m.state.Err == nil || m.state.Err.Kind != wizard.KindValidation {
			t.Errorf("err = %+v, want validation", m.state.Err)
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		src := newFakeSource()
		src.repoErr = errors.New("boom")
		m := newTestModel(t, src, true)
		m, cmd := press(t, m, enter)
		m = drain(t, m, cmd)
		if m.screen() != ScreenAddRepo {
			t.Errorf("screen = %s, want add repo", m.screen())
		}
		if m.state.Err == nil || m.state.Err.Kind != wizard.KindUpstream {
			t.Errorf("err = %+v, want upstream", m.state.Err)
		}
		if m.state.IsLoading(wizard.OpResolve) {
			t.Error("still loading after failure")
		}
	})
}

func TestRefListUniqueNames(t *testing.T) {
	m := newTestModel(t, newFakeSource(), true)
	m, cmd := press(t, m, enter)
	m = drain(t, m, cmd)

	refs := m.refList()
	var names []string
	for _, r := range refs {
		names = append(names, r.Name)
	}
	want := []string{"main", "dev", "v1.0.0"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("refList = %v, want %v", names, want)
	}
	if refs[0].Kind != models.RefBranch {
		t.Errorf("main kind = %s, want branch", refs[0].Kind)
	}
}

func TestCompareRefsSkipsCommits(t *testing.T) {
	src := newFakeSource()
	m := newTestModel(t, src, true)
	m, cmd := press(t, m, enter)
	m = drain(t, m, cmd)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	// refs: main, dev, v1.0.0
	m, _ = press(t, m, down)
	m, _ = press(t, m, down)
	m, _ = press(t, m, runes("b"))
	m.refCursor = 0
	m, _ = press(t, m, runes("h"))
	m, cmd = press(t, m, runes("c"))
	m = drain(t, m, cmd)

	if m.screen() != ScreenReviewDiff {
		t.Fatalf("screen = %s, err = %+v", m.screen(), m.state.Err)
	}
	if got := m.state.Review; got.Base != "c1" || got.Head != "c3" {
		t.Errorf("review = %+v, want c1..c3", got)
	}

	m, _ = press(t, m, esc)
	if m.screen() != ScreenChooseBranch {
		t.Errorf("back from a ref comparison went to %s", m.screen())
	}
}

func TestFetchAnchoredReportsParent(t *testing.T) {
	src := newFakeSource()
	// The parent was authored after its child
	src.commits[2].Date = src.commits[1].Date.Add(time.Hour)

	msg := fetchAnchoredCmd(src, wizard.FetchAnchored{Gen: 3, SHA: "c2"})()
	got, ok := msg.(wizard.AnchoredLoaded)
	if !ok {
		t.Fatalf("msg = %T, want AnchoredLoaded", msg)
	}
	if got.Err != nil || got.Gen != 3 || got.Parent != "c1" {
		t.Fatalf("AnchoredLoaded = %+v, want parent c1", got)
	}
	if len(got.Commits) != 2 || got.Commits[0].SHA != "c2" || got.Commits[1].SHA != "c1" {
		t.Errorf("commits = %+v, want c2 then c1", got.Commits)
	}

	root := fetchAnchoredCmd(src, wizard.FetchAnchored{Gen: 3, SHA: "c1"})().(wizard.AnchoredLoaded)
	if root.Parent != "" || len(root.Commits) != 1 {
		t.Errorf("root commit = %+v, want no parent", root)
	}
}

func TestScreenFor(t *testing.T) {
	tests := []struct {
		step wizard.Step
		want Screen
	}{
		{wizard.StepAddRepo, ScreenAddRepo},
		{wizard.StepChooseBranch, ScreenChooseBranch},
		{wizard.StepChooseCommits, ScreenChooseCommits},
		{wizard.StepReviewDiff, ScreenReviewDiff},
		{wizard.StepCreateChangelog, ScreenCreateChangelog},
		{wizard.StepPublished, ScreenPublished},
	}
	for _, tt := range tests {
		t.Run(tt.step.String(), func(t *testing.T) {
			if got := screenFor(tt.step); got != tt.want {
				t.Errorf("screenFor(%s) = %s, want %s", tt.step, got, tt.want)
			}
		})
	}
}

func TestOverlayWins(t *testing.T) {
	m := newTestModel(t, newFakeSource(), true)
	s := ScreenUpdatePrompt
	m.overlay = &s
	if m.screen() != ScreenUpdatePrompt {
		t.Errorf("screen = %s, want update prompt", m.screen())
	}
	if m.screen().String() == "" {
		t.Error("screen has no name")
	}
}

func TestRelativeTime(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{50 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		if got := relativeTime(time.Now().Add(-tt.ago)); got != tt.want {
			t.Errorf("relativeTime(-%s) = %q, want %q", tt.ago, got, tt.want)
		}
	}
	if got := relativeTime(time.Time{}); got != "unknown" {
		t.Errorf("zero time = %q", got)
	}
}
