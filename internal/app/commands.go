package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/wahlandcase/attuned.changelog/internal/catalog"
	"github.com/wahlandcase/attuned.changelog/internal/diffcache"
	"github.com/wahlandcase/attuned.changelog/internal/generate"
	"github.com/wahlandcase/attuned.changelog/internal/github"
	"github.com/wahlandcase/attuned.changelog/internal/models"
	"github.com/wahlandcase/attuned.changelog/internal/publish"
	"github.com/wahlandcase/attuned.changelog/internal/update"
	"github.com/wahlandcase/attuned.changelog/internal/wizard"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

const (
	requestTimeout  = 30 * time.Second
	generateTimeout = 2 * time.Minute
)

// Source is the upstream API the wizard reads from
type Source interface {
	GetRepository(ctx context.Context, owner, name string) (models.Repository, error)
	ListBranches(ctx context.Context, owner, name string) ([]models.Reference, error)
	ListTags(ctx context.Context, owner, name string) ([]models.Reference, error)
	ListReleases(ctx context.Context, owner, name string) ([]models.Reference, error)
	ListCommits(ctx context.Context, owner, name, branch string, page int) (models.CommitPage, error)
	GetCommit(ctx context.Context, owner, name, sha string) (models.Commit, []string, error)
	Compare(ctx context.Context, owner, name, base, head string) ([]models.DiffFile, error)
}

// runEffect turns a wizard effect into a command whose message is the
// matching result action
func (m Model) runEffect(e wizard.Effect) tea.Cmd {
	switch e := e.(type) {
	case wizard.ResolveRepo:
		return resolveRepoCmd(m.deps.Source, e)
	case wizard.FetchCommits:
		return fetchCommitsCmd(m.deps.Source, e)
	case wizard.FetchAnchored:
		return fetchAnchoredCmd(m.deps.Source, e)
	case wizard.FetchDiff:
		return fetchDiffCmd(m.deps.Source, m.diffs, e)
	case wizard.Generate:
		return generateCmd(m.deps.Generator, e, m.config.Diff.Exclude, m.config.Generator.MaxPatchBytes)
	case wizard.Publish:
		return publishCmd(m.deps.Writer, e)
	}
	slog.Warn("unhandled effect", slog.String("effect", fmt.Sprintf("%T", e)))
	return nil
}

// resolveRepoCmd loads metadata and the full reference catalog concurrently
func resolveRepoCmd(src Source, e wizard.ResolveRepo) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var (
			repo                     models.Repository
			branches, tags, releases []models.Reference
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			repo, err = src.GetRepository(gctx, e.Owner, e.Name)
			return err
		})
		g.Go(func() (err error) {
			branches, err = src.ListBranches(gctx, e.Owner, e.Name)
			return err
		})
		g.Go(func() (err error) {
			tags, err = src.ListTags(gctx, e.Owner, e.Name)
			return err
		})
		g.Go(func() (err error) {
			releases, err = src.ListReleases(gctx, e.Owner, e.Name)
			return err
		})
		if err := g.Wait(); err != nil {
			slog.Warn("resolve repository failed", slog.String("repo", e.Owner+"/"+e.Name), slog.Any("err", err))
			return wizard.RepoResolved{Gen: e.Gen, Err: err}
		}
		return wizard.RepoResolved{Gen: e.Gen, Repo: repo, Catalog: catalog.New(branches, tags, releases)}
	}
}

func fetchCommitsCmd(src Source, e wizard.FetchCommits) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		page, err := src.ListCommits(ctx, e.Owner, e.Name, e.Branch, e.Page)
		return wizard.CommitsLoaded{Gen: e.Gen, Page: page, Err: err}
	}
}

func fetchAnchoredCmd(src Source, e wizard.FetchAnchored) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		commit, parents, err := src.GetCommit(ctx, e.Owner, e.Name, e.SHA)
		if err != nil {
			return wizard.AnchoredLoaded{Gen: e.Gen, SHA: e.SHA, Err: err}
		}
		if len(parents) == 0 {
			return wizard.AnchoredLoaded{Gen: e.Gen, SHA: e.SHA, Commits: []models.Commit{commit}}
		}
		parent, _, err := src.GetCommit(ctx, e.Owner, e.Name, parents[0])
		if err != nil {
			return wizard.AnchoredLoaded{Gen: e.Gen, SHA: e.SHA, Err: err}
		}
		return wizard.AnchoredLoaded{
			Gen:     e.Gen,
			SHA:     e.SHA,
			Parent:  parents[0],
			Commits: []models.Commit{commit, parent},
		}
	}
}

// fetchDiffCmd shares one in-flight comparison between all requests for a key
func fetchDiffCmd(src Source, group *diffcache.Group, e wizard.FetchDiff) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		files, err := group.Do(ctx, e.Key, func(ctx context.Context) ([]models.DiffFile, error) {
			return src.Compare(ctx, e.Owner, e.Name, e.Base, e.Head)
		})
		return wizard.DiffLoaded{Gen: e.Gen, Key: e.Key, Files: files, Err: err}
	}
}

func generateCmd(gen generate.Generator, e wizard.Generate, exclude []string, maxPatchBytes int) tea.Cmd {
	return func() tea.Msg {
		if gen == nil {
			return wizard.DraftGenerated{Gen: e.Gen, Err: generate.ErrMissingCredential}
		}
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		files, _ := diffcache.Filter(e.Files, exclude)
		prompt := generate.BuildPrompt(e.Repo, e.Commits, files, maxPatchBytes)
		start := time.Now()
		draft, err := gen.Generate(ctx, prompt)
		if err != nil {
			slog.Warn("generate draft failed", slog.String("repo", e.Repo.FullName), slog.Any("err", err))
		} else {
			slog.Debug("draft generated", slog.String("repo", e.Repo.FullName), slog.Duration("took", time.Since(start)))
		}
		return wizard.DraftGenerated{Gen: e.Gen, Draft: draft, Err: err}
	}
}

func publishCmd(w *publish.Writer, e wizard.Publish) tea.Cmd {
	return func() tea.Msg {
		if w == nil {
			return wizard.ChangelogPublished{Gen: e.Gen, Err: fmt.Errorf("no publish directory configured")}
		}
		c, err := w.Write(e.Changelog)
		if err != nil {
			slog.Warn("publish failed", slog.Any("err", err))
		}
		return wizard.ChangelogPublished{Gen: e.Gen, Changelog: c, Err: err}
	}
}

// Update check messages
type updateCheckResult struct {
	release *github.Release
	manual  bool
	err     error
}

type updateDownloadResult struct {
	success bool
	version string
	err     error
}

// checkUpdateCmd checks for available updates
func checkUpdateCmd(src update.ReleaseSource, currentVersion, repo string, manual bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		release, err := update.CheckForUpdate(ctx, src, currentVersion, repo)
		return updateCheckResult{release: release, manual: manual, err: err}
	}
}

// downloadUpdateCmd downloads and installs an update
func downloadUpdateCmd(src update.ReleaseSource, release *github.Release, repo string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := update.DownloadAndInstall(ctx, src, release, repo); err != nil {
			return updateDownloadResult{success: false, err: err}
		}
		return updateDownloadResult{success: true, version: update.VersionDisplay(release.TagName)}
	}
}

// openURL opens a URL or file in the default handler
func openURL(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default: // Linux and others
		cmd = exec.Command("xdg-open", url)
	}

	return cmd.Start()
}

// isWSL checks if running under Windows Subsystem for Linux
func isWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	version := strings.ToLower(string(data))
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}

// copyToClipboard copies text to the system clipboard
func copyToClipboard(text string) error {
	if isWSL() {
		// WSL: use clip.exe to reach Windows clipboard
		cmd := exec.Command("clip.exe")
		cmd.Stdin = strings.NewReader(text)
		return cmd.Run()
	}
	return clipboard.WriteAll(text)
}
