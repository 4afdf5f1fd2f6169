package github

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wahlandcase/attuned.changelog/internal/models"

	gh "github.com/google/go-github/v72/github"
)

const listAllPerPage = 100

// Client talks to the GitHub REST API
type Client struct {
	gh      *gh.Client
	perPage int
}

// Options configure NewClient. Zero values fall back to public GitHub defaults.
type Options struct {
	Token      string
	BaseURL    string
	PerPage    int
	HTTPClient *http.Client
}

// NewClient creates an API client. An empty token means anonymous access.
func NewClient(opts Options) (*Client, error) {
	client := gh.NewClient(opts.HTTPClient)
	if opts.Token != "" {
		client = client.WithAuthToken(opts.Token)
	}
	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid api url %q: %w", opts.BaseURL, err)
		}
		client.BaseURL = u
	}
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	return &Client{gh: client, perPage: perPage}, nil
}

func logCall(op, owner, name string, start time.Time, attrs ...any) {
	args := append([]any{
		slog.String("op", op),
		slog.String("repo", owner+"/"+name),
		slog.Duration("took", time.Since(start)),
	}, attrs...)
	slog.Debug("github call", args...)
}

// GetRepository fetches repository metadata
func (c *Client) GetRepository(ctx context.Context, owner, name string) (models.Repository, error) {
	start := time.Now()
	repo, resp, err := c.gh.Repositories.Get(ctx, owner, name)
	logCall("get_repository", owner, name, start)
	if err != nil {
		return models.Repository{}, upstreamError("get repository", "Repository not found or not public.", resp, err)
	}
	return models.Repository{
		Owner:         repo.GetOwner().GetLogin(),
		Name:          repo.GetName(),
		FullName:      repo.GetFullName(),
		DefaultBranch: repo.GetDefaultBranch(),
		Description:   repo.GetDescription(),
		Stars:         repo.GetStargazersCount(),
		HTMLURL:       repo.GetHTMLURL(),
	}, nil
}

// ListBranches returns every branch, following pagination
func (c *Client) ListBranches(ctx context.Context, owner, name string) ([]models.Reference, error) {
	var refs []models.Reference
	opts := &gh.BranchListOptions{ListOptions: gh.ListOptions{PerPage: listAllPerPage}}
	for {
		start := time.Now()
		branches, resp, err := c.gh.Repositories.ListBranches(ctx, owner, name, opts)
		logCall("list_branches", owner, name, start, slog.Int("page", opts.Page))
		if err != nil {
			return nil, upstreamError("list branches", "Failed to fetch branches.", resp, err)
		}
		for _, b := range branches {
			refs = append(refs, models.Reference{
				Name: b.GetName(),
				SHA:  b.GetCommit().GetSHA(),
				Kind: models.RefBranch,
			})
		}
		if resp.NextPage == 0 {
			return refs, nil
		}
		opts.Page = resp.NextPage
	}
}

// ListTags returns every tag, following pagination
func (c *Client) ListTags(ctx context.Context, owner, name string) ([]models.Reference, error) {
	var refs []models.Reference
	opts := &gh.ListOptions{PerPage: listAllPerPage}
	for {
		start := time.Now()
		tags, resp, err := c.gh.Repositories.ListTags(ctx, owner, name, opts)
		logCall("list_tags", owner, name, start, slog.Int("page", opts.Page))
		if err != nil {
			return nil, upstreamError("list tags", "Failed to fetch tags.", resp, err)
		}
		for _, t := range tags {
			refs = append(refs, models.Reference{
				Name: t.GetName(),
				SHA:  t.GetCommit().GetSHA(),
				Kind: models.RefTag,
			})
		}
		if resp.NextPage == 0 {
			return refs, nil
		}
		opts.Page = resp.NextPage
	}
}

// ListReleases returns every release as a reference named by its tag
func (c *Client) ListReleases(ctx context.Context, owner, name string) ([]models.Reference, error) {
	var refs []models.Reference
	opts := &gh.ListOptions{PerPage: listAllPerPage}
	for {
		start := time.Now()
		releases, resp, err := c.gh.Repositories.ListReleases(ctx, owner, name, opts)
		logCall("list_releases", owner, name, start, slog.Int("page", opts.Page))
		if err != nil {
			return nil, upstreamError("list releases", "Failed to fetch releases.", resp, err)
		}
		for _, r := range releases {
			refs = append(refs, models.Reference{
				Name: r.GetTagName(),
				Kind: models.RefRelease,
			})
		}
		if resp.NextPage == 0 {
			return refs, nil
		}
		opts.Page = resp.NextPage
	}
}

// ListCommits fetches one page of history for branch (1-based page)
func (c *Client) ListCommits(ctx context.Context, owner, name, branch string, page int) (models.CommitPage, error) {
	if page < 1 {
		page = 1
	}
	opts := &gh.CommitsListOptions{
		SHA:         branch,
		ListOptions: gh.ListOptions{Page: page, PerPage: c.perPage},
	}
	start := time.Now()
	commits, resp, err := c.gh.Repositories.ListCommits(ctx, owner, name, opts)
	logCall("list_commits", owner, name, start, slog.String("branch", branch), slog.Int("page", page))
	if err != nil {
		return models.CommitPage{}, upstreamError("list commits", "Failed to fetch commits.", resp, err)
	}
	return models.CommitPage{
		Commits: convertCommits(commits),
		Page:    page,
		HasNext: resp.NextPage != 0,
	}, nil
}

// GetCommit fetches a single commit and the ids of its parents
func (c *Client) GetCommit(ctx context.Context, owner, name, sha string) (models.Commit, []string, error) {
	start := time.Now()
	rc, resp, err := c.gh.Repositories.GetCommit(ctx, owner, name, sha, nil)
	logCall("get_commit", owner, name, start, slog.String("sha", sha))
	if err != nil {
		return models.Commit{}, nil, upstreamError("get commit", "Failed to fetch commit.", resp, err)
	}
	var parents []string
	for _, p := range rc.Parents {
		parents = append(parents, p.GetSHA())
	}
	return convertCommits([]*gh.RepositoryCommit{rc})[0], parents, nil
}

// Compare returns the changed files between base and head
func (c *Client) Compare(ctx context.Context, owner, name, base, head string) ([]models.DiffFile, error) {
	start := time.Now()
	cmp, resp, err := c.gh.Repositories.CompareCommits(ctx, owner, name, base, head, nil)
	logCall("compare", owner, name, start, slog.String("base", base), slog.String("head", head))
	if err != nil {
		return nil, upstreamError("compare", "Failed to fetch diff.", resp, err)
	}
	files := make([]models.DiffFile, 0, len(cmp.Files))
	for _, f := range cmp.Files {
		files = append(files, models.DiffFile{
			Filename:  f.GetFilename(),
			Status:    f.GetStatus(),
			Additions: f.GetAdditions(),
			Deletions: f.GetDeletions(),
			Patch:     f.GetPatch(),
		})
	}
	return files, nil
}

// Release is a published release with its downloadable assets
type Release struct {
	TagName string
	Assets  []ReleaseAsset
}

// ReleaseAsset is a single file attached to a release
type ReleaseAsset struct {
	ID   int64
	Name string
}

// LatestRelease returns the newest non-draft, non-prerelease release
func (c *Client) LatestRelease(ctx context.Context, owner, name string) (Release, error) {
	start := time.Now()
	rel, resp, err := c.gh.Repositories.GetLatestRelease(ctx, owner, name)
	logCall("latest_release", owner, name, start)
	if err != nil {
		return Release{}, upstreamError("latest release", "Failed to check for updates.", resp, err)
	}
	out := Release{TagName: rel.GetTagName()}
	for _, a := range rel.Assets {
		out.Assets = append(out.Assets, ReleaseAsset{ID: a.GetID(), Name: a.GetName()})
	}
	return out, nil
}

// DownloadAsset streams a release asset. The caller closes the reader.
func (c *Client) DownloadAsset(ctx context.Context, owner, name string, id int64) (io.ReadCloser, error) {
	rc, _, err := c.gh.Repositories.DownloadReleaseAsset(ctx, owner, name, id, http.DefaultClient)
	if err != nil {
		return nil, upstreamError("download asset", "Failed to download update.", nil, err)
	}
	return rc, nil
}

func convertCommits(in []*gh.RepositoryCommit) []models.Commit {
	out := make([]models.Commit, 0, len(in))
	for _, rc := range in {
		commit := rc.GetCommit()
		author := commit.GetAuthor()
		name := author.GetName()
		if login := rc.GetAuthor().GetLogin(); name == "" && login != "" {
			name = login
		}
		out = append(out, models.Commit{
			SHA:     rc.GetSHA(),
			Message: commit.GetMessage(),
			Author:  name,
			Date:    author.GetDate().Time,
			HTMLURL: rc.GetHTMLURL(),
		})
	}
	return out
}
