package main

import (
	"context"
	"fmt"
	"os"

	"github.com/wahlandcase/attuned.changelog/internal/catalog"
	"github.com/wahlandcase/attuned.changelog/internal/diffcache"
	"github.com/wahlandcase/attuned.changelog/internal/github"
	"github.com/wahlandcase/attuned.changelog/internal/models"
	"github.com/wahlandcase/attuned.changelog/internal/output"
	"github.com/wahlandcase/attuned.changelog/internal/update"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newCommitsCmd() *cobra.Command {
	var (
		branch string
		page   int
	)
	cmd := &cobra.Command{
		Use:   "commits <repo-url>",
		Short: "List one page of commits on a branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			owner, name, err := github.ParseRepoURL(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if branch == "" {
				repo, err := client.GetRepository(ctx, owner, name)
				if err != nil {
					return err
				}
				branch = repo.DefaultBranch
			}
			p, err := client.ListCommits(ctx, owner, name, branch, page)
			if err != nil {
				return err
			}
			output.WriteCommits(os.Stdout, p.Commits)
			if p.HasNext {
				fmt.Fprintf(os.Stdout, "\nMore commits: --page %d\n", p.Page+1)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Branch to list (default branch when empty)")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	return cmd
}

func newRefsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refs <repo-url>",
		Short: "List branches, tags and releases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			owner, name, err := github.ParseRepoURL(args[0])
			if err != nil {
				return err
			}
			c, err := fetchCatalog(cmd.Context(), client, owner, name)
			if err != nil {
				return err
			}
			output.WriteRefs(os.Stdout, append(c.Branches, c.Refs...))
			return nil
		},
	}
}

func fetchCatalog(ctx context.Context, client *github.Client, owner, name string) (catalog.Catalog, error) {
	var branches, tags, releases []models.Reference
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		branches, err = client.ListBranches(gctx, owner, name)
		return err
	})
	g.Go(func() (err error) {
		tags, err = client.ListTags(gctx, owner, name)
		return err
	})
	g.Go(func() (err error) {
		releases, err = client.ListReleases(gctx, owner, name)
		return err
	})
	if err := g.Wait(); err != nil {
		return catalog.Catalog{}, err
	}
	return catalog.New(branches, tags, releases), nil
}

func newDiffCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "diff <repo-url> <base> <head>",
		Short: "Show the files changed between two refs or commits",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			owner, name, err := github.ParseRepoURL(args[0])
			if err != nil {
				return err
			}
			files, err := client.Compare(cmd.Context(), owner, name, args[1], args[2])
			if err != nil {
				return err
			}
			hidden := 0
			if !all {
				files, hidden = diffcache.Filter(files, cfg.Diff.Exclude)
			}
			output.WriteDiff(os.Stdout, files, hidden)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include files matched by diff.exclude")
	return cmd
}

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Install the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			release, err := update.CheckForUpdate(cmd.Context(), client, version, cfg.Update.Repo)
			if err != nil {
				return err
			}
			if release == nil {
				fmt.Printf("attcl %s is up to date\n", update.VersionDisplay(version))
				return nil
			}
			fmt.Printf("Installing %s...\n", update.VersionDisplay(release.TagName))
			if err := update.DownloadAndInstall(cmd.Context(), client, release, cfg.Update.Repo); err != nil {
				return err
			}
			cfg.RecordUpdateCheck()
			if err := cfg.Save(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: save config: %v\n", err)
			}
			fmt.Printf("Updated to %s\n", update.VersionDisplay(release.TagName))
			return nil
		},
	}
}
