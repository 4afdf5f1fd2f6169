package main

// Must be first import - fixes Warp terminal delay before lipgloss loads
import _ "github.com/wahlandcase/attuned.changelog/internal/termfix"

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wahlandcase/attuned.changelog/internal/app"
	"github.com/wahlandcase/attuned.changelog/internal/config"
	"github.com/wahlandcase/attuned.changelog/internal/generate"
	"github.com/wahlandcase/attuned.changelog/internal/generate/openai"
	"github.com/wahlandcase/attuned.changelog/internal/git"
	"github.com/wahlandcase/attuned.changelog/internal/github"
	"github.com/wahlandcase/attuned.changelog/internal/publish"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var (
	cfg *config.Config

	configPath string
	debug      bool
	dryRun     bool
	repoURL    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "attcl",
		Short: "TUI for writing changelogs from GitHub history",
		Long: `attcl walks through picking a public GitHub repository, a branch and a
range of commits (or two tags), reviewing the diff and writing a changelog.`,
		Version:           version,
		PersistentPreRunE: setup,
		RunE:              run,
		SilenceUsage:      true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the user config dir)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write debug logs to attcl.log in the config dir")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Simulate publishing without writing files")
	rootCmd.Flags().StringVar(&repoURL, "repo", "", "Repository URL to start with (defaults to the origin of the current git repo)")

	rootCmd.AddCommand(newCommitsCmd(), newRefsCmd(), newDiffCmd(), newUpdateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the config and configures logging. The TUI owns the
// terminal, so logs go to a file next to the config.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = loaded

	if !debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nil
	}
	dir, err := dataDir(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, "attcl.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return nil
}

// dataDir is where the log and publish history live: the directory of the
// config file in use.
func dataDir(cfg *config.Config) (string, error) {
	if file := cfg.File(); file != "" {
		return filepath.Dir(file), nil
	}
	return config.Dir()
}

func newClient(cfg *config.Config) (*github.Client, error) {
	return github.NewClient(github.Options{
		Token:   cfg.GitHub.Token,
		BaseURL: cfg.GitHub.APIURL,
		PerPage: cfg.GitHub.PerPage,
	})
}

func run(cmd *cobra.Command, args []string) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	var gen generate.Generator
	if cfg.Generator.APIKey != "" {
		gen = openai.New(cfg.Generator.APIKey, cfg.Generator.BaseURL, cfg.Generator.Model)
	}

	// Start from the current checkout when it points at GitHub
	url := repoURL
	if url == "" && git.IsGitRepo(".") {
		if detected, err := git.DetectGitHubURL("."); err == nil {
			url = detected
		} else {
			slog.Debug("no repository detected", slog.Any("err", err))
		}
	}

	var history *publish.History
	if dir, err := dataDir(cfg); err == nil {
		history = publish.LoadHistory(filepath.Join(dir, "history.json"), cfg.Publish.HistorySize)
	}

	deps := app.Deps{
		Source:    client,
		Releases:  client,
		Generator: gen,
		Writer:    publish.NewWriter(cfg.PublishDir(), dryRun),
		History:   history,
	}
	model := app.New(cfg, deps, app.Options{
		DryRun:  dryRun,
		Version: version,
		RepoURL: url,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}
