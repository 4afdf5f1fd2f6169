package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wahlandcase/attuned.changelog/internal/diffcache"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	GitHub    GitHubConfig    `toml:"github"`
	Generator GeneratorConfig `toml:"generator"`
	Diff      DiffConfig      `toml:"diff"`
	Publish   PublishConfig   `toml:"publish"`
	Update    UpdateConfig    `toml:"update"`

	// File the config was loaded from (not serialized)
	path string
	// Credentials as read from the file, before env overrides
	fileToken  string
	fileAPIKey string
}

type GitHubConfig struct {
	Token   string `toml:"token"`
	APIURL  string `toml:"api_url"`
	PerPage int    `toml:"per_page"`
}

type GeneratorConfig struct {
	APIKey        string `toml:"api_key"`
	BaseURL       string `toml:"base_url"`
	Model         string `toml:"model"`
	MaxPatchBytes int    `toml:"max_patch_bytes"`
}

type DiffConfig struct {
	Exclude   []string `toml:"exclude"`
	Highlight bool     `toml:"highlight"`
	Style     string   `toml:"style"`
}

type PublishConfig struct {
	Dir         string `toml:"dir"`
	HistorySize int    `toml:"history_size"`
}

type UpdateConfig struct {
	Enabled        bool      `toml:"enabled"`
	LastCheck      time.Time `toml:"last_check"`
	SkippedVersion string    `toml:"skipped_version"`
	Repo           string    `toml:"repo"`
}

func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIURL:  "https://api.github.com/",
			PerPage: 20,
		},
		Generator: GeneratorConfig{
			Model:         "gpt-4o-mini",
			MaxPatchBytes: 12000,
		},
		Diff: DiffConfig{
			Exclude:   []string{"go.sum", "**/package-lock.json", "**/yarn.lock", "**/pnpm-lock.yaml"},
			Highlight: true,
			Style:     "github-dark",
		},
		Publish: PublishConfig{
			Dir:         "~/changelogs",
			HistorySize: 20,
		},
		Update: UpdateConfig{
			Enabled: true,
			Repo:    "wahlandcase/attuned.changelog",
		},
	}
}

// Dir returns the directory holding the config, history and log files
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "attcl"), nil
}

// Path returns the default config file location
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "attcl.toml"), nil
}

// Load reads the config at path, or the default location when path is empty.
// A missing file yields defaults, which are written back best effort.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			cfg := DefaultConfig()
			cfg.applyEnv()
			return cfg, cfg.validate()
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.path = path
			_ = cfg.Save() // Best effort save
			cfg.applyEnv()
			return cfg, cfg.validate()
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.path = path
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv lets environment credentials override the file
func (c *Config) applyEnv() {
	c.fileToken = c.GitHub.Token
	c.fileAPIKey = c.Generator.APIKey
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		c.GitHub.Token = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Generator.APIKey = v
	}
}

func (c *Config) validate() error {
	if err := diffcache.ValidatePatterns(c.Diff.Exclude); err != nil {
		return fmt.Errorf("diff.exclude: %w", err)
	}
	if c.GitHub.PerPage < 1 || c.GitHub.PerPage > 100 {
		return fmt.Errorf("github.per_page must be between 1 and 100, got %d", c.GitHub.PerPage)
	}
	return nil
}

func (c *Config) Save() error {
	path := c.path
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	// Never persist credentials that only came from the environment
	out := *c
	out.GitHub.Token = c.fileToken
	out.Generator.APIKey = c.fileAPIKey

	data, err := toml.Marshal(&out)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// File returns the path the config was loaded from
func (c *Config) File() string {
	return c.path
}

// PublishDir returns the expanded changelog output directory
func (c *Config) PublishDir() string {
	return ExpandTilde(c.Publish.Dir)
}

// ShouldCheckForUpdate returns true if update check is enabled and 24h since last check
func (c *Config) ShouldCheckForUpdate() bool {
	if !c.Update.Enabled {
		return false
	}
	return time.Since(c.Update.LastCheck) > 24*time.Hour
}

// RecordUpdateCheck updates the last check time
func (c *Config) RecordUpdateCheck() {
	c.Update.LastCheck = time.Now()
}

func ExpandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
