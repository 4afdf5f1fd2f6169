// Package publish writes finished changelogs to disk.
package publish

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/wahlandcase/attuned.changelog/internal/models"

	"gopkg.in/yaml.v3"
)

// frontMatter is the YAML header of a published changelog
type frontMatter struct {
	Title       string    `yaml:"title"`
	Repository  string    `yaml:"repository"`
	Base        string    `yaml:"base"`
	Head        string    `yaml:"head"`
	Commits     []string  `yaml:"commits,omitempty"`
	PublishedAt time.Time `yaml:"published_at"`
}

// Writer writes changelogs as markdown files into Dir
type Writer struct {
	Dir    string
	DryRun bool
	// Now is overridable for tests
	Now func() time.Time
}

// NewWriter creates a writer for dir
func NewWriter(dir string, dryRun bool) *Writer {
	return &Writer{Dir: dir, DryRun: dryRun, Now: time.Now}
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

func slug(s string) string {
	s = slugInvalid.ReplaceAllString(strings.ToLower(s), "-")
	s = strings.Trim(s, "-")
	if len(s) > 48 {
		s = strings.TrimRight(s[:48], "-")
	}
	if s == "" {
		return "changelog"
	}
	return s
}

// FileName returns the file name a changelog is written to
func FileName(c models.Changelog) string {
	return fmt.Sprintf("%s-%s-%s-%s.md",
		c.PublishedAt.Format("2006-01-02"),
		slug(c.Repository.Owner),
		slug(c.Repository.Name),
		slug(c.Title),
	)
}

// Render returns the file contents: YAML front matter then the body
func Render(c models.Changelog) ([]byte, error) {
	fm := frontMatter{
		Title:       c.Title,
		Repository:  c.Repository.FullName,
		Base:        c.Base,
		Head:        c.Head,
		PublishedAt: c.PublishedAt.UTC(),
	}
	for _, commit := range c.Commits {
		fm.Commits = append(fm.Commits, commit.ShortSHA()+" "+commit.Subject())
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n\n")
	fmt.Fprintf(&buf, "# %s\n\n", strings.TrimSpace(c.Title))
	buf.WriteString(strings.TrimSpace(c.Body))
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// Write stamps c with the publish time and target path and writes it.
// On dry run nothing touches the disk.
func (w *Writer) Write(c models.Changelog) (models.Changelog, error) {
	c.PublishedAt = w.Now()
	c.Path = filepath.Join(w.Dir, FileName(c))

	data, err := Render(c)
	if err != nil {
		return c, err
	}
	if w.DryRun {
		slog.Info("dry run: changelog not written", slog.String("path", c.Path))
		return c, nil
	}

	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return c, fmt.Errorf("create %s: %w", w.Dir, err)
	}
	if err := os.WriteFile(c.Path, data, 0644); err != nil {
		return c, fmt.Errorf("write changelog: %w", err)
	}
	slog.Debug("changelog written", slog.String("path", c.Path), slog.Int("bytes", len(data)))
	return c, nil
}
