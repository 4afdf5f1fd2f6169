// Package generate drafts changelog text from a commit range.
// Vendor clients live in subpackages and satisfy Generator.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/wahlandcase/attuned.changelog/internal/models"
)

var (
	// ErrMissingCredential means no API key is configured
	ErrMissingCredential = errors.New("no API key configured for changelog generation")
	// ErrCredentialRejected means the provider refused the API key
	ErrCredentialRejected = errors.New("API key was rejected by the generation provider")
	// ErrEmptyResponse means the provider returned no usable text
	ErrEmptyResponse = errors.New("generation returned no text")
)

// Generator turns a prompt into a changelog draft
type Generator interface {
	Generate(ctx context.Context, prompt string) (models.Draft, error)
}

// IsCredentialError reports whether err is a missing or rejected key
func IsCredentialError(err error) bool {
	return errors.Is(err, ErrMissingCredential) || errors.Is(err, ErrCredentialRejected)
}

const instructions = `Write a changelog entry for the changes below.
Reply with a short title on the first line, then a blank line, then the body in markdown.
Group the body by features, fixes and other changes. Do not mention commit hashes.`

// BuildPrompt assembles commit messages and patches into a prompt.
// Patch text is cut once maxPatchBytes have been included (0 means no limit).
func BuildPrompt(repo models.Repository, commits []models.Commit, files []models.DiffFile, maxPatchBytes int) string {
	var b strings.Builder
	b.WriteString(instructions)
	fmt.Fprintf(&b, "\n\nRepository: %s\n", repo.FullName)
	if repo.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", repo.Description)
	}

	if len(commits) > 0 {
		b.WriteString("\nCommits:\n")
		for _, c := range commits {
			fmt.Fprintf(&b, "- %s (%s)\n", c.Subject(), c.Author)
		}
	}

	if len(files) > 0 {
		b.WriteString("\nChanged files:\n")
		used := 0
		truncated := false
		for _, f := range files {
			fmt.Fprintf(&b, "\n### %s (+%d -%d)\n", f.Filename, f.Additions, f.Deletions)
			if f.Patch == "" || truncated {
				continue
			}
			patch := f.Patch
			if maxPatchBytes > 0 && used+len(patch) > maxPatchBytes {
				cut := maxPatchBytes - used
				for cut > 0 && !utf8.RuneStart(patch[cut]) {
					cut--
				}
				patch = patch[:cut]
				truncated = true
			}
			used += len(patch)
			b.WriteString(patch)
			b.WriteString("\n")
			if truncated {
				b.WriteString("[remaining patches omitted]\n")
			}
		}
	}
	return b.String()
}

// ParseDraft splits generated text on the first blank line into title and body.
// Without a blank line the whole text is the body and the title is empty.
func ParseDraft(text string) models.Draft {
	text = strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n")
	title, body, found := strings.Cut(text, "\n\n")
	if !found {
		return models.Draft{Body: text}
	}
	title = strings.TrimSpace(title)
	title = strings.TrimSpace(strings.TrimLeft(title, "#"))
	return models.Draft{Title: title, Body: strings.TrimSpace(body)}
}
