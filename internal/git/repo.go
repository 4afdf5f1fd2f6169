// Package git inspects local checkouts to prefill the repository URL.
package git

import (
	"errors"
	"strings"

	"github.com/go-git/go-git/v5"
)

// NoRemoteError indicates the checkout has no GitHub origin remote
type NoRemoteError struct {
	Path string
}

func (e *NoRemoteError) Error() string {
	return "no GitHub origin remote in " + e.Path
}

// IsGitRepo checks if path is inside a git repository
func IsGitRepo(path string) bool {
	_, err := open(path)
	return err == nil
}

func open(path string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
}

// DetectGitHubURL returns https://github.com/owner/name for the origin
// remote of the checkout containing path.
func DetectGitHubURL(path string) (string, error) {
	repo, err := open(path)
	if err != nil {
		return "", err
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", &NoRemoteError{Path: path}
		}
		return "", err
	}
	for _, u := range remote.Config().URLs {
		if url, ok := NormalizeRemoteURL(u); ok {
			return url, nil
		}
	}
	return "", &NoRemoteError{Path: path}
}

// NormalizeRemoteURL converts ssh and https GitHub remotes to the
// https://github.com/owner/name form
func NormalizeRemoteURL(remote string) (string, bool) {
	var rest string
	switch {
	case strings.HasPrefix(remote, "git@github.com:"):
		rest = strings.TrimPrefix(remote, "git@github.com:")
	case strings.HasPrefix(remote, "ssh://git@github.com/"):
		rest = strings.TrimPrefix(remote, "ssh://git@github.com/")
	case strings.HasPrefix(remote, "https://github.com/"):
		rest = strings.TrimPrefix(remote, "https://github.com/")
	default:
		return "", false
	}
	rest = strings.TrimSuffix(strings.TrimSuffix(rest, "/"), ".git")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}
	return "https://github.com/" + parts[0] + "/" + parts[1], true
}
