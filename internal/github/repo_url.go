package github

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidRepoURL is returned when the input does not name a repository
var ErrInvalidRepoURL = errors.New("invalid repository url")

var repoURLPattern = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)$`)

// ParseRepoURL extracts owner and name from https://github.com/{owner}/{name}.
// Anything else (trailing slash, .git suffix, extra path) is rejected.
func ParseRepoURL(raw string) (owner, name string, err error) {
	m := repoURLPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", "", ErrInvalidRepoURL
	}
	return m[1], m[2], nil
}

// RepoURL builds the canonical URL accepted by ParseRepoURL
func RepoURL(owner, name string) string {
	return "https://github.com/" + owner + "/" + name
}
