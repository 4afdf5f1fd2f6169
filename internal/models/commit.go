package models

import (
	"strings"
	"time"
)

// Commit is a single upstream commit
type Commit struct {
	SHA     string
	Message string
	Author  string
	Date    time.Time
	HTMLURL string
}

// ShortSHA returns the first 7 characters of the commit id
func (c Commit) ShortSHA() string {
	if len(c.SHA) > 7 {
		return c.SHA[:7]
	}
	return c.SHA
}

// Subject returns the first line of the commit message
func (c Commit) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(subject)
}
