package models

import (
	"strings"
	"time"
)

// Draft is the editable changelog text
type Draft struct {
	Title string
	Body  string
}

// Ready reports whether both title and body are non-empty
func (d Draft) Ready() bool {
	return strings.TrimSpace(d.Title) != "" && strings.TrimSpace(d.Body) != ""
}

// Changelog is a published draft with the range it covers
type Changelog struct {
	Draft
	Repository  Repository
	Base        string
	Head        string
	Commits     []Commit
	PublishedAt time.Time
	// Path is where the changelog was (or, on dry run, would have been) written
	Path string
}
