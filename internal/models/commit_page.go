package models

// CommitPage is one page of commits from the upstream listing
type CommitPage struct {
	Commits []Commit
	Page    int
	// HasNext is derived from the pagination link header, never from page size
	HasNext bool
}
