package models

// Repository describes a resolved upstream repository
type Repository struct {
	Owner         string
	Name          string
	FullName      string
	DefaultBranch string
	Description   string
	Stars         int
	HTMLURL       string
}

