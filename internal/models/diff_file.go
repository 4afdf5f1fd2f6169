package models

// DiffFile is one changed file in a comparison
type DiffFile struct {
	Filename  string
	Status    string
	Additions int
	Deletions int
	Patch     string
}
