// Package catalog merges the named references of a repository.
package catalog

import "github.com/wahlandcase/attuned.changelog/internal/models"

// Merge combines tags and releases into one list with unique names.
// A release only contributes when no tag of the same name exists.
func Merge(tags, releases []models.Reference) []models.Reference {
	seen := make(map[string]bool, len(tags)+len(releases))
	out := make([]models.Reference, 0, len(tags)+len(releases))
	for _, list := range [][]models.Reference{tags, releases} {
		for _, ref := range list {
			if seen[ref.Name] {
				continue
			}
			seen[ref.Name] = true
			out = append(out, ref)
		}
	}
	return out
}

// Catalog holds the branches and merged refs of one repository
type Catalog struct {
	Branches []models.Reference
	Refs     []models.Reference
}

// New builds a catalog from the upstream listings
func New(branches, tags, releases []models.Reference) Catalog {
	return Catalog{Branches: branches, Refs: Merge(tags, releases)}
}

// References returns the branches followed by refs that are not also branches
func (c Catalog) References() []models.Reference {
	seen := make(map[string]bool)
	var out []models.Reference
	for _, list := range [][]models.Reference{c.Branches, c.Refs} {
		for _, r := range list {
			if !seen[r.Name] {
				seen[r.Name] = true
				out = append(out, r)
			}
		}
	}
	return out
}

// Resolve maps a branch or ref name to its commit id.
// Branches win over tags of the same name.
func (c Catalog) Resolve(name string) (string, bool) {
	for _, list := range [][]models.Reference{c.Branches, c.Refs} {
		for _, r := range list {
			if r.Name == name && r.SHA != "" {
				return r.SHA, true
			}
		}
	}
	return "", false
}

// Has reports whether name is a known branch or ref
func (c Catalog) Has(name string) bool {
	for _, list := range [][]models.Reference{c.Branches, c.Refs} {
		for _, r := range list {
			if r.Name == name {
				return true
			}
		}
	}
	return false
}
