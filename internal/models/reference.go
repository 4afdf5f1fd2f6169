package models

// RefKind tells where a named reference came from
type RefKind int

const (
	RefBranch RefKind = iota
	RefTag
	RefRelease
)

func (k RefKind) String() string {
	switch k {
	case RefBranch:
		return "branch"
	case RefTag:
		return "tag"
	case RefRelease:
		return "release"
	default:
		return "unknown"
	}
}

// Reference is a named pointer into history (branch, tag or release)
type Reference struct {
	Name string
	// SHA is empty for releases whose tag was not listed
	SHA  string
	Kind RefKind
}
