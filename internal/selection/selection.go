// Package selection models the end/start commit pair of a range.
package selection

// IndexFunc maps a commit id to its position in the ledger (-1 if unknown).
// Larger positions are older commits.
type IndexFunc func(id string) int

// Selection is the pair [End, Start]. End is the newer commit.
// Start is set only when End is set and Start is strictly older.
type Selection struct {
	End   string
	Start string
}

// Len returns how many commits are selected (0, 1 or 2)
func (s Selection) Len() int {
	switch {
	case s.End == "":
		return 0
	case s.Start == "":
		return 1
	default:
		return 2
	}
}

// Complete reports whether both ends are set
func (s Selection) Complete() bool { return s.Len() == 2 }

// Has reports whether id is one of the selected commits
func (s Selection) Has(id string) bool {
	return id != "" && (id == s.End || id == s.Start)
}

// Select applies a click on id:
//   - empty: id becomes End
//   - End only: id becomes Start if strictly older, otherwise no change
//   - full: reset to End = id
//
// Unknown ids leave the selection unchanged.
func (s Selection) Select(id string, indexOf IndexFunc) Selection {
	idx := indexOf(id)
	if idx < 0 {
		return s
	}
	switch s.Len() {
	case 0:
		return Selection{End: id}
	case 1:
		if idx > indexOf(s.End) {
			return Selection{End: s.End, Start: id}
		}
		return s
	default:
		return Selection{End: id}
	}
}

// ClearEnd empties the selection
func (s Selection) ClearEnd() Selection { return Selection{} }

// ClearStart drops Start, keeping End
func (s Selection) ClearStart() Selection { return Selection{End: s.End} }

// Clickable reports whether selecting id would extend the selection:
// the pair is empty, or only End is set and id is strictly older.
func (s Selection) Clickable(id string, indexOf IndexFunc) bool {
	idx := indexOf(id)
	if idx < 0 {
		return false
	}
	switch s.Len() {
	case 0:
		return true
	case 1:
		return idx > indexOf(s.End)
	default:
		return false
	}
}

// RowClass is the display category of a commit row
type RowClass int

const (
	RowDefault RowClass = iota
	RowSelected
	RowDisabled
	RowInRange
)

func (c RowClass) String() string {
	switch c {
	case RowSelected:
		return "selected"
	case RowDisabled:
		return "disabled"
	case RowInRange:
		return "in-range"
	default:
		return "default"
	}
}

// Classify returns the row class of id from its position relative to End/Start
func (s Selection) Classify(id string, indexOf IndexFunc) RowClass {
	if s.Has(id) {
		return RowSelected
	}
	idx := indexOf(id)
	switch s.Len() {
	case 1:
		if idx <= indexOf(s.End) {
			return RowDisabled
		}
	case 2:
		if idx > indexOf(s.End) && idx < indexOf(s.Start) {
			return RowInRange
		}
	}
	return RowDefault
}
