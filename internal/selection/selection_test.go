package selection

import "testing"

// positions of a five commit ledger, newest first
var order = []string{"e", "d", "c", "b", "a"}

func indexOf(id string) int {
	for i, s := range order {
		if s == id {
			return i
		}
	}
	return -1
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name  string
		start Selection
		click string
		want  Selection
	}{
		{name: "empty sets end", start: Selection{}, click: "c", want: Selection{End: "c"}},
		{name: "older sets start", start: Selection{End: "d"}, click: "b", want: Selection{End: "d", Start: "b"}},
		{name: "newer is ignored", start: Selection{End: "c"}, click: "e", want: Selection{End: "c"}},
		{name: "same commit is ignored", start: Selection{End: "c"}, click: "c", want: Selection{End: "c"}},
		{name: "third click resets", start: Selection{End: "d", Start: "b"}, click: "a", want: Selection{End: "a"}},
		{name: "third click on newer resets", start: Selection{End: "d", Start: "b"}, click: "e", want: Selection{End: "e"}},
		{name: "unknown id ignored", start: Selection{End: "d"}, click: "zz", want: Selection{End: "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.start.Select(tt.click, indexOf); got != tt.want {
				t.Errorf("Select(%q) = %+v, want %+v", tt.click, got, tt.want)
			}
		})
	}
}

func TestClear(t *testing.T) {
	full := Selection{End: "d", Start: "b"}
	if got := full.ClearStart(); got != (Selection{End: "d"}) {
		t.Errorf("ClearStart() = %+v", got)
	}
	if got := full.ClearEnd(); got.Len() != 0 {
		t.Errorf("ClearEnd() = %+v", got)
	}
}

func TestClickable(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		id   string
		want bool
	}{
		{name: "empty", sel: Selection{}, id: "e", want: true},
		{name: "older than end", sel: Selection{End: "d"}, id: "a", want: true},
		{name: "end itself", sel: Selection{End: "d"}, id: "d", want: false},
		{name: "newer than end", sel: Selection{End: "d"}, id: "e", want: false},
		{name: "full pair", sel: Selection{End: "d", Start: "b"}, id: "a", want: false},
		{name: "unknown", sel: Selection{}, id: "zz", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.Clickable(tt.id, indexOf); got != tt.want {
				t.Errorf("Clickable(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	one := Selection{End: "d"}
	full := Selection{End: "d", Start: "a"}

	tests := []struct {
		name string
		sel  Selection
		id   string
		want RowClass
	}{
		{name: "nothing selected", sel: Selection{}, id: "c", want: RowDefault},
		{name: "end", sel: one, id: "d", want: RowSelected},
		{name: "above end", sel: one, id: "e", want: RowDisabled},
		{name: "below end", sel: one, id: "c", want: RowDefault},
		{name: "start", sel: full, id: "a", want: RowSelected},
		{name: "between", sel: full, id: "b", want: RowInRange},
		{name: "above full range", sel: full, id: "e", want: RowDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.Classify(tt.id, indexOf); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}
