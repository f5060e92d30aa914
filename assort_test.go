package assort

import "testing"

func TestSelectionSetOps(t *testing.T) {
	s := NewSelection("b", "a", "b", "c")
	if s.Len() != 3 {
		t.Errorf("expected 3 items after dedup, got %v", s.Len())
	}
	if !s.Has("a") || !s.Has("b") || !s.Has("c") || s.Has("d") {
		t.Errorf("membership wrong for %v", s)
	}

	grown := s.Add("d")
	if grown.Len() != 4 || s.Len() != 3 {
		t.Errorf("Add mutated the receiver: %v -> %v", s, grown)
	}
	if !grown.Equal(NewSelection("a", "b", "c", "d")) {
		t.Errorf("Add out of order: %v", grown)
	}

	shrunk := grown.Remove("b")
	if !shrunk.Equal(NewSelection("a", "c", "d")) {
		t.Errorf("Remove wrong: %v", shrunk)
	}
	if !grown.Has("b") {
		t.Errorf("Remove mutated the receiver: %v", grown)
	}
}

func TestSelectionHash(t *testing.T) {
	a := NewSelection("x", "y")
	b := NewSelection("y", "x")
	if a.Hash() != b.Hash() {
		t.Errorf("hash depends on construction order")
	}
	if a.Hash() == NewSelection("x").Hash() {
		t.Errorf("distinct selections hash equal")
	}
	// the separator must keep id boundaries distinct
	if NewSelection("ab", "c").Hash() == NewSelection("a", "bc").Hash() {
		t.Errorf("id boundaries lost in hash")
	}
}

func TestCatalogIndex(t *testing.T) {
	c := NewCatalog("c", "a", "b")
	for i, id := range []string{"a", "b", "c"} {
		if got := c.Index(id); got != i {
			t.Errorf("Index(%q): expected %v, got %v", id, i, got)
		}
	}
	if got := c.Index("z"); got != -1 {
		t.Errorf("Index of missing item: expected -1, got %v", got)
	}
}
