package engine

import (
	"slices"
	"testing"

	"github.com/lixenwraith/fly-catcher/core"
)

func TestStore_OrderAndRemove(t *testing.T) {
	s := NewStore[string]()
	for _, e := range []core.Entity{5, 1, 3, 2} {
		s.Set(e, "v")
	}
	s.Set(3, "updated")

	if got := s.Entities(); !slices.Equal(got, []core.Entity{1, 2, 3, 5}) {
		t.Errorf("Expected ascending entities, got %v", got)
	}
	if v, _ := s.Get(3); v != "updated" {
		t.Errorf("Expected updated value, got %q", v)
	}

	if !s.Remove(3) {
		t.Error("Expected Remove to report presence")
	}
	if s.Remove(3) {
		t.Error("Expected second Remove to fail")
	}
	if _, ok := s.Get(3); ok || s.Has(3) {
		t.Error("Removed entity still resolvable")
	}
	if s.Len() != 3 || len(s.Values()) != 3 {
		t.Errorf("Expected 3 entries, got %d", s.Len())
	}
}
