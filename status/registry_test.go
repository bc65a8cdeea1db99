package status

import (
	"strings"
	"testing"
)

func TestRegistry_CachedPointers(t *testing.T) {
	r := NewRegistry()
	hits := r.Ints.Get(KeyCaptureHits)
	hits.Add(2)
	if r.Ints.Get(KeyCaptureHits).Load() != 2 {
		t.Error("Expected the same pointer for repeated Get")
	}

	r.Floats.Get(KeyExtension).Set(1.5)
	r.Strings.Get(KeyCapturePhase).Store("Extending")
	if r.TotalCount() != 3 {
		t.Errorf("Expected 3 metrics, got %d", r.TotalCount())
	}

	s := r.Summary()
	for _, want := range []string{"capture.hits=2", "capture.extension=1.50", "capture.phase=Extending"} {
		if !strings.Contains(s, want) {
			t.Errorf("Summary %q missing %q", s, want)
		}
	}
}

func TestAtomicString_Truncates(t *testing.T) {
	var s AtomicString
	if s.Load() != "" {
		t.Error("Expected empty zero value")
	}
	s.Store(strings.Repeat("x", MaxStringLen+5))
	if len(s.Load()) != MaxStringLen {
		t.Errorf("Expected truncation to %d, got %d", MaxStringLen, len(s.Load()))
	}
}
