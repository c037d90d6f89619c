package source

import (
	"sync"
	"testing"
)

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("main")
	b := in.Intern("main")
	if a != b || a == NoStringID {
		t.Fatalf("Intern not stable: %d %d", a, b)
	}
	if s := in.MustLookup(a); s != "main" {
		t.Errorf("Lookup = %q", s)
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Error("Lookup of unknown id succeeded")
	}
	if in.Intern("") != NoStringID {
		t.Error("empty string must map to NoStringID")
	}
}

func TestInternerConcurrent(t *testing.T) {
	in := NewInterner()
	var wg sync.WaitGroup
	ids := make([]StringID, 16)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = in.Intern("shared")
		}(i)
	}
	wg.Wait()
	for _, id := range ids {
		if id != ids[0] {
			t.Fatalf("concurrent interning produced %v", ids)
		}
	}
	if in.Len() != 2 {
		t.Errorf("Len = %d, want 2", in.Len())
	}
}

func TestNormalizeName(t *testing.T) {
	decomposed := "café"
	if got := NormalizeName(decomposed); got != "café" {
		t.Errorf("NormalizeName = %q", got)
	}
	if got := NormalizeName("plain"); got != "plain" {
		t.Errorf("NormalizeName(plain) = %q", got)
	}
}
