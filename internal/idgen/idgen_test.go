package idgen

import "testing"

func TestNextIsStrictlyIncreasing(t *testing.T) {
	g := New()
	prev := g.Next()
	if prev != 1 {
		t.Fatalf("first id = %d, want 1", prev)
	}
	for i := 0; i < 100; i++ {
		id := g.Next()
		if id <= prev {
			t.Fatalf("id %d not greater than previous %d", id, prev)
		}
		prev = id
	}
}

func TestAdvanceTo(t *testing.T) {
	g := New()
	g.Next()
	g.AdvanceTo(41)
	if got := g.Next(); got != 42 {
		t.Errorf("after AdvanceTo(41) Next() = %d, want 42", got)
	}

	// never moves backwards
	g.AdvanceTo(10)
	if got := g.Next(); got != 43 {
		t.Errorf("after AdvanceTo(10) Next() = %d, want 43", got)
	}
	if got := g.Current(); got != 43 {
		t.Errorf("Current() = %d, want 43", got)
	}
}
