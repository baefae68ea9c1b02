package cache

import "testing"

var _ Cache[string, int] = (*LRU[string, int])(nil)

func TestNewLRUInvalidSize(t *testing.T) {
	t.Parallel()

	if _, err := NewLRU[string, int](0); err == nil {
		t.Fatal("expected error for zero size")
	}
}

func TestLRU(t *testing.T) {
	t.Parallel()

	c, err := NewLRU[string, int](2)
	if err != nil {
		t.Fatal(err)
	}

	if v, ok := c.Get("missing"); ok || v != 0 {
		t.Errorf("expected zero miss got %v, %v", v, ok)
	}

	c.Add("a", 1)
	c.Add("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("expected a=1 got %v, %v", v, ok)
	}

	c.Add("c", 3)
	var kept int
	for _, k := range []string{"a", "b", "c"} {
		if _, ok := c.Get(k); ok {
			kept++
		}
	}
	if kept != 2 {
		t.Errorf("expected 2 entries got %d", kept)
	}

	c.Delete("c")
	if _, ok := c.Get("c"); ok {
		t.Error("expected c to be deleted")
	}

	c.Purge()
	for _, k := range []string{"a", "b"} {
		if _, ok := c.Get(k); ok {
			t.Errorf("expected %s to be purged", k)
		}
	}
}
