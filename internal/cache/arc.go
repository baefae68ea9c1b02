package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// NewLRU returns an adaptive replacement cache holding at most size entries.
func NewLRU[K comparable, V any](size int) (*LRU[K, V], error) {
	c, err := lru.NewARC(size)
	if err != nil {
		return nil, fmt.Errorf("lru new instance of lru arc cache: %w", err)
	}

	return &LRU[K, V]{arc: c}, nil
}

// LRU types the untyped ARC cache. Only values of type V are ever stored,
// so the assertion in Get cannot fail.
type LRU[K comparable, V any] struct {
	arc *lru.ARCCache
}

func (c *LRU[K, V]) Get(key K) (V, bool) {
	v, ok := c.arc.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

func (c *LRU[K, V]) Add(key K, value V) {
	c.arc.Add(key, value)
}

func (c *LRU[K, V]) Delete(key K) {
	c.arc.Remove(key)
}

func (c *LRU[K, V]) Purge() {
	c.arc.Purge()
}
