package strpool

import (
	"strings"
	"sync"
)

var pool = sync.Pool{
	New: func() interface{} {
		return &strings.Builder{}
	},
}

// Get returns an empty builder.
func Get() *strings.Builder {
	return pool.Get().(*strings.Builder)
}

// Put resets b and returns it to the pool. Strings built from b before the
// call stay valid.
func Put(b *strings.Builder) {
	if b == nil {
		return
	}
	b.Reset()
	pool.Put(b)
}
