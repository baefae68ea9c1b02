package bytespool

import (
	"bytes"
	"sync"
)

// Buffers that grew past maxCap are dropped instead of pooled.
const maxCap = 64 << 10

var pool = sync.Pool{
	New: func() interface{} {
		return &bytes.Buffer{}
	},
}

// Get returns an empty buffer.
func Get() *bytes.Buffer {
	return pool.Get().(*bytes.Buffer)
}

func Put(b *bytes.Buffer) {
	if b == nil || b.Cap() > maxCap {
		return
	}
	b.Reset()
	pool.Put(b)
}
