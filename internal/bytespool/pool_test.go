package bytespool

import (
	"bytes"
	"testing"
)

func TestGetReturnsEmptyBuffer(t *testing.T) {
	b := Get()
	b.WriteString("view")
	Put(b)

	if got := Get(); got.Len() != 0 {
		t.Errorf("got buffer with %d bytes, want empty", got.Len())
	}
}

func TestPutDropsLargeBuffers(t *testing.T) {
	b := bytes.NewBuffer(make([]byte, 0, maxCap+1))
	Put(b)
	Put(nil)
}
