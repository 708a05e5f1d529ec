package handler

import (
	"bytes"
	"sync"
)

const (
	responseBufferSize = 512
	// buffers grown past this by a large friends list are left to the GC
	maxPooledBufferSize = 64 << 10
)

var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, responseBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
