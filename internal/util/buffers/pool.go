// Package buffers provides reusable byte buffers for the streaming cipher's
// read path, to reduce heap allocations and GC pressure.
package buffers

import (
	"sync"

	"github.com/chadvoegele/s7/internal/constants"
)

var streamPool = &sync.Pool{
	New: func() interface{} {
		buf := make([]byte, constants.StreamBufferSize)
		return &buf
	},
}

// Get retrieves a pooled buffer sized for streaming I/O.
// The buffer must be returned with Put when the caller is done with it.
func Get() *[]byte {
	return streamPool.Get().(*[]byte)
}

// Put returns a buffer to the pool. Only buffers of the correct size are
// pooled; anything else is dropped on the floor.
func Put(buf *[]byte) {
	if buf != nil && len(*buf) == constants.StreamBufferSize {
		clear(*buf)
		streamPool.Put(buf)
	}
}
