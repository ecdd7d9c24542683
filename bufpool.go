package serman

import (
	"bytes"
	"sync"
)

// bytesBufPool reuses scratch buffers for Marshal.
// This reduces GC pressure when many small values are encoded.
var bytesBufPool = sync.Pool{
	New: func() any {
		// A 4KB default is chosen to avoid re-allocations for common packet sizes.
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}
