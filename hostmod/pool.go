package hostmod

import "sync"

const (
	// Pool limits to prevent memory bloat
	poolMaxCap  = 1 << 20 // max retained scratch bytes
	poolInitCap = 256
)

// scratch buffers for converted output before it is copied to the guest
var scratchPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, poolInitCap)
		return &buf
	},
}

func getScratch() *[]byte {
	return scratchPool.Get().(*[]byte)
}

func putScratch(buf *[]byte) {
	if buf == nil || cap(*buf) > poolMaxCap {
		return // reject oversized
	}
	*buf = (*buf)[:0]
	scratchPool.Put(buf)
}
