package hostmod

import "math"

// MaxInputSize bounds a single guest input buffer.
const MaxInputSize = 1 << 30

func safeAddU32(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}
