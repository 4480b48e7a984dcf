package transcoder

// Flags tune the detection-driven conversions (EncodeAs and friends).
type Flags uint8

const (
	None Flags = 0
	// SkipBOM drops the detected byte order mark before decoding. Without it
	// a BOM is ordinary data and decodes to U+FEFF.
	SkipBOM Flags = 1 << 0

	// 0x2, 0x4 and 0x8 are reserved.
)

// Has reports whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }
