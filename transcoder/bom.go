package transcoder

// BOMResult is the outcome of byte-order-mark sniffing.
type BOMResult struct {
	Encoding Encoding
	// Len is the number of BOM bytes to skip: 0, 2, 3 or 4.
	Len int
}

// Detect sniffs the byte order mark at the start of b.
//
//	Encoding   Bytes
//	────────────────────
//	UTF-8      EF BB BF
//	UTF-16BE   FE FF
//	UTF-16LE   FF FE
//	UTF-32BE   00 00 FE FF
//	UTF-32LE   FF FE 00 00
//
// FF FE is UTF-32LE only when the full four bytes are present, otherwise it
// is UTF-16LE. Buffers of two bytes or fewer, and buffers without a
// recognized BOM, report UTF8 with length 0. Detect never fails.
func Detect(b []byte) BOMResult {
	if len(b) > 2 {
		switch {
		case b[0] == 0xFF && b[1] == 0xFE:
			if len(b) >= 4 && b[2] == 0x00 && b[3] == 0x00 {
				return BOMResult{UTF32LE, 4}
			}
			return BOMResult{UTF16LE, 2}
		case b[0] == 0xFE && b[1] == 0xFF:
			return BOMResult{UTF16BE, 2}
		case len(b) >= 4 && b[0] == 0x00 && b[1] == 0x00 && b[2] == 0xFE && b[3] == 0xFF:
			return BOMResult{UTF32BE, 4}
		case b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF:
			return BOMResult{UTF8, 3}
		}
	}
	return BOMResult{UTF8, 0}
}

var boms = [encodingCount][]byte{
	UTF8:    {0xEF, 0xBB, 0xBF},
	UTF16LE: {0xFF, 0xFE},
	UTF16BE: {0xFE, 0xFF},
	UTF32LE: {0xFF, 0xFE, 0x00, 0x00},
	UTF32BE: {0x00, 0x00, 0xFE, 0xFF},
}

// BOM returns a fresh copy of the byte order mark for enc. The transcoding
// functions never emit one on their own.
func BOM(enc Encoding) []byte {
	if !enc.IsValid() {
		panic("transcoder: unreachable encoding " + enc.String())
	}
	return append([]byte(nil), boms[enc]...)
}
