package transcoder

import "github.com/wippyai/utxt/transcoder/internal/octet"

// CodePoint is a Unicode scalar value or Replacement. It is unsigned and
// 32 bits wide; UTF-32 input is taken as is, so values above U+10FFFF and
// surrogate values can appear and are carried through unchanged.
type CodePoint uint32

// Replacement is U+FFFD, substituted for every unit that cannot be decoded.
const Replacement CodePoint = 0xFFFD

const (
	// 0xD800-0xDC00 encodes the high 10 bits of a pair.
	// 0xDC00-0xE000 encodes the low 10 bits of a pair.
	// the value is those 20 bits plus 0x10000.
	surr1    = 0xD800
	surr2    = 0xDC00
	surr3    = 0xE000
	surrSelf = 0x10000
)

// Codec decodes and encodes code points for one encoding.
//
// Extract reads the code point at b[*pos] and advances *pos past the bytes
// it consumed. Malformed units yield Replacement and advance by a fixed
// step: 1 byte for UTF-8, 2 bytes for UTF-16. Extract requires UnitSize
// bytes at *pos and panics otherwise; a UTF-8 sequence cut short by the end
// of b decodes as Replacement with a 1 byte advance.
//
// Append writes the bytes of cp to dst and is total.
//
// Complete reports whether b[pos:] holds a whole unit: at least UnitSize
// bytes, and for UTF-8 not a well-formed lead that is cut off by the end
// of the buffer.
type Codec interface {
	Encoding() Encoding
	UnitSize() int
	Complete(b []byte, pos int) bool
	Extract(b []byte, pos *int) CodePoint
	Append(dst []byte, cp CodePoint) []byte
}

// The codecs are zero-size and are meant to be used as type parameters.
type (
	// UTF8Codec decodes by bit pattern only; overlongs and encoded
	// surrogates pass through.
	UTF8Codec struct{}
	// UTF16LECodec reads little-endian code units and joins surrogate pairs.
	UTF16LECodec struct{}
	// UTF16BECodec reads big-endian code units and joins surrogate pairs.
	UTF16BECodec struct{}
	// UTF32LECodec reads little-endian 32-bit values without range checks.
	UTF32LECodec struct{}
	// UTF32BECodec reads big-endian 32-bit values without range checks.
	UTF32BECodec struct{}
)

var (
	_ Codec = UTF8Codec{}
	_ Codec = UTF16LECodec{}
	_ Codec = UTF16BECodec{}
	_ Codec = UTF32LECodec{}
	_ Codec = UTF32BECodec{}
)

// CodecFor maps a runtime encoding to its codec.
func CodecFor(enc Encoding) Codec {
	switch enc {
	case UTF8:
		return UTF8Codec{}
	case UTF16LE:
		return UTF16LECodec{}
	case UTF16BE:
		return UTF16BECodec{}
	case UTF32LE:
		return UTF32LECodec{}
	case UTF32BE:
		return UTF32BECodec{}
	}
	panic("transcoder: unreachable encoding " + enc.String())
}

func mustHave(b []byte, pos, n int) {
	if pos < 0 || pos+n > len(b) {
		panic("transcoder: extract past end of buffer")
	}
}

// UTF-8

func (UTF8Codec) Encoding() Encoding { return UTF8 }
func (UTF8Codec) UnitSize() int      { return 1 }

// utf8SeqLen is the sequence length announced by a lead byte. Continuation
// bytes and 0xF8..0xFF announce 1: they can only decode to Replacement.
func utf8SeqLen(c byte) int {
	switch {
	case c&0x80 == 0x00:
		return 1
	case c&0xE0 == 0xC0:
		return 2
	case c&0xF0 == 0xE0:
		return 3
	case c&0xF8 == 0xF0:
		return 4
	}
	return 1
}

func isCont(c byte) bool { return c&0xC0 == 0x80 }

func (UTF8Codec) Complete(b []byte, pos int) bool {
	n := len(b) - pos
	if n <= 0 {
		return false
	}
	if utf8SeqLen(b[pos]) <= n {
		return true
	}
	// Short sequence. It is a truncated tail only if nothing but
	// continuation bytes follow; otherwise Extract resyncs on it.
	for _, c := range b[pos+1:] {
		if !isCont(c) {
			return true
		}
	}
	return false
}

func (UTF8Codec) Extract(b []byte, pos *int) CodePoint {
	p := *pos
	mustHave(b, p, 1)
	b0 := b[p]
	n := len(b) - p

	switch {
	case b0&0x80 == 0:
		*pos = p + 1
		return CodePoint(b0)

	case n >= 2 && b0&0xE0 == 0xC0 && isCont(b[p+1]):
		*pos = p + 2
		return CodePoint(b0&0x1F)<<6 | CodePoint(b[p+1]&0x3F)

	case n >= 3 && b0&0xF0 == 0xE0 && isCont(b[p+1]) && isCont(b[p+2]):
		*pos = p + 3
		return CodePoint(b0&0x0F)<<12 | CodePoint(b[p+1]&0x3F)<<6 | CodePoint(b[p+2]&0x3F)

	case n >= 4 && b0&0xF8 == 0xF0 && isCont(b[p+1]) && isCont(b[p+2]) && isCont(b[p+3]):
		*pos = p + 4
		return CodePoint(b0&0x07)<<18 | CodePoint(b[p+1]&0x3F)<<12 |
			CodePoint(b[p+2]&0x3F)<<6 | CodePoint(b[p+3]&0x3F)
	}

	*pos = p + 1
	return Replacement
}

func (UTF8Codec) Append(dst []byte, cp CodePoint) []byte {
	switch {
	case cp < 0x80:
		return append(dst, byte(cp))
	case cp < 0x800:
		return append(dst,
			0xC0|byte(cp>>6),
			0x80|byte(cp)&0x3F)
	case cp < 0x10000:
		return append(dst,
			0xE0|byte(cp>>12),
			0x80|byte(cp>>6)&0x3F,
			0x80|byte(cp)&0x3F)
	default:
		return append(dst,
			0xF0|byte(cp>>18),
			0x80|byte(cp>>12)&0x3F,
			0x80|byte(cp>>6)&0x3F,
			0x80|byte(cp)&0x3F)
	}
}

// UTF-16

func unit16(b []byte, p int, little bool) uint16 {
	if little {
		return octet.Combine16(b[p+1], b[p])
	}
	return octet.Combine16(b[p], b[p+1])
}

func extractUTF16(b []byte, pos *int, little bool) CodePoint {
	p := *pos
	mustHave(b, p, 2)

	u1 := unit16(b, p, little)
	p += 2
	*pos = p

	if u1 < surr1 || u1 >= surr3 {
		return CodePoint(u1)
	}
	if u1 >= surr2 || p+1 >= len(b) {
		// lone trailing surrogate, or a leading one with no room for its pair
		return Replacement
	}

	u2 := unit16(b, p, little)
	if u2 < surr2 || u2 >= surr3 {
		// u2 is left in place and decoded on its own next time
		return Replacement
	}

	*pos = p + 2
	return surrSelf + CodePoint(u1-surr1)<<10 + CodePoint(u2-surr2)
}

// SurrogatePair splits a code point at or above U+10000 into its leading
// and trailing UTF-16 code units.
func SurrogatePair(cp CodePoint) (lead, trail uint16) {
	cp -= surrSelf
	return uint16(cp>>10) + surr1, uint16(cp&0x3FF) + surr2
}

func appendUTF16(dst []byte, cp CodePoint, little bool) []byte {
	put := func(dst []byte, u uint16) []byte {
		if little {
			return append(dst, octet.Low(u), octet.High(u))
		}
		return append(dst, octet.High(u), octet.Low(u))
	}
	if cp < surrSelf {
		return put(dst, uint16(cp))
	}
	lead, trail := SurrogatePair(cp)
	return put(put(dst, lead), trail)
}

func complete(b []byte, pos, n int) bool {
	return pos >= 0 && pos+n <= len(b)
}

func (UTF16LECodec) Encoding() Encoding                     { return UTF16LE }
func (UTF16LECodec) UnitSize() int                          { return 2 }
func (UTF16LECodec) Complete(b []byte, pos int) bool        { return complete(b, pos, 2) }
func (UTF16LECodec) Extract(b []byte, pos *int) CodePoint   { return extractUTF16(b, pos, true) }
func (UTF16LECodec) Append(dst []byte, cp CodePoint) []byte { return appendUTF16(dst, cp, true) }

func (UTF16BECodec) Encoding() Encoding                     { return UTF16BE }
func (UTF16BECodec) UnitSize() int                          { return 2 }
func (UTF16BECodec) Complete(b []byte, pos int) bool        { return complete(b, pos, 2) }
func (UTF16BECodec) Extract(b []byte, pos *int) CodePoint   { return extractUTF16(b, pos, false) }
func (UTF16BECodec) Append(dst []byte, cp CodePoint) []byte { return appendUTF16(dst, cp, false) }

// UTF-32

func (UTF32LECodec) Encoding() Encoding              { return UTF32LE }
func (UTF32LECodec) UnitSize() int                   { return 4 }
func (UTF32LECodec) Complete(b []byte, pos int) bool { return complete(b, pos, 4) }

func (UTF32LECodec) Extract(b []byte, pos *int) CodePoint {
	p := *pos
	mustHave(b, p, 4)
	*pos = p + 4
	return CodePoint(octet.Combine32(b[p+3], b[p+2], b[p+1], b[p]))
}

func (UTF32LECodec) Append(dst []byte, cp CodePoint) []byte {
	d := uint32(cp)
	return append(dst, octet.LL(d), octet.LH(d), octet.HL(d), octet.HH(d))
}

func (UTF32BECodec) Encoding() Encoding              { return UTF32BE }
func (UTF32BECodec) UnitSize() int                   { return 4 }
func (UTF32BECodec) Complete(b []byte, pos int) bool { return complete(b, pos, 4) }

func (UTF32BECodec) Extract(b []byte, pos *int) CodePoint {
	p := *pos
	mustHave(b, p, 4)
	*pos = p + 4
	return CodePoint(octet.Combine32(b[p], b[p+1], b[p+2], b[p+3]))
}

func (UTF32BECodec) Append(dst []byte, cp CodePoint) []byte {
	d := uint32(cp)
	return append(dst, octet.HH(d), octet.HL(d), octet.LH(d), octet.LL(d))
}
