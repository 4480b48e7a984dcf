package transcoder

import (
	"bytes"

	"github.com/wippyai/utxt/errors"
)

// IsScalar reports whether cp is a Unicode scalar value: at most U+10FFFF
// and not a surrogate.
func IsScalar(cp CodePoint) bool {
	return cp < 0x110000 && (cp < surr1 || cp >= surr3)
}

// wellFormed reports whether unit is the one canonical encoding of the
// scalar value cp. Substituted units, overlong UTF-8 forms, surrogates and
// values past U+10FFFF all fail this check.
func wellFormed(codec Codec, cp CodePoint, unit []byte) bool {
	if !IsScalar(cp) {
		return false
	}
	var scratch [4]byte
	return bytes.Equal(codec.Append(scratch[:0], cp), unit)
}

// Validate checks that in is well-formed in enc. It returns nil, or an
// *errors.Error of kind malformed or truncated carrying the byte offset of
// the first bad unit. A literal, correctly encoded U+FFFD is valid.
//
// Validate is the strict counterpart of the decoding functions, which
// accept any input.
func Validate(in []byte, enc Encoding) error {
	codec := CodecFor(enc)
	c := NewCursorFor(enc, in)
	for c.HasCodePoint() {
		mark := c.Save()
		cp := c.Next()
		if !wellFormed(codec, cp, c.Between(mark.Pos(), c.Pos())) {
			end := min(mark.Pos()+4, len(in))
			return errors.Malformed(enc.String(), mark.Pos(), in[mark.Pos():end])
		}
	}
	if c.HasBytes() {
		return errors.Truncated(enc.String(), c.Pos(), len(in)-c.Pos())
	}
	return nil
}

// Count returns the number of code points ToCodePoints would produce.
func Count(in []byte, enc Encoding) int {
	c := NewCursorFor(enc, in)
	n := 0
	for c.HasCodePoint() {
		c.Next()
		n++
	}
	if c.HasBytes() {
		n++
	}
	return n
}

// Report summarizes what the engine sees in a buffer.
type Report struct {
	// Encoding and BOMLen are the result of Detect.
	Encoding Encoding
	BOMLen   int
	// Size is the input length in bytes, BOM included.
	Size int
	// CodePoints counts the decoded code points after the BOM, including
	// substituted ones.
	CodePoints int
	// Invalid counts code points that did not come from a well-formed unit.
	Invalid int
	// FirstInvalid is the byte offset of the first such unit, or -1.
	FirstInvalid int
	// Truncated is set when the input ends inside a unit.
	Truncated bool
}

// Valid reports whether the buffer decodes without any substitution.
func (r Report) Valid() bool { return r.Invalid == 0 }

// Inspect detects the encoding of in and decodes it after the BOM,
// collecting statistics.
func Inspect(in []byte) Report {
	bom := Detect(in)
	return inspect(in, bom.Encoding, bom.Len)
}

// InspectAs decodes all of in as enc, without looking for a BOM.
func InspectAs(in []byte, enc Encoding) Report {
	return inspect(in, enc, 0)
}

func inspect(in []byte, enc Encoding, bomLen int) Report {
	r := Report{
		Encoding:     enc,
		BOMLen:       bomLen,
		Size:         len(in),
		FirstInvalid: -1,
	}

	codec := CodecFor(enc)
	c := NewCursorFor(enc, in)
	c.Advance(bomLen)

	invalid := func(pos int) {
		r.Invalid++
		if r.FirstInvalid < 0 {
			r.FirstInvalid = pos
		}
	}

	for c.HasCodePoint() {
		mark := c.Save()
		cp := c.Next()
		r.CodePoints++
		if !wellFormed(codec, cp, c.Between(mark.Pos(), c.Pos())) {
			invalid(mark.Pos())
		}
	}
	if c.HasBytes() {
		r.Truncated = true
		r.CodePoints++
		invalid(c.Pos())
	}
	return r
}
