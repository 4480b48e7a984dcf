package transcoder

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// reserve is a capacity hint for re-encoding n bytes. Outputs may still
// grow past it.
func reserve(from, to Encoding, n int) int {
	wide := to == UTF32LE || to == UTF32BE
	switch {
	case from == UTF8 && wide:
		return 4 * n
	case (from == UTF16LE || from == UTF16BE) && wide:
		return 2 * n
	case from == UTF8 && (to == UTF16LE || to == UTF16BE):
		return 2 * n
	}
	return n
}

func codecOf[C Codec]() C {
	var c C
	if any(c) == nil {
		panic("transcoder: generic functions need a concrete codec type")
	}
	return c
}

// Reencode converts in from the encoding of I to the encoding of O,
// e.g. Reencode[UTF16LECodec, UTF8Codec](b).
//
// Malformed units become U+FFFD. If in ends in the middle of a unit, one
// U+FFFD is appended for the whole tail. Reencode never fails.
func Reencode[I, O Codec](in []byte) []byte {
	dec, enc := codecOf[I](), codecOf[O]()
	dst := make([]byte, 0, reserve(dec.Encoding(), enc.Encoding(), len(in)))
	return appendReencode(dst, in, dec, enc)
}

// AppendReencode is Reencode writing to the end of dst.
func AppendReencode[I, O Codec](dst, in []byte) []byte {
	return appendReencode(dst, in, codecOf[I](), codecOf[O]())
}

func appendReencode[I, O Codec](dst, in []byte, dec I, enc O) []byte {
	c := Cursor[I]{codec: dec, buf: in}
	for c.HasCodePoint() {
		dst = enc.Append(dst, c.codec.Extract(c.buf, &c.pos))
	}
	if c.HasBytes() {
		logTruncated(dec.Encoding(), c.pos, len(in))
		dst = enc.Append(dst, Replacement)
		c.Deplete()
	}
	return dst
}

// DecodeAs decodes in from the encoding of I into code points, with the
// same replacement rules as Reencode.
func DecodeAs[I Codec](in []byte) []CodePoint {
	dec := codecOf[I]()
	dst := make([]CodePoint, 0, len(in)/dec.UnitSize())
	return appendCodePoints(dst, in, dec)
}

func appendCodePoints[I Codec](dst []CodePoint, in []byte, dec I) []CodePoint {
	c := Cursor[I]{codec: dec, buf: in}
	for c.HasCodePoint() {
		dst = append(dst, c.codec.Extract(c.buf, &c.pos))
	}
	if c.HasBytes() {
		logTruncated(dec.Encoding(), c.pos, len(in))
		dst = append(dst, Replacement)
		c.Deplete()
	}
	return dst
}

// EncodeCodePoints encodes cps in the encoding of O.
func EncodeCodePoints[O Codec](cps []CodePoint) []byte {
	return appendEncoded(make([]byte, 0, 4*len(cps)), cps, codecOf[O]())
}

func appendEncoded[O Codec](dst []byte, cps []CodePoint, enc O) []byte {
	for _, cp := range cps {
		dst = enc.Append(dst, cp)
	}
	return dst
}

// Encode converts in to the encoding of O. The input encoding is taken from
// its byte order mark (UTF-8 if there is none), never from the caller. With
// SkipBOM the mark is dropped before decoding.
func Encode[O Codec](in []byte, flags Flags) []byte {
	enc := codecOf[O]()
	from, body := sniff(in, flags, enc.Encoding())
	dst := make([]byte, 0, reserve(from, enc.Encoding(), len(body)))
	return decodeInto[O](dst, body, from)
}

// EncodeIfNecessary is Encode that skips the work when the detected input
// encoding already is the encoding of O: it then returns a sub-slice of in
// without copying. Otherwise the result is written to *scratch, replacing
// its contents, and *scratch is returned.
func EncodeIfNecessary[O Codec](in []byte, scratch *[]byte, flags Flags) []byte {
	enc := codecOf[O]()
	from, body := sniff(in, flags, enc.Encoding())
	if from == enc.Encoding() {
		return body
	}
	if scratch == nil {
		scratch = new([]byte)
	}
	if *scratch == nil {
		*scratch = make([]byte, 0, reserve(from, enc.Encoding(), len(body)))
	}
	*scratch = decodeInto[O]((*scratch)[:0], body, from)
	return *scratch
}

func sniff(in []byte, flags Flags, to Encoding) (Encoding, []byte) {
	bom := Detect(in)
	if flags.Has(SkipBOM) {
		in = in[bom.Len:]
	}
	if ce := Logger().Check(zapcore.DebugLevel, "detected input encoding"); ce != nil {
		ce.Write(
			zap.Stringer("from", bom.Encoding),
			zap.Stringer("to", to),
			zap.Int("bom", bom.Len),
			zap.Bool("skip_bom", flags.Has(SkipBOM)),
			zap.Int("size", len(in)),
		)
	}
	return bom.Encoding, in
}

func logTruncated(enc Encoding, pos, size int) {
	if ce := Logger().Check(zapcore.DebugLevel, "truncated trailing unit"); ce != nil {
		ce.Write(
			zap.Stringer("encoding", enc),
			zap.Int("offset", pos),
			zap.Int("dangling", size-pos),
		)
	}
}

// ToUTF8 encodes cps as UTF-8.
func ToUTF8(cps []CodePoint) []byte {
	return EncodeCodePoints[UTF8Codec](cps)
}

// ToUTF8String encodes cps as a UTF-8 Go string.
func ToUTF8String(cps []CodePoint) string {
	return string(ToUTF8(cps))
}
