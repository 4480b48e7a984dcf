package transcoder

// Runtime entry points. Each one switches once per call on the Encoding
// values and lands in a generic instantiation specialized for the codec
// pair, so the per-code-point loop carries no dynamic dispatch.
//
// Every switch covers all encodings; reaching a default is a defect.

func unreachable(enc Encoding) string {
	return "transcoder: unreachable encoding " + enc.String()
}

func decodeInto[O Codec](dst, in []byte, from Encoding) []byte {
	enc := codecOf[O]()
	switch from {
	case UTF8:
		return appendReencode(dst, in, UTF8Codec{}, enc)
	case UTF16LE:
		return appendReencode(dst, in, UTF16LECodec{}, enc)
	case UTF16BE:
		return appendReencode(dst, in, UTF16BECodec{}, enc)
	case UTF32LE:
		return appendReencode(dst, in, UTF32LECodec{}, enc)
	case UTF32BE:
		return appendReencode(dst, in, UTF32BECodec{}, enc)
	}
	panic(unreachable(from))
}

// Transcode converts in from one encoding to another. It is the runtime
// form of Reencode and shares its replacement rules.
func Transcode(in []byte, from, to Encoding) []byte {
	return AppendTranscode(make([]byte, 0, reserve(from, to, len(in))), in, from, to)
}

// AppendTranscode is Transcode writing to the end of dst.
func AppendTranscode(dst, in []byte, from, to Encoding) []byte {
	switch to {
	case UTF8:
		return decodeInto[UTF8Codec](dst, in, from)
	case UTF16LE:
		return decodeInto[UTF16LECodec](dst, in, from)
	case UTF16BE:
		return decodeInto[UTF16BECodec](dst, in, from)
	case UTF32LE:
		return decodeInto[UTF32LECodec](dst, in, from)
	case UTF32BE:
		return decodeInto[UTF32BECodec](dst, in, from)
	}
	panic(unreachable(to))
}

// EncodeAs is the runtime form of Encode: in is converted to the encoding
// to, with its own encoding taken from the byte order mark.
func EncodeAs(to Encoding, in []byte, flags Flags) []byte {
	switch to {
	case UTF8:
		return Encode[UTF8Codec](in, flags)
	case UTF16LE:
		return Encode[UTF16LECodec](in, flags)
	case UTF16BE:
		return Encode[UTF16BECodec](in, flags)
	case UTF32LE:
		return Encode[UTF32LECodec](in, flags)
	case UTF32BE:
		return Encode[UTF32BECodec](in, flags)
	}
	panic(unreachable(to))
}

// EncodeIfNecessaryAs is the runtime form of EncodeIfNecessary.
func EncodeIfNecessaryAs(to Encoding, in []byte, scratch *[]byte, flags Flags) []byte {
	switch to {
	case UTF8:
		return EncodeIfNecessary[UTF8Codec](in, scratch, flags)
	case UTF16LE:
		return EncodeIfNecessary[UTF16LECodec](in, scratch, flags)
	case UTF16BE:
		return EncodeIfNecessary[UTF16BECodec](in, scratch, flags)
	case UTF32LE:
		return EncodeIfNecessary[UTF32LECodec](in, scratch, flags)
	case UTF32BE:
		return EncodeIfNecessary[UTF32BECodec](in, scratch, flags)
	}
	panic(unreachable(to))
}

// ToCodePoints decodes in from enc into code points.
func ToCodePoints(enc Encoding, in []byte) []CodePoint {
	switch enc {
	case UTF8:
		return DecodeAs[UTF8Codec](in)
	case UTF16LE:
		return DecodeAs[UTF16LECodec](in)
	case UTF16BE:
		return DecodeAs[UTF16BECodec](in)
	case UTF32LE:
		return DecodeAs[UTF32LECodec](in)
	case UTF32BE:
		return DecodeAs[UTF32BECodec](in)
	}
	panic(unreachable(enc))
}

// FromCodePoints encodes cps in enc.
func FromCodePoints(enc Encoding, cps []CodePoint) []byte {
	switch enc {
	case UTF8:
		return EncodeCodePoints[UTF8Codec](cps)
	case UTF16LE:
		return EncodeCodePoints[UTF16LECodec](cps)
	case UTF16BE:
		return EncodeCodePoints[UTF16BECodec](cps)
	case UTF32LE:
		return EncodeCodePoints[UTF32LECodec](cps)
	case UTF32BE:
		return EncodeCodePoints[UTF32BECodec](cps)
	}
	panic(unreachable(enc))
}

// EncodeCodePoint encodes a single code point in enc.
func EncodeCodePoint(enc Encoding, cp CodePoint) []byte {
	return CodecFor(enc).Append(make([]byte, 0, 4), cp)
}
