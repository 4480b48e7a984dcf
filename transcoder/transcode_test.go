package transcoder

import (
	"encoding/binary"
	"testing"
	"unicode/utf16"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// refEncode builds the expected bytes of a well-formed Go string without
// going through the package's codecs.
func refEncode(enc Encoding, s string) []byte {
	var out []byte
	switch enc {
	case UTF8:
		return []byte(s)
	case UTF16LE, UTF16BE:
		var order binary.AppendByteOrder = binary.LittleEndian
		if enc == UTF16BE {
			order = binary.BigEndian
		}
		for _, u := range utf16.Encode([]rune(s)) {
			out = order.AppendUint16(out, u)
		}
	case UTF32LE, UTF32BE:
		var order binary.AppendByteOrder = binary.LittleEndian
		if enc == UTF32BE {
			order = binary.BigEndian
		}
		for _, r := range s {
			out = order.AppendUint32(out, uint32(r))
		}
	}
	return out
}

// Literal forms of " ab" behind a byte order mark.
var bomSpaceAB = [encodingCount]string{
	UTF8:    "\xEF\xBB\xBF\x20\x61\x62",
	UTF16LE: "\xFF\xFE\x20\x00\x61\x00\x62\x00",
	UTF16BE: "\xFE\xFF\x00\x20\x00\x61\x00\x62",
	UTF32LE: "\xFF\xFE\x00\x00\x20\x00\x00\x00\x61\x00\x00\x00\x62\x00\x00\x00",
	UTF32BE: "\x00\x00\xFE\xFF\x00\x00\x00\x20\x00\x00\x00\x61\x00\x00\x00\x62",
}

var sampleTexts = []string{
	"",
	"a",
	"hello, world",
	"à la carte",
	"aà⟶🍌",
	"è una ⛵ ┌─┐",
	"日本語のテキスト",
	"🍌🍌 bananas 🍌🍌",
	"\x00\u007F\u0080\u07FF\u0800\uFFFD\uFFFF\U00010000\U0010FFFF",
}

func TestReencode_Literals(t *testing.T) {
	for _, from := range Encodings() {
		for _, to := range Encodings() {
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				got := Transcode([]byte(bomSpaceAB[from]), from, to)
				assert.Equal(t, []byte(bomSpaceAB[to]), got)
			})
		}
	}
}

func TestReencode_AllPairs(t *testing.T) {
	for _, s := range sampleTexts {
		for _, from := range Encodings() {
			for _, to := range Encodings() {
				in := refEncode(from, s)
				want := refEncode(to, s)
				got := Transcode(in, from, to)
				if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("%q %s->%s (-want +got):\n%s", s, from, to, diff)
				}
			}
		}
	}
}

func TestReencode_Generic(t *testing.T) {
	in := refEncode(UTF16LE, "aà⟶🍌")

	assert.Equal(t, []byte("aà⟶🍌"), Reencode[UTF16LECodec, UTF8Codec](in))
	assert.Equal(t, refEncode(UTF32BE, "aà⟶🍌"), Reencode[UTF16LECodec, UTF32BECodec](in))
	assert.Equal(t, refEncode(UTF16BE, "aà⟶🍌"), Reencode[UTF16LECodec, UTF16BECodec](in))

	dst := AppendReencode[UTF8Codec, UTF16BECodec]([]byte("prefix"), []byte("ab"))
	assert.Equal(t, []byte("prefix\x00a\x00b"), dst)

	assert.Panics(t, func() { Reencode[Codec, UTF8Codec](in) })
	assert.Panics(t, func() { Reencode[UTF8Codec, Codec](in) })
}

func TestReencode_Idempotent(t *testing.T) {
	for _, enc := range Encodings() {
		for _, s := range sampleTexts {
			in := refEncode(enc, s)
			if diff := cmp.Diff(in, Transcode(in, enc, enc), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("%s %q (-want +got):\n%s", enc, s, diff)
			}
		}
	}
}

func TestReencode_RoundTrip(t *testing.T) {
	for _, s := range sampleTexts {
		for _, a := range Encodings() {
			for _, b := range Encodings() {
				in := refEncode(a, s)
				back := Transcode(Transcode(in, a, b), b, a)
				if diff := cmp.Diff(in, back, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("%q %s<->%s (-want +got):\n%s", s, a, b, diff)
				}
			}
		}
	}
}

func TestReencode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		enc  Encoding
		in   string
		want []CodePoint
	}{
		{"utf-8 truncated tail", UTF8, "\xE2\x9F", []CodePoint{Replacement}},
		{"utf-8 truncated after text", UTF8, "a\xE2\x9F", []CodePoint{'a', Replacement}},
		{"utf-8 truncated four byte", UTF8, "\xF0\x9F\x8D", []CodePoint{Replacement}},
		{"utf-8 lone lead at end", UTF8, "ab\xC3", []CodePoint{'a', 'b', Replacement}},
		{"utf-8 bad continuation", UTF8, "\xE2\x41", []CodePoint{Replacement, 'A'}},
		{"utf-8 resync by one byte", UTF8, "\xE2\x9F\x41", []CodePoint{Replacement, Replacement, 'A'}},
		{"utf-8 stray continuations", UTF8, "\x80\x80a", []CodePoint{Replacement, Replacement, 'a'}},
		{"utf-16le odd length", UTF16LE, "a\x00b", []CodePoint{'a', Replacement}},
		{"utf-16be odd length", UTF16BE, "\x00a\x00", []CodePoint{'a', Replacement}},
		{"utf-16le lone trail", UTF16LE, "\x00\xDCa\x00", []CodePoint{Replacement, 'a'}},
		{"utf-16le lead at end", UTF16LE, "a\x00\x3C\xD8", []CodePoint{'a', Replacement}},
		{"utf-16le lead, odd tail", UTF16LE, "\x3C\xD8\x4C", []CodePoint{Replacement, Replacement}},
		{"utf-16le unpaired lead", UTF16LE, "\x3C\xD8a\x00", []CodePoint{Replacement, 'a'}},
		{"utf-32le short tail", UTF32LE, "a\x00\x00\x00b\x00", []CodePoint{'a', Replacement}},
		{"utf-32be short tail", UTF32BE, "\x00\x00\x00a\x00", []CodePoint{'a', Replacement}},
		{"utf-32le out of range", UTF32LE, "\x00\x00\x11\x00", []CodePoint{0x110000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToCodePoints(tt.enc, []byte(tt.in))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			assert.Equal(t, len(tt.want), Count([]byte(tt.in), tt.enc))

			// byte paths agree with the code point path
			for _, to := range Encodings() {
				assert.Equal(t, FromCodePoints(to, tt.want), Transcode([]byte(tt.in), tt.enc, to), to.String())
			}
		})
	}
}

func TestEncodeAs_KeepsBOM(t *testing.T) {
	for _, from := range Encodings() {
		for _, to := range Encodings() {
			got := EncodeAs(to, []byte(bomSpaceAB[from]), None)
			assert.Equal(t, []byte(bomSpaceAB[to]), got, "%s->%s", from, to)
		}
	}
}

func TestEncodeAs_SkipBOM(t *testing.T) {
	for _, from := range Encodings() {
		for _, to := range Encodings() {
			got := EncodeAs(to, []byte(bomSpaceAB[from]), SkipBOM)
			assert.Equal(t, refEncode(to, " ab"), got, "%s->%s", from, to)
		}
	}
}

func TestEncodeAs_NoBOMIsUTF8(t *testing.T) {
	// without a mark the input is UTF-8, whatever it really is
	in := refEncode(UTF16LE, "ab")
	got := EncodeAs(UTF16LE, in, None)
	assert.Equal(t, []byte("a\x00\x00\x00b\x00\x00\x00"), got)

	assert.Equal(t, refEncode(UTF32BE, "héllo"), EncodeAs(UTF32BE, []byte("héllo"), SkipBOM))
	assert.Empty(t, EncodeAs(UTF16BE, nil, None))
}

func TestEncodeAs_ShortInputIgnoresBOM(t *testing.T) {
	// two bytes are too short for detection and decode as UTF-8
	got := EncodeAs(UTF32LE, []byte{0xFF, 0xFE}, SkipBOM)
	assert.Equal(t, FromCodePoints(UTF32LE, []CodePoint{Replacement, Replacement}), got)
}

func TestEncodeIfNecessaryAs_Aliases(t *testing.T) {
	var scratch []byte

	in := []byte("hello")
	out := EncodeIfNecessaryAs(UTF8, in, &scratch, None)
	assert.Equal(t, in, out)
	assert.Same(t, &in[0], &out[0])
	assert.Nil(t, scratch)

	withBOM := []byte(bomSpaceAB[UTF16BE])
	out = EncodeIfNecessaryAs(UTF16BE, withBOM, &scratch, None)
	assert.Same(t, &withBOM[0], &out[0])
	assert.Len(t, out, len(withBOM))

	out = EncodeIfNecessaryAs(UTF16BE, withBOM, &scratch, SkipBOM)
	assert.Same(t, &withBOM[2], &out[0])
	assert.Equal(t, refEncode(UTF16BE, " ab"), out)
	assert.Nil(t, scratch)

	out = EncodeIfNecessaryAs(UTF8, in, nil, None)
	assert.Same(t, &in[0], &out[0])
}

func TestEncodeIfNecessaryAs_Converts(t *testing.T) {
	var scratch []byte

	first := EncodeIfNecessaryAs(UTF16LE, []byte("hello"), &scratch, None)
	assert.Equal(t, refEncode(UTF16LE, "hello"), first)
	require.NotEmpty(t, scratch)
	assert.Same(t, &scratch[0], &first[0])

	second := EncodeIfNecessaryAs(UTF16LE, []byte("hi"), &scratch, None)
	assert.Equal(t, refEncode(UTF16LE, "hi"), second)
	assert.Same(t, &first[0], &second[0], "scratch storage is reused")

	got := EncodeIfNecessaryAs(UTF8, []byte(bomSpaceAB[UTF32LE]), nil, SkipBOM)
	assert.Equal(t, []byte(" ab"), got)
}

func TestEncodeIfNecessary_MatchesEncode(t *testing.T) {
	for _, from := range Encodings() {
		for _, flags := range []Flags{None, SkipBOM} {
			in := []byte(bomSpaceAB[from])
			var scratch []byte
			assert.Equal(t, Encode[UTF32LECodec](in, flags), EncodeIfNecessary[UTF32LECodec](in, &scratch, flags))
			assert.Equal(t, Encode[UTF8Codec](in, flags), EncodeIfNecessary[UTF8Codec](in, &scratch, flags))
		}
	}
}

func TestCodePointConversions(t *testing.T) {
	s := "aà⟶🍌"
	want := []CodePoint{'a', 'à', '⟶', 0x1F34C}

	for _, enc := range Encodings() {
		got := ToCodePoints(enc, refEncode(enc, s))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", enc, diff)
		}
		assert.Equal(t, refEncode(enc, s), FromCodePoints(enc, want), enc.String())
	}

	assert.Equal(t, []byte(s), ToUTF8(want))
	assert.Equal(t, s, ToUTF8String(want))
	assert.Equal(t, want, DecodeAs[UTF8Codec]([]byte(s)))
	assert.Equal(t, refEncode(UTF16BE, s), EncodeCodePoints[UTF16BECodec](want))

	assert.Empty(t, ToCodePoints(UTF32BE, nil))
	assert.Empty(t, FromCodePoints(UTF16LE, nil))
}

func TestEncodeCodePoint(t *testing.T) {
	for _, tc := range codepointCases {
		for _, enc := range Encodings() {
			assert.Equal(t, []byte(tc.enc[enc]), EncodeCodePoint(enc, tc.cp), "%s %s", tc.name, enc)
		}
	}
}

func TestDispatch_Unreachable(t *testing.T) {
	bad := Encoding(7)
	in := []byte("a")

	assert.Panics(t, func() { Transcode(in, UTF8, bad) })
	assert.Panics(t, func() { Transcode(in, bad, UTF8) })
	assert.Panics(t, func() { EncodeAs(bad, in, None) })
	assert.Panics(t, func() { EncodeIfNecessaryAs(bad, in, nil, None) })
	assert.Panics(t, func() { ToCodePoints(bad, in) })
	assert.Panics(t, func() { FromCodePoints(bad, nil) })
	assert.Panics(t, func() { EncodeCodePoint(bad, 'a') })
}

func TestReserve(t *testing.T) {
	assert.Equal(t, 40, reserve(UTF8, UTF32LE, 10))
	assert.Equal(t, 20, reserve(UTF16BE, UTF32BE, 10))
	assert.Equal(t, 20, reserve(UTF8, UTF16LE, 10))
	assert.Equal(t, 10, reserve(UTF32LE, UTF8, 10))
	assert.Equal(t, 10, reserve(UTF16LE, UTF8, 10))
}

func TestTranscode_XTextOracle(t *testing.T) {
	oracles := map[Encoding]encoding.Encoding{
		UTF16LE: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
		UTF16BE: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
		UTF32LE: utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM),
		UTF32BE: utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM),
	}

	for enc, oracle := range oracles {
		t.Run(enc.String(), func(t *testing.T) {
			for _, s := range sampleTexts {
				want, err := oracle.NewEncoder().Bytes([]byte(s))
				require.NoError(t, err)
				if diff := cmp.Diff(want, Transcode([]byte(s), UTF8, enc), cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("encode %q (-want +got):\n%s", s, diff)
				}

				back, err := oracle.NewDecoder().Bytes(want)
				require.NoError(t, err)
				if diff := cmp.Diff(back, Transcode(want, enc, UTF8), cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("decode %q (-want +got):\n%s", s, diff)
				}
			}
		})
	}
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(zap.NewNop())

	EncodeAs(UTF16LE, []byte("\xEF\xBB\xBFab\xE2\x9F"), SkipBOM)

	detected := logs.FilterMessage("detected input encoding").All()
	require.Len(t, detected, 1)
	fields := detected[0].ContextMap()
	assert.Equal(t, "utf-8", fields["from"])
	assert.Equal(t, "utf-16le", fields["to"])
	assert.Equal(t, int64(3), fields["bom"])
	assert.Equal(t, true, fields["skip_bom"])

	truncated := logs.FilterMessage("truncated trailing unit").All()
	require.Len(t, truncated, 1)
	assert.Equal(t, int64(2), truncated[0].ContextMap()["offset"])
	assert.Equal(t, int64(2), truncated[0].ContextMap()["dangling"])
}
