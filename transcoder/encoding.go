package transcoder

import (
	"strconv"
	"strings"

	"github.com/wippyai/utxt/errors"
)

// Encoding identifies one of the supported byte encodings of Unicode text.
// The set is closed: there is no "unknown" or "auto" member, detection falls
// back to UTF8.
type Encoding uint8

const (
	UTF8 Encoding = iota
	UTF16LE
	UTF16BE
	UTF32LE
	UTF32BE

	encodingCount
)

// Adding an encoding must revisit the codec table, CodecFor and the dispatch
// switches in dispatch.go. This fails to compile until it is bumped.
var _ = [1]struct{}{}[encodingCount-5]

var encodingNames = [encodingCount]string{
	UTF8:    "utf-8",
	UTF16LE: "utf-16le",
	UTF16BE: "utf-16be",
	UTF32LE: "utf-32le",
	UTF32BE: "utf-32be",
}

var encodingAliases = map[string]Encoding{
	"utf-8":    UTF8,
	"utf8":     UTF8,
	"utf-16le": UTF16LE,
	"utf16le":  UTF16LE,
	"ucs-2le":  UTF16LE,
	"utf-16be": UTF16BE,
	"utf16be":  UTF16BE,
	"ucs-2be":  UTF16BE,
	"utf-32le": UTF32LE,
	"utf32le":  UTF32LE,
	"ucs-4le":  UTF32LE,
	"utf-32be": UTF32BE,
	"utf32be":  UTF32BE,
	"ucs-4be":  UTF32BE,
}

// String returns the canonical lower-case IANA-style name.
func (e Encoding) String() string {
	if e.IsValid() {
		return encodingNames[e]
	}
	return "encoding(" + strconv.Itoa(int(e)) + ")"
}

// IsValid reports whether e is one of the five supported encodings.
func (e Encoding) IsValid() bool {
	return e < encodingCount
}

// UnitSize is the width in bytes of one code unit: 1 for UTF-8, 2 for the
// UTF-16 variants, 4 for the UTF-32 variants.
func (e Encoding) UnitSize() int {
	switch e {
	case UTF8:
		return 1
	case UTF16LE, UTF16BE:
		return 2
	case UTF32LE, UTF32BE:
		return 4
	}
	panic("transcoder: unreachable encoding " + e.String())
}

// Encodings returns all supported encodings in declaration order.
func Encodings() []Encoding {
	out := make([]Encoding, 0, encodingCount)
	for e := Encoding(0); e < encodingCount; e++ {
		out = append(out, e)
	}
	return out
}

// ParseEncoding resolves a case-insensitive encoding name or alias.
func ParseEncoding(name string) (Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "_", "-")
	if e, ok := encodingAliases[key]; ok {
		return e, nil
	}
	return UTF8, errors.InvalidEncoding(errors.PhaseConfig, name)
}

// MarshalText implements encoding.TextMarshaler.
func (e Encoding) MarshalText() ([]byte, error) {
	if !e.IsValid() {
		return nil, errors.InvalidEncoding(errors.PhaseEncode, int(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Encoding) UnmarshalText(text []byte) error {
	v, err := ParseEncoding(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}
