// Package transcoder detects, decodes and re-encodes Unicode text between
// UTF-8, UTF-16LE, UTF-16BE, UTF-32LE and UTF-32BE.
//
// # Pipeline
//
//	┌───────────────────────────────────────────────────────────────────┐
//	│ bytes → Detect (BOM) → Cursor[In] → CodePoint → Codec[Out] → bytes │
//	└───────────────────────────────────────────────────────────────────┘
//
// Detect sniffs a byte order mark and reports the encoding and the number
// of BOM bytes. A Cursor walks a borrowed buffer, extracting one code point
// at a time with the codec of its encoding. The output codec appends each
// code point to the destination buffer.
//
// # Byte Order Marks
//
//	Encoding   Bytes          Detect result
//	───────────────────────────────────────────
//	UTF-8      EF BB BF       (UTF8, 3)
//	UTF-16LE   FF FE          (UTF16LE, 2)
//	UTF-16BE   FE FF          (UTF16BE, 2)
//	UTF-32LE   FF FE 00 00    (UTF32LE, 4)
//	UTF-32BE   00 00 FE FF    (UTF32BE, 4)
//	none                      (UTF8, 0)
//
// Output never gets a BOM added. A BOM in the input is ordinary data
// (U+FEFF) unless SkipBOM is passed.
//
// # Key Functions
//
//	Reencode[I, O]       - compile-time pair, bytes to bytes
//	Transcode            - runtime pair, bytes to bytes
//	Encode[O] / EncodeAs - input encoding taken from the BOM
//	EncodeIfNecessaryAs  - returns the input itself when no work is needed
//	ToCodePoints         - bytes to []CodePoint
//	FromCodePoints       - []CodePoint to bytes
//	Validate / Inspect   - strict checks and statistics
//
// The generic functions take the codec types (UTF8Codec, UTF16LECodec, ...)
// and are specialized per pair; the runtime functions switch once on the
// Encoding values and call them.
//
// # Malformed Input
//
// Decoding is total. Nothing is ever rejected:
//
//	Input                                  Result       Advance
//	──────────────────────────────────────────────────────────────
//	UTF-8 bad lead or continuation         U+FFFD       1 byte
//	UTF-16 lone trailing surrogate         U+FFFD       2 bytes
//	UTF-16 leading surrogate, no pair      U+FFFD       2 bytes
//	UTF-32 any value                       the value    4 bytes
//	buffer ends inside a unit              one U+FFFD   to end
//
// UTF-32 values are not range checked. Use Validate to reject malformed
// input instead.
//
// # Thread Safety
//
// All functions are safe for concurrent use on independent buffers. Input
// buffers are only read and may be shared. A Cursor and a scratch buffer
// passed to EncodeIfNecessaryAs belong to one goroutine.
//
// # Logging
//
// Detection results and truncated inputs are logged at debug level through
// Logger. The default logger discards everything; install one with
// SetLogger.
package transcoder
