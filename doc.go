// Package utxt is a Unicode transcoding engine for Go.
//
// It detects byte order marks and converts text between UTF-8, UTF-16LE,
// UTF-16BE, UTF-32LE and UTF-32BE, substituting U+FFFD for anything it
// cannot decode instead of failing.
//
// # Architecture Overview
//
//	utxt/              Root package with the guest Memory interfaces
//	├── transcoder/    Encodings, BOM detection, codecs, cursor, pipeline
//	├── hostmod/       wazero host module exposing the engine to guests
//	├── errors/        Structured error types
//	└── cmd/utxt/      Command line tool
//
// # Quick Start
//
// Convert a buffer whose encoding is announced by its BOM:
//
//	out := transcoder.EncodeAs(transcoder.UTF8, data, transcoder.SkipBOM)
//
// Convert between encodings known up front:
//
//	out := transcoder.Transcode(data, transcoder.UTF16LE, transcoder.UTF8)
//
// Or with the pair fixed at compile time:
//
//	out := transcoder.Reencode[transcoder.UTF16LECodec, transcoder.UTF8Codec](data)
//
// Avoid the copy when the input is already in the wanted encoding:
//
//	var scratch []byte
//	out := transcoder.EncodeIfNecessaryAs(transcoder.UTF8, data, &scratch, 0)
//
// # WebAssembly Guests
//
// hostmod registers the engine as a wazero host module so guests can call
// detect, transcode, encode_as, count and validate on their own memory:
//
//	r := wazero.NewRuntime(ctx)
//	defer r.Close(ctx)
//
//	if _, err := hostmod.Instantiate(ctx, r); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// Conversions never fail. Validation, encoding names, host calls and file
// access return *errors.Error values carrying a phase, a kind and the byte
// offset involved:
//
//	if err := transcoder.Validate(data, transcoder.UTF8); err != nil {
//	    if e, ok := err.(*errors.Error); ok {
//	        fmt.Println(e.Kind, e.Offset)
//	    }
//	}
//
// # Logging
//
// transcoder and hostmod log at debug level through zap. Both default to a
// no-op logger; see transcoder.SetLogger and hostmod.SetLogger.
package utxt
