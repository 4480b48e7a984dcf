// Package errors provides structured error types for the utxt library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the encoding involved, the byte offset of the offending
// unit, a location path, and a cause chain.
//
// The transcoding pipeline itself never fails: malformed input decodes to
// U+FFFD. Errors come from the strict surfaces only (encoding name parsing,
// Validate, guest memory access, CLI I/O).
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindMalformed).
//		Encoding("utf-16le").
//		Offset(12).
//		Detail("lone trailing surrogate").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Malformed("utf-8", 3, b[3:4])
//	err := errors.OutOfBounds(errors.PhaseHost, path, ptr, n)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
