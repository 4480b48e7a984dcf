package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDetect   Phase = "detect"   // BOM sniffing
	PhaseDecode   Phase = "decode"   // bytes to code points
	PhaseEncode   Phase = "encode"   // code points to bytes
	PhaseValidate Phase = "validate" // strict well-formedness checks
	PhaseHost     Phase = "host"     // guest-facing host functions
	PhaseIO       Phase = "io"       // file and stream access
	PhaseConfig   Phase = "config"   // flags, env, config files
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidEncoding Kind = "invalid_encoding"
	KindMalformed       Kind = "malformed"
	KindTruncated       Kind = "truncated"
	KindOutOfBounds     Kind = "out_of_bounds"
	KindInvalidInput    Kind = "invalid_input"
	KindNilPointer      Kind = "nil_pointer"
	KindIO              Kind = "io"
)

// NoOffset marks an error that is not tied to a byte position.
const NoOffset = -1

// Error is the structured error type used throughout utxt
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Encoding string
	Detail   string
	Path     []string
	Offset   int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Encoding != "" {
		b.WriteString(" (")
		b.WriteString(e.Encoding)
		b.WriteByte(')')
	}

	if len(e.Path) > 0 {
		b.WriteString(" in ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Offset >= 0 {
		b.WriteString(" at offset ")
		b.WriteString(strconv.Itoa(e.Offset))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: NoOffset,
		},
	}
}

// Path sets the location path, e.g. a host function and its argument
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Encoding sets the name of the encoding involved
func (b *Builder) Encoding(name string) *Builder {
	b.err.Encoding = name
	return b
}

// Offset sets the byte offset of the offending unit
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidEncoding creates an error for an unknown encoding name or value
func InvalidEncoding(phase Phase, value any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidEncoding,
		Detail: fmt.Sprintf("unknown encoding %v", value),
		Value:  value,
		Offset: NoOffset,
	}
}

// Malformed creates an error for an undecodable unit at offset
func Malformed(enc string, offset int, unit []byte) *Error {
	preview := unit
	if len(preview) > 8 {
		preview = preview[:8]
	}
	return &Error{
		Phase:    PhaseValidate,
		Kind:     KindMalformed,
		Encoding: enc,
		Offset:   offset,
		Detail:   fmt.Sprintf("invalid sequence % x", preview),
		Value:    offset,
	}
}

// Truncated creates an error for input ending in the middle of a unit
func Truncated(enc string, offset, remaining int) *Error {
	return &Error{
		Phase:    PhaseValidate,
		Kind:     KindTruncated,
		Encoding: enc,
		Offset:   offset,
		Detail:   fmt.Sprintf("input ends with %d byte(s) of an incomplete unit", remaining),
		Value:    offset,
	}
}

// OutOfBounds creates an out of bounds error for a memory range
func OutOfBounds(phase Phase, path []string, offset, length uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("range [%d, %d) out of bounds", offset, uint64(offset)+uint64(length)),
		Value:  offset,
		Offset: NoOffset,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Detail: "nil " + what,
		Offset: NoOffset,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
		Offset: NoOffset,
	}
}

// IO wraps a file or stream failure
func IO(op, name string, cause error) *Error {
	return &Error{
		Phase:  PhaseIO,
		Kind:   KindIO,
		Path:   []string{op},
		Detail: name,
		Cause:  cause,
		Offset: NoOffset,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
		Offset: NoOffset,
	}
}
