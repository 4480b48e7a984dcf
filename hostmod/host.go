package hostmod

import (
	"github.com/wippyai/utxt"
	"github.com/wippyai/utxt/errors"
	"github.com/wippyai/utxt/transcoder"
)

// Values returned to the guest in place of a result.
const (
	// ResultError reports a bad pointer, length, encoding or flag.
	ResultError = -1
	// ResultValid is returned by validate for well-formed input.
	ResultValid = -1
	// ResultValidateError reports a bad argument to validate, where -1 is
	// already taken.
	ResultValidateError = -2
)

func readInput(mem utxt.Memory, fn string, ptr, n uint32) ([]byte, error) {
	if mem == nil {
		return nil, errors.NilPointer(errors.PhaseHost, "guest memory")
	}
	if n > MaxInputSize {
		return nil, errors.New(errors.PhaseHost, errors.KindInvalidInput).
			Path(fn, "input").
			Value(n).
			Detail("%d bytes exceeds limit of %d", n, MaxInputSize).
			Build()
	}
	if _, ok := safeAddU32(ptr, n); !ok {
		return nil, errors.OutOfBounds(errors.PhaseHost, []string{fn, "input"}, ptr, n)
	}
	return mem.Read(ptr, n)
}

func encodingArg(fn, name string, v uint32) (transcoder.Encoding, error) {
	enc := transcoder.Encoding(v)
	if uint32(enc) != v || !enc.IsValid() {
		err := errors.InvalidEncoding(errors.PhaseHost, v)
		err.Path = []string{fn, name}
		return 0, err
	}
	return enc, nil
}

func flagsArg(fn string, v uint32) (transcoder.Flags, error) {
	if v&^uint32(transcoder.SkipBOM) != 0 {
		return 0, errors.New(errors.PhaseHost, errors.KindInvalidInput).
			Path(fn, "flags").
			Value(v).
			Detail("unsupported flag bits %#x", v&^uint32(transcoder.SkipBOM)).
			Build()
	}
	return transcoder.Flags(v), nil
}

// writeOutput copies out to the guest if it fits in outCap and returns the
// required length either way.
func writeOutput(mem utxt.Memory, fn string, out []byte, outPtr, outCap uint32) (int64, error) {
	required := int64(len(out))
	if required > int64(outCap) {
		return required, nil
	}
	if _, ok := safeAddU32(outPtr, uint32(len(out))); !ok {
		return ResultError, errors.OutOfBounds(errors.PhaseHost, []string{fn, "output"}, outPtr, uint32(len(out)))
	}
	if err := mem.Write(outPtr, out); err != nil {
		return ResultError, err
	}
	return required, nil
}

// hostDetect packs the detected encoding in the low byte and the BOM length
// in the next one.
func hostDetect(mem utxt.Memory, ptr, n uint32) (int32, error) {
	in, err := readInput(mem, "detect", ptr, n)
	if err != nil {
		return ResultError, err
	}
	bom := transcoder.Detect(in)
	return int32(bom.Encoding) | int32(bom.Len)<<8, nil
}

func hostTranscode(mem utxt.Memory, inPtr, inLen, from, to, outPtr, outCap uint32) (int64, error) {
	in, err := readInput(mem, "transcode", inPtr, inLen)
	if err != nil {
		return ResultError, err
	}
	src, err := encodingArg("transcode", "from", from)
	if err != nil {
		return ResultError, err
	}
	dst, err := encodingArg("transcode", "to", to)
	if err != nil {
		return ResultError, err
	}

	buf := getScratch()
	defer putScratch(buf)
	*buf = transcoder.AppendTranscode((*buf)[:0], in, src, dst)
	return writeOutput(mem, "transcode", *buf, outPtr, outCap)
}

func hostEncodeAs(mem utxt.Memory, inPtr, inLen, to, flags, outPtr, outCap uint32) (int64, error) {
	in, err := readInput(mem, "encode_as", inPtr, inLen)
	if err != nil {
		return ResultError, err
	}
	dst, err := encodingArg("encode_as", "to", to)
	if err != nil {
		return ResultError, err
	}
	f, err := flagsArg("encode_as", flags)
	if err != nil {
		return ResultError, err
	}

	buf := getScratch()
	defer putScratch(buf)
	// out may still alias guest memory; Write copies with overlap in mind.
	out := transcoder.EncodeIfNecessaryAs(dst, in, buf, f)
	return writeOutput(mem, "encode_as", out, outPtr, outCap)
}

func hostCount(mem utxt.Memory, ptr, n, enc uint32) (int64, error) {
	in, err := readInput(mem, "count", ptr, n)
	if err != nil {
		return ResultError, err
	}
	e, err := encodingArg("count", "enc", enc)
	if err != nil {
		return ResultError, err
	}
	return int64(transcoder.Count(in, e)), nil
}

// hostValidate returns ResultValid or the offset of the first bad unit.
func hostValidate(mem utxt.Memory, ptr, n, enc uint32) (int64, error) {
	in, err := readInput(mem, "validate", ptr, n)
	if err != nil {
		return ResultValidateError, err
	}
	e, err := encodingArg("validate", "enc", enc)
	if err != nil {
		return ResultValidateError, err
	}
	verr := transcoder.Validate(in, e)
	if verr == nil {
		return ResultValid, nil
	}
	if ve, ok := verr.(*errors.Error); ok && ve.Offset >= 0 {
		return int64(ve.Offset), nil
	}
	return ResultValidateError, verr
}
