package transcoder

// Checkpoint is a saved cursor position.
type Checkpoint struct {
	pos int
}

// Pos returns the byte offset captured by the checkpoint.
func (c Checkpoint) Pos() int { return c.pos }

// Cursor walks a borrowed byte buffer one code point at a time. It never
// copies or modifies the buffer; every view it returns aliases it.
//
// The offset always satisfies 0 <= Pos() <= len(buf).
//
// A Cursor is not safe for concurrent use.
type Cursor[C Codec] struct {
	codec C
	buf   []byte
	pos   int
}

// NewCursor binds b to the codec type C, e.g. NewCursor[UTF16LECodec](b).
// Use NewCursorFor when the encoding is only known at runtime.
func NewCursor[C Codec](b []byte) *Cursor[C] {
	var c C
	if any(c) == nil {
		panic("transcoder: NewCursor needs a concrete codec type, use NewCursorFor")
	}
	return &Cursor[C]{codec: c, buf: b}
}

// NewCursorFor binds b to the codec of enc.
func NewCursorFor(enc Encoding, b []byte) *Cursor[Codec] {
	return &Cursor[Codec]{codec: CodecFor(enc), buf: b}
}

// Encoding returns the bound encoding.
func (c *Cursor[C]) Encoding() Encoding { return c.codec.Encoding() }

// Pos returns the absolute byte offset of the next unread byte.
func (c *Cursor[C]) Pos() int { return c.pos }

// Len returns the length of the whole underlying buffer.
func (c *Cursor[C]) Len() int { return len(c.buf) }

// HasBytes reports whether any byte is left, even a partial unit.
func (c *Cursor[C]) HasBytes() bool { return c.pos < len(c.buf) }

// HasCodePoint reports whether a whole unit is left for Next.
func (c *Cursor[C]) HasCodePoint() bool { return c.codec.Complete(c.buf, c.pos) }

// Remaining returns the unread part of the buffer.
func (c *Cursor[C]) Remaining() []byte { return c.buf[c.pos:] }

// Between returns the bytes in the absolute range [from, to).
func (c *Cursor[C]) Between(from, to int) []byte {
	if from > to || to > len(c.buf) {
		panic("transcoder: Between range out of order or past end")
	}
	return c.buf[from:to:to]
}

// Advance skips n bytes, e.g. a BOM. The offset stops at the end of the
// buffer.
func (c *Cursor[C]) Advance(n int) {
	if n < 0 {
		panic("transcoder: negative advance")
	}
	c.pos = min(c.pos+n, len(c.buf))
}

// Deplete marks the whole buffer as consumed.
func (c *Cursor[C]) Deplete() { c.pos = len(c.buf) }

// Next decodes the code point at the current offset and moves past it.
// It panics if HasCodePoint is false.
func (c *Cursor[C]) Next() CodePoint {
	if !c.HasCodePoint() {
		panic("transcoder: Next called without a complete code point")
	}
	return c.codec.Extract(c.buf, &c.pos)
}

// Save captures the current offset.
func (c *Cursor[C]) Save() Checkpoint { return Checkpoint{pos: c.pos} }

// Restore rewinds or forwards to a saved offset.
func (c *Cursor[C]) Restore(cp Checkpoint) {
	c.pos = max(0, min(cp.pos, len(c.buf)))
}
