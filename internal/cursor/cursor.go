// Package cursor provides the byte-level reading primitives the blackbox
// frame decoder is built on: a seekable cursor over the frame-data
// section of a log, and the variable-length quantity (VLQ) codecs used to
// pack every field value in the stream.
package cursor

import "errors"

// ErrCorruptPayload is returned by the strict VLQ decoders when a value
// cannot be represented in the encoding's maximum byte width.
var ErrCorruptPayload = errors.New("blackbox: corrupt payload")

// Cursor is a seekable reader over a session's binary frame data. It
// never allocates past construction. Frame decoding reads forward or peeks
// the current byte; corruption recovery uses Seek to move back to just
// past the last frame's tag.
type Cursor struct {
	buf []byte
	pos int
}

// New wraps buf in a Cursor starting at offset 0.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len reports the number of unread bytes.
func (c *Cursor) Len() int {
	return len(c.buf) - c.pos
}

// Tell reports the current read offset.
func (c *Cursor) Tell() int {
	return c.pos
}

// Seek repositions the cursor to an absolute offset within buf.
func (c *Cursor) Seek(pos int) {
	c.pos = pos
}

// Done reports whether the cursor has reached the end of the buffer.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.buf)
}

// Peek returns the byte at the current position without advancing, and
// false if the cursor is exhausted.
func (c *Cursor) Peek() (byte, bool) {
	if c.pos >= len(c.buf) {
		return 0, false
	}
	return c.buf[c.pos], true
}

// Next returns the byte at the current position and advances by one. It
// returns false once the cursor is exhausted, matching the "end of data"
// condition the frame loop treats as a clean stop rather than corruption.
func (c *Cursor) Next() (byte, bool) {
	b, ok := c.Peek()
	if ok {
		c.pos++
	}
	return b, ok
}

// StartsWith reports whether the unread remainder of the buffer begins
// with the exact bytes in want. It does not advance the cursor. This backs
// the LOG_END trailer check.
func (c *Cursor) StartsWith(want []byte) bool {
	if len(want) > c.Len() {
		return false
	}
	for i, b := range want {
		if c.buf[c.pos+i] != b {
			return false
		}
	}
	return true
}
