// Package cursor implements a bounded, read-only byte cursor over an
// in-memory buffer. It is the single point through which every layer of the
// decoder (xz, lzma2, lzma) consumes input bytes.
package cursor

import "errors"

// ErrEndOfInput is returned when a read or reserve would go past the end of
// the underlying buffer.
var ErrEndOfInput = errors.New("cursor: end of input")

// ErrCorruptPadding is returned by Align4 when a skipped alignment byte is
// not zero.
var ErrCorruptPadding = errors.New("cursor: non-zero padding byte")

// Cursor is a monotonically advancing read-only view over a byte slice.
type Cursor struct {
	buf []byte
	off int
}

// New creates a Cursor over buf, starting at offset 0.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Offset returns the current read offset.
func (c *Cursor) Offset() int {
	return c.off
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.off
}

// ReadByte reads and returns the next byte, advancing the offset by one.
func (c *Cursor) ReadByte() (byte, error) {
	if c.off >= len(c.buf) {
		return 0, ErrEndOfInput
	}
	b := c.buf[c.off]
	c.off++
	return b, nil
}

// Reserve returns a view of the next n bytes and advances the offset past
// them. The returned slice aliases the cursor's backing buffer; callers must
// not retain it across further mutation of the source buffer.
func (c *Cursor) Reserve(n int) ([]byte, error) {
	if n < 0 || c.off+n > len(c.buf) {
		return nil, ErrEndOfInput
	}
	p := c.buf[c.off : c.off+n]
	c.off += n
	return p, nil
}

// Since returns the bytes consumed between start and the cursor's current
// offset. start must be an offset this cursor has already passed through
// (typically saved via Offset before a sequence of reads), used to
// recover a byte range for checksum verification after parsing
// variable-length fields whose total size isn't known in advance.
func (c *Cursor) Since(start int) []byte {
	return c.buf[start:c.off]
}

// Align4 reads bytes until the offset is a multiple of 4. Every skipped byte
// must be exactly zero, or ErrCorruptPadding is returned.
func (c *Cursor) Align4() error {
	for c.off&3 != 0 {
		b, err := c.ReadByte()
		if err != nil {
			return err
		}
		if b != 0 {
			return ErrCorruptPadding
		}
	}
	return nil
}
