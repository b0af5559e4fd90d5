package lzma

import (
	"errors"

	"github.com/aionescu/minixz/cursor"
)

// top is the normalization threshold: range_ is kept at or above this value
// by shifting in a fresh input byte whenever it falls below.
const top = 1 << 24

// ErrRangeHeader is returned when the first byte of a range-coded chunk is
// not zero, as required by the LZMA range coder convention.
var ErrRangeHeader = errors.New("lzma: first range coder byte is not zero")

// ErrRangeBudget is returned when the range coder would read past the
// compressed size declared for the current chunk.
var ErrRangeBudget = errors.New("lzma: range coder exceeded chunk budget")

// RangeDecoder decodes the arithmetic-coded bit stream produced by an LZMA
// range encoder. It reads from a cursor.Cursor bounded to the compressed
// size of the current LZMA2 chunk.
type RangeDecoder struct {
	c      *cursor.Cursor
	range_ uint32
	code   uint32
	size   int // declared compressed size of the chunk, in bytes
	left   int // bytes of that budget not yet consumed
}

// NewRangeDecoder reads the 5-byte range coder header (a zero byte followed
// by a big-endian uint32) and initializes a decoder good for compressedSize
// total bytes, including the header.
func NewRangeDecoder(c *cursor.Cursor, compressedSize int) (*RangeDecoder, error) {
	d := &RangeDecoder{c: c, range_: 0xffffffff, size: compressedSize, left: compressedSize}
	b, err := d.nextByte()
	if err != nil {
		return nil, err
	}
	if b != 0 {
		return nil, ErrRangeHeader
	}
	for i := 0; i < 4; i++ {
		b, err = d.nextByte()
		if err != nil {
			return nil, err
		}
		d.code = d.code<<8 | uint32(b)
	}
	return d, nil
}

// nextByte reads the next compressed byte, enforcing the chunk's declared
// compressed-size budget.
func (d *RangeDecoder) nextByte() (byte, error) {
	if d.left <= 0 {
		return 0, ErrRangeBudget
	}
	b, err := d.c.ReadByte()
	if err != nil {
		return 0, err
	}
	d.left--
	return b, nil
}

// normalize restores range_ >= top by shifting in one input byte when
// needed.
func (d *RangeDecoder) normalize() error {
	if d.range_ >= top {
		return nil
	}
	b, err := d.nextByte()
	if err != nil {
		return err
	}
	d.range_ <<= 8
	d.code = d.code<<8 | uint32(b)
	return nil
}

// decodeBit decodes a single probability-adaptive bit, updating p.
func (d *RangeDecoder) decodeBit(p *prob) (uint32, error) {
	if err := d.normalize(); err != nil {
		return 0, err
	}
	bound := p.bound(d.range_)
	if d.code < bound {
		d.range_ = bound
		p.inc()
		return 0, nil
	}
	d.code -= bound
	d.range_ -= bound
	p.dec()
	return 1, nil
}

// decodeDirectBit decodes a single equal-probability bit.
func (d *RangeDecoder) decodeDirectBit() (uint32, error) {
	if err := d.normalize(); err != nil {
		return 0, err
	}
	d.range_ >>= 1
	d.code -= d.range_
	t := 0 - (d.code >> 31)
	d.code += d.range_ & t
	return (t + 1) & 1, nil
}

// decodeDirectBits decodes n equal-probability bits, MSB first.
func (d *RangeDecoder) decodeDirectBits(n int) (uint32, error) {
	var v uint32
	for i := 0; i < n; i++ {
		b, err := d.decodeDirectBit()
		if err != nil {
			return 0, err
		}
		v = (v << 1) | b
	}
	return v, nil
}

// IsComplete reports whether the coder ended cleanly (code == 0) and how
// many compressed bytes it has consumed so far, including the 5-byte
// header.
func (d *RangeDecoder) IsComplete() (ok bool, consumed int) {
	return d.code == 0, d.size - d.left
}
