package lzma

import "errors"

// ErrDictFull is returned when a decoded byte or match would overflow the
// caller-supplied output buffer, or would cross the current LZMA2 chunk's
// declared uncompressed size.
var ErrDictFull = errors.New("lzma: output buffer is full")

// ErrInvalidDistance is returned when a match references a distance that
// lies before the start of the current dictionary window, or before the
// beginning of the stream.
var ErrInvalidDistance = errors.New("lzma: match distance exceeds available history")

// Dict is the decoder's view of previously produced output. In full-decode
// mode it writes directly into the caller's output slice, which doubles as
// the entire match history (a flat, caller-owned buffer). In size-query
// mode (out has zero capacity) it instead keeps only the most recent
// dictCap bytes in an internally allocated ring, since the caller only
// wants a byte count and full retention would be wasted work.
//
// historyStart marks the position of the most recent LZMA2 dictionary
// reset (via ResetHistory); distances may not reach before it. limit is
// the upper bound for the chunk currently being decoded, set by the LZMA2
// framer before every chunk via SetLimit.
type Dict struct {
	buf          []byte
	ring         bool
	pos          int
	limit        int
	historyStart int
	dictCap      int
}

// NewDict creates a dictionary. When out has zero capacity, the dictionary
// runs in size-query (ring) mode bounded by dictCap; otherwise it writes
// into out directly and dictCap bounds how far back a match may reach.
func NewDict(out []byte, dictCap int) *Dict {
	if cap(out) == 0 {
		return &Dict{buf: make([]byte, dictCap), ring: true, dictCap: dictCap}
	}
	return &Dict{buf: out[:0:cap(out)], dictCap: dictCap}
}

// SetLimit bounds the next chunk to n further bytes of output, as the
// LZMA2 framer does at the start of every chunk. It does not touch
// historyStart: a chunk that only resets state (not the dictionary) must
// still let matches reach into bytes produced by earlier chunks. It fails
// if the caller's output buffer (in full-decode mode) cannot hold n more
// bytes.
func (d *Dict) SetLimit(n int) error {
	if !d.ring && d.pos+n > cap(d.buf) {
		return ErrDictFull
	}
	d.limit = d.pos + n
	return nil
}

// ResetHistory forbids matches from reaching before the current position,
// as required by an LZMA2 dictionary-reset chunk, without otherwise
// disturbing the current chunk limit.
func (d *Dict) ResetHistory() {
	d.historyStart = d.pos
}

// Position is the total number of bytes produced so far.
func (d *Dict) Position() int { return d.pos }

// Limit is the upper bound of the chunk currently being decoded.
func (d *Dict) Limit() int { return d.limit }

// index maps an absolute position to a buffer offset.
func (d *Dict) index(p int) int {
	if d.ring {
		return p % len(d.buf)
	}
	return p
}

// ByteAt returns the byte dist positions behind the current write head.
func (d *Dict) ByteAt(dist int) (byte, error) {
	if dist <= 0 || dist > d.pos-d.historyStart || dist > d.dictCap {
		return 0, ErrInvalidDistance
	}
	return d.buf[d.index(d.pos-dist)], nil
}

// PutLiteral appends a single decoded byte.
func (d *Dict) PutLiteral(b byte) error {
	if d.pos >= d.limit {
		return ErrDictFull
	}
	if d.ring {
		d.buf[d.index(d.pos)] = b
	} else {
		d.buf = append(d.buf, b)
	}
	d.pos++
	return nil
}

// CopyMatch appends length bytes copied from dist positions behind the
// write head, one byte at a time so that overlapping matches (dist <
// length) replicate the pattern correctly.
func (d *Dict) CopyMatch(dist int, length int) error {
	for i := 0; i < length; i++ {
		b, err := d.ByteAt(dist)
		if err != nil {
			return err
		}
		if err := d.PutLiteral(b); err != nil {
			return err
		}
	}
	return nil
}

// Output returns the bytes produced so far. It is only meaningful in
// full-decode mode; in size-query mode the backing buffer is a ring and
// does not hold the whole output.
func (d *Dict) Output() []byte { return d.buf }
