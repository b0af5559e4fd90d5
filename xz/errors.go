// Package xz decodes a single-stream, single-block .xz container whose
// payload is one LZMA2-filtered block with fixed LZMA properties (lc=3,
// lp=0, pb=2). It wires the cursor, lzma and lzma2 packages together behind
// a one-shot Decode call.
package xz

import (
	"errors"
	"fmt"
)

// The four error families every failure in this package wraps. Callers
// that need to distinguish, say, a truncated/malformed stream from a
// checksum mismatch should use errors.Is against these.
var (
	// ErrStructural covers a container that is not shaped the way this
	// decoder expects: bad magic, unsupported flags, wrong filter ID,
	// wrong property count, a dictionary size code out of range, a
	// multi-block or multi-record index, non-zero padding.
	ErrStructural = errors.New("xz: structural error")

	// ErrIntegrity covers a CRC32 mismatch anywhere a checksum is
	// verified: stream flags, block header, block content, index.
	ErrIntegrity = errors.New("xz: integrity error")

	// ErrDecode covers a failure inside the LZMA2/LZMA decode engine
	// itself: an invalid range-coder state, an out-of-range match
	// distance, a chunk that did not exhaust its declared budget.
	ErrDecode = errors.New("xz: decode error")

	// ErrBuffer covers the caller's output buffer being too small, or
	// (in size-query mode) overflowing the internal bound tracked for
	// that purpose.
	ErrBuffer = errors.New("xz: buffer error")
)

// wrap attaches one of the four error families to a lower-level error so
// callers can use errors.Is without caring which package raised it.
func wrap(family error, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", family, err)
}

func newStructuralError(msg string) error { return fmt.Errorf("%w: %s", ErrStructural, msg) }
func newIntegrityError(msg string) error  { return fmt.Errorf("%w: %s", ErrIntegrity, msg) }
