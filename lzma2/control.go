package lzma2

// control is the first byte of an LZMA2 chunk header. Grounded on the
// teacher's control byte classification (control.go / chunk_header.go),
// restricted to this profile's supported values.
type control byte

// Constants for control bytes.
const (
	// eosCtrl marks the end of the LZMA2 stream.
	eosCtrl control = 0x00
	// copyResetDictCtrl and copyCtrl are uncompressed-chunk markers;
	// this profile rejects both.
	copyResetDictCtrl control = 0x01
	copyCtrl          control = 0x02

	// packedCtrl and packedMask classify the reset flags carried in an
	// LZMA-chunk control byte (bits 7:5).
	packedCtrl           control = 0x80
	packedMask           control = 0xe0
	packedResetStateCtrl control = 0xa0
	packedNewPropsCtrl   control = 0xc0
	packedResetDictCtrl  control = 0xe0

	// packedSizeMask isolates the high 5 bits of uncompressedSize-1.
	packedSizeMask control = 0x1f
)

// eos reports whether c marks the end of the LZMA2 stream.
func (c control) eos() bool { return c == eosCtrl }

// uncompressed reports whether c is one of the uncompressed-chunk markers.
func (c control) uncompressed() bool {
	return c == copyResetDictCtrl || c == copyCtrl
}

// packed reports whether c introduces an LZMA (compressed) chunk.
func (c control) packed() bool {
	return c&packedCtrl == packedCtrl
}

// resetDict reports whether the chunk resets the dictionary, discarding
// match history accumulated so far.
func (c control) resetDict() bool {
	return (c & packedMask) == packedResetDictCtrl
}

// resetState reports whether the chunk resets the LZMA state machine,
// rep-distance stack and probability tables.
func (c control) resetState() bool {
	return (c & packedMask) >= packedResetStateCtrl
}

// newProps reports whether the chunk carries a new LZMA properties byte.
func (c control) newProps() bool {
	return (c & packedMask) >= packedNewPropsCtrl
}

// fullReset reports whether the chunk is a full reset: new properties,
// state reset and dictionary reset together, as required of the first
// chunk of a stream in this profile.
func (c control) fullReset() bool {
	return (c & packedMask) == packedResetDictCtrl
}

// unpackedSizeHighBits returns the high 5 bits of uncompressedSize-1 as a
// value in 0..31; the caller shifts it left by 16 before OR-ing it with the
// two big-endian info bytes that follow.
func (c control) unpackedSizeHighBits() uint32 {
	return uint32(c & packedSizeMask)
}

// verifyControl rejects any bit pattern this profile doesn't recognize.
func verifyControl(c control) error {
	if c.packed() {
		return nil
	}
	if c.eos() || c.uncompressed() {
		return nil
	}
	return ErrControl
}
