package lzma2

import (
	"github.com/aionescu/minixz/cursor"
	"github.com/aionescu/minixz/lzma"
)

// maxUnpackedSize is the largest uncompressed size a single LZMA2 chunk can
// declare: the high 5 bits live in the control byte, the low 16 in the two
// size bytes that follow, biased by 1.
const maxUnpackedSize = 1 << 21

// maxPackedSize is the largest compressed size a single LZMA2 chunk can
// declare: a 16-bit field, biased by 1.
const maxPackedSize = 1 << 16

// DecodeStream decodes a full LZMA2 stream (the payload of the single XZ
// block this module supports) from in into dc, chunk by chunk, until it
// reads the end-of-stream control byte. It returns the total number of
// bytes produced.
//
// sizeOnly does not change how DecodeStream walks the stream: every chunk
// is parsed and every reset and budget invariant enforced exactly as in
// full decode mode, including the rejection of uncompressed chunks. It
// exists so callers can record, at the call site, that dc was constructed
// in Dict's ring mode for a size query rather than assume it from dc alone.
func DecodeStream(in *cursor.Cursor, dc *lzma.Dict, sizeOnly bool) (uint32, error) {
	var s *lzma.State
	first := true

	for {
		b, err := in.ReadByte()
		if err != nil {
			return 0, err
		}
		c := control(b)
		if err := verifyControl(c); err != nil {
			return 0, err
		}
		if c.eos() {
			if first {
				return 0, ErrEmptyStream
			}
			break
		}
		if c.uncompressed() {
			return 0, ErrUncompressedChunk
		}
		if (c & packedMask) == packedNewPropsCtrl {
			return 0, ErrUnsupportedReset
		}
		if first && !c.fullReset() {
			return 0, ErrFirstChunkReset
		}

		unpackedSize, packedSize, err := readChunkSizes(in, c)
		if err != nil {
			return 0, err
		}

		if c.newProps() {
			pb, err := in.ReadByte()
			if err != nil {
				return 0, err
			}
			if err := lzma.VerifyProperties(pb); err != nil {
				return 0, err
			}
		}

		if c.fullReset() {
			dc.ResetHistory()
		}
		if s == nil || c.resetState() {
			s = lzma.NewState()
		}

		if err := dc.SetLimit(int(unpackedSize)); err != nil {
			return 0, err
		}

		// The chunk's compressed bytes are reserved as their own window so
		// that the next chunk's control byte is always found at exactly
		// packedSize bytes past this one, regardless of how many bytes the
		// range coder itself needed to finish decoding (a correct encoder
		// may pad the chunk with trailing flush bytes the decoder never
		// has to read).
		compressed, err := in.Reserve(int(packedSize))
		if err != nil {
			return 0, err
		}
		rc, err := lzma.NewRangeDecoder(cursor.New(compressed), int(packedSize))
		if err != nil {
			return 0, err
		}
		if err := lzma.Run(s, dc, rc); err != nil {
			return 0, err
		}
		if ok, _ := rc.IsComplete(); !ok {
			return 0, ErrChunkBudget
		}
		if dc.Position() != dc.Limit() {
			return 0, ErrChunkBudget
		}

		first = false
	}

	return uint32(dc.Position()), nil
}

// readChunkSizes reads the four size bytes following a packed chunk's
// control byte and reconstructs the chunk's declared uncompressed and
// compressed sizes.
func readChunkSizes(in *cursor.Cursor, c control) (unpackedSize, packedSize uint32, err error) {
	info, err := in.Reserve(4)
	if err != nil {
		return 0, 0, err
	}
	unpackedSize = (c.unpackedSizeHighBits()<<16 | uint32(info[0])<<8 | uint32(info[1])) + 1
	packedSize = (uint32(info[2])<<8 | uint32(info[3])) + 1

	if unpackedSize > maxUnpackedSize || packedSize > maxPackedSize {
		return 0, 0, ErrChunkSize
	}
	return unpackedSize, packedSize, nil
}
