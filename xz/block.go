package xz

import "github.com/aionescu/minixz/cursor"

// lzma2FilterID is the only filter ID this decoder accepts in a block
// header's filter list.
const lzma2FilterID = 0x21

// maxDictSizeCode is the largest dictionary size code this profile
// accepts; see dictSize below for the formula it feeds.
const maxDictSizeCode = 39

var errBlockFlags = newStructuralError("unsupported block header flags")
var errFilterCount = newStructuralError("block header does not declare exactly one filter")
var errFilterID = newStructuralError("unsupported block filter ID")
var errPropSize = newStructuralError("LZMA2 filter does not declare exactly one property byte")
var errDictSizeCode = newStructuralError("dictionary size code out of range")
var errHeaderPadding = newStructuralError("non-zero block header padding")

// BlockHeader is the parsed form of a block header carrying a single
// LZMA2 filter, the only shape this decoder accepts.
type BlockHeader struct {
	DictSize int // bytes
	// HeaderLen is the total size in bytes of the block header,
	// including its own size byte and trailing CRC32, used by the
	// caller to compute the block's unpadded size for the index record.
	HeaderLen int
}

// readBlockHeader reads a block header and validates its filter list.
// checkCRC gates the header's own CRC32 verification.
func readBlockHeader(in *cursor.Cursor, checkCRC bool) (BlockHeader, error) {
	start := in.Offset()
	sizeByte, err := in.ReadByte()
	if err != nil {
		return BlockHeader{}, err
	}
	realSize := (int(sizeByte) + 1) * 4
	rest, err := in.Reserve(realSize - 1)
	if err != nil {
		return BlockHeader{}, err
	}

	wantCRC := le32(rest[len(rest)-4:])
	body := rest[:len(rest)-4]
	if checkCRC && crc32Of(in.Since(start)[:realSize-4]) != wantCRC {
		return BlockHeader{}, newIntegrityError("block header CRC32 mismatch")
	}

	flags := body[0]
	if flags&0xfc != 0 {
		return BlockHeader{}, errBlockFlags
	}
	numFilters := int(flags&0x03) + 1
	if numFilters != 1 {
		return BlockHeader{}, errFilterCount
	}

	c := cursor.New(body[1:])
	filterID, err := decodeVLI(c)
	if err != nil {
		return BlockHeader{}, err
	}
	if filterID != lzma2FilterID {
		return BlockHeader{}, errFilterID
	}
	propSize, err := decodeVLI(c)
	if err != nil {
		return BlockHeader{}, err
	}
	if propSize != 1 {
		return BlockHeader{}, errPropSize
	}
	dictByte, err := c.ReadByte()
	if err != nil {
		return BlockHeader{}, err
	}
	if dictByte > maxDictSizeCode {
		return BlockHeader{}, errDictSizeCode
	}

	pad, err := c.Reserve(c.Remaining())
	if err != nil {
		return BlockHeader{}, err
	}
	for _, b := range pad {
		if b != 0 {
			return BlockHeader{}, errHeaderPadding
		}
	}

	return BlockHeader{DictSize: dictSize(dictByte), HeaderLen: realSize}, nil
}

// dictSize converts an LZMA2 dictionary size code to a byte count:
// (2 | (d&1)) << (d/2 + 11).
func dictSize(d byte) int {
	return int(2+(uint32(d)&1)) << (uint(d)>>1 + 11)
}
