package xz

import "github.com/aionescu/minixz/cursor"

var errIndexIndicator = newStructuralError("index does not start with the index indicator byte")
var errRecordCount = newStructuralError("index does not declare exactly one block record")
var errIndexPadding = newStructuralError("non-zero index padding")

// indexRecord mirrors the one block record this decoder's index may
// contain.
type indexRecord struct {
	UnpaddedSize     uint64
	UncompressedSize uint64
}

// readIndex reads the index that follows the (single) block and reports
// its total length in bytes (indicator through CRC32) for the footer's
// backward-size check. checkCRC gates the index's own CRC32 verification.
func readIndex(in *cursor.Cursor, checkCRC bool) (indexRecord, int, error) {
	start := in.Offset()

	b, err := in.ReadByte()
	if err != nil {
		return indexRecord{}, 0, err
	}
	if b != 0x00 {
		return indexRecord{}, 0, errIndexIndicator
	}

	count, err := decodeVLI(in)
	if err != nil {
		return indexRecord{}, 0, err
	}
	if count != 1 {
		return indexRecord{}, 0, errRecordCount
	}

	unpadded, err := decodeVLI(in)
	if err != nil {
		return indexRecord{}, 0, err
	}
	uncompressed, err := decodeVLI(in)
	if err != nil {
		return indexRecord{}, 0, err
	}

	if err := in.Align4(); err != nil {
		if err == cursor.ErrCorruptPadding {
			return indexRecord{}, 0, errIndexPadding
		}
		return indexRecord{}, 0, err
	}

	bodyEnd := in.Offset()
	crcBuf, err := in.Reserve(4)
	if err != nil {
		return indexRecord{}, 0, err
	}
	body := in.Since(start)[:bodyEnd-start]
	if checkCRC && crc32Of(body) != le32(crcBuf) {
		return indexRecord{}, 0, newIntegrityError("index CRC32 mismatch")
	}
	total := in.Offset() - start

	return indexRecord{UnpaddedSize: unpadded, UncompressedSize: uncompressed}, total, nil
}
