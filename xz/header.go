package xz

import "github.com/aionescu/minixz/cursor"

// headerLen and footerLen are the fixed sizes of the stream header and
// footer; unlike the block header, neither carries a length field of its
// own.
const (
	headerLen = 12
	footerLen = 12
)

var streamMagic = [6]byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
var footerMagic = [2]byte{0x59, 0x5A}

var errBadMagic = newStructuralError("bad stream header magic")
var errBadFooterMagic = newStructuralError("bad stream footer magic")
var errReservedFlags = newStructuralError("reserved stream flags bits are set")
var errUnsupportedCheck = newStructuralError("unsupported integrity check type")
var errFlagsMismatch = newStructuralError("stream footer flags do not match stream header")

// Header is the parsed form of a 12-byte xz stream header.
type Header struct {
	Check checkType
}

// readHeader reads and validates the stream header and reports the
// integrity check type the rest of the stream uses. checkCRC gates the
// header's own CRC32 verification, the decoder's "meta checks" toggle;
// the magic, flags and check-type validation always run.
func readHeader(in *cursor.Cursor, checkCRC bool) (Header, error) {
	buf, err := in.Reserve(headerLen)
	if err != nil {
		return Header{}, err
	}
	if [6]byte(buf[:6]) != streamMagic {
		return Header{}, errBadMagic
	}
	flags := buf[6:8]
	if flags[0] != 0 || flags[1]&0xf0 != 0 {
		return Header{}, errReservedFlags
	}
	check := checkType(flags[1] & 0x0f)
	if check != checkNone && check != checkCRC32 {
		return Header{}, errUnsupportedCheck
	}
	wantCRC := le32(buf[8:12])
	if checkCRC && crc32Of(flags) != wantCRC {
		return Header{}, newIntegrityError("stream header CRC32 mismatch")
	}
	return Header{Check: check}, nil
}

// readFooter reads and validates the 12-byte stream footer against the
// header's check type and the index size this decoder already computed
// while parsing the index. checkCRC gates the footer's own CRC32
// verification.
func readFooter(in *cursor.Cursor, h Header, indexSize int, checkCRC bool) error {
	buf, err := in.Reserve(footerLen)
	if err != nil {
		return err
	}
	wantCRC := le32(buf[0:4])
	backwardSize := le32(buf[4:8])
	flags := buf[8:10]
	magic := buf[10:12]

	if checkCRC && crc32Of(buf[4:10]) != wantCRC {
		return newIntegrityError("stream footer CRC32 mismatch")
	}
	if [2]byte(magic) != footerMagic {
		return errBadFooterMagic
	}
	if flags[0] != 0 || flags[1]&0xf0 != 0 || checkType(flags[1]&0x0f) != h.Check {
		return errFlagsMismatch
	}
	if int(backwardSize+1)*4 != indexSize {
		return newStructuralError("stream footer backward size does not match the index")
	}
	return nil
}

// le32 decodes a 4-byte little-endian unsigned integer.
func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
