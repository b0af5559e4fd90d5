package lzma_test

import (
	"bytes"
	"hash/crc32"
	"testing"

	"github.com/aionescu/minixz/lzma"
	"github.com/aionescu/minixz/xz"
)

// vliBytes encodes v as an xz variable-length integer, matching the
// encoding xz's own decodeVLI expects. This file drives the real lzma2 and
// xz packages purely through the bytes it hands to xz.Decode.
func vliBytes(v uint64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			return out
		}
	}
}

func le32Bytes(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func pad4(b []byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, 0x00)
	}
	return b
}

// buildXZStream assembles a complete single-stream, single-block .xz
// container around a single LZMA2 chunk encoded from ops, exercising the
// cursor/lzma/lzma2/xz pipeline end to end without ever running an actual
// encoder binary: the LZMA2 chunk's compressed bytes come from this
// package's own test-only range encoder (see engine_test.go), and the
// surrounding LZMA2 and xz framing is assembled by hand from the plain
// arithmetic those formats specify.
func buildXZStream(t *testing.T, ops []lzma.Op, plaintext []byte) (stream []byte, contentCRCOffset int) {
	t.Helper()

	compressed, want := lzma.BuildChunk(t, ops, len(plaintext))
	if !bytes.Equal(want, plaintext) {
		t.Fatalf("buildChunk produced %q, want %q", want, plaintext)
	}

	unpackedSize := uint32(len(plaintext))
	packedSize := uint32(len(compressed))

	chunk := []byte{byte(0xe0 | ((unpackedSize - 1) >> 16))}
	chunk = append(chunk, byte((unpackedSize-1)>>8), byte(unpackedSize-1))
	chunk = append(chunk, byte((packedSize-1)>>8), byte(packedSize-1))
	chunk = append(chunk, lzma.PropertiesByte)
	chunk = append(chunk, compressed...)
	chunk = append(chunk, 0x00) // end of LZMA2 stream

	blockBody := []byte{0x00} // block flags: 1 filter, no size fields
	blockBody = append(blockBody, vliBytes(0x21)...)
	blockBody = append(blockBody, vliBytes(1)...)
	blockBody = append(blockBody, 0x00) // dict size code 0 -> 4 KiB

	minLen := 1 + len(blockBody) + 4
	realSize := ((minLen + 3) / 4) * 4
	blockHeader := make([]byte, realSize)
	blockHeader[0] = byte(realSize/4 - 1)
	copy(blockHeader[1:], blockBody)
	crc := crc32.ChecksumIEEE(blockHeader[:realSize-4])
	copy(blockHeader[realSize-4:], le32Bytes(crc))

	blockData := pad4(append([]byte{}, chunk...))
	contentCRC := crc32.ChecksumIEEE(plaintext)

	indexBody := []byte{0x00}
	indexBody = append(indexBody, vliBytes(1)...)
	unpaddedSize := uint64(len(blockHeader) + len(chunk) + 4)
	indexBody = append(indexBody, vliBytes(unpaddedSize)...)
	indexBody = append(indexBody, vliBytes(uint64(len(plaintext)))...)
	indexBody = pad4(indexBody)
	indexCRC := crc32.ChecksumIEEE(indexBody)
	index := append(append([]byte{}, indexBody...), le32Bytes(indexCRC)...)

	backwardSize := uint32(len(index)/4 - 1)
	footerFlags := []byte{0x00, 0x01} // checkCRC32
	footerCRC := crc32.ChecksumIEEE(append(le32Bytes(backwardSize), footerFlags...))
	footer := append(le32Bytes(footerCRC), le32Bytes(backwardSize)...)
	footer = append(footer, footerFlags...)
	footer = append(footer, 0x59, 0x5A)

	headerFlags := []byte{0x00, 0x01} // checkCRC32
	headerCRC := crc32.ChecksumIEEE(headerFlags)
	stream = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
	stream = append(stream, headerFlags...)
	stream = append(stream, le32Bytes(headerCRC)...)
	stream = append(stream, blockHeader...)
	stream = append(stream, blockData...)
	contentCRCOffset = len(stream)
	stream = append(stream, le32Bytes(contentCRC)...)
	stream = append(stream, index...)
	stream = append(stream, footer...)

	return stream, contentCRCOffset
}

func TestXZDecodeLiteralOnlyStream(t *testing.T) {
	plaintext := []byte("hello")
	ops := []lzma.Op{
		{IsLiteral: true, Literal: 'h'},
		{IsLiteral: true, Literal: 'e'},
		{IsLiteral: true, Literal: 'l'},
		{IsLiteral: true, Literal: 'l'},
		{IsLiteral: true, Literal: 'o'},
	}
	stream, _ := buildXZStream(t, ops, plaintext)

	out := make([]byte, len(plaintext))
	n, err := xz.Decode(stream, out)
	if err != nil {
		t.Fatalf("xz.Decode: %v", err)
	}
	if n != len(plaintext) || !bytes.Equal(out[:n], plaintext) {
		t.Fatalf("Decode() = %q, want %q", out[:n], plaintext)
	}
}

func TestXZDecodeMatchAndRepStream(t *testing.T) {
	plaintext := []byte("abcabcAb")
	ops := []lzma.Op{
		{IsLiteral: true, Literal: 'a'},
		{IsLiteral: true, Literal: 'b'},
		{IsLiteral: true, Literal: 'c'},
		{RepIndex: 0, Dist: 2, Length: 3},
		{IsLiteral: true, Literal: 'A'},
		{RepIndex: 1, IsShortRep: true},
	}
	stream, _ := buildXZStream(t, ops, plaintext)

	out := make([]byte, len(plaintext))
	n, err := xz.Decode(stream, out)
	if err != nil {
		t.Fatalf("xz.Decode: %v", err)
	}
	if n != len(plaintext) || !bytes.Equal(out[:n], plaintext) {
		t.Fatalf("Decode() = %q, want %q", out[:n], plaintext)
	}
}

func TestXZDecodeSizeQueryMode(t *testing.T) {
	plaintext := []byte("hello")
	ops := []lzma.Op{
		{IsLiteral: true, Literal: 'h'},
		{IsLiteral: true, Literal: 'e'},
		{IsLiteral: true, Literal: 'l'},
		{IsLiteral: true, Literal: 'l'},
		{IsLiteral: true, Literal: 'o'},
	}
	stream, _ := buildXZStream(t, ops, plaintext)

	n, err := xz.Decode(stream, nil)
	if err != nil {
		t.Fatalf("xz.Decode: %v", err)
	}
	if n != len(plaintext) {
		t.Fatalf("Decode() = %d, want %d", n, len(plaintext))
	}
}

func TestXZDecodeRejectsCorruptedContentChecksum(t *testing.T) {
	plaintext := []byte("hello")
	ops := []lzma.Op{
		{IsLiteral: true, Literal: 'h'},
		{IsLiteral: true, Literal: 'e'},
		{IsLiteral: true, Literal: 'l'},
		{IsLiteral: true, Literal: 'l'},
		{IsLiteral: true, Literal: 'o'},
	}
	stream, crcOffset := buildXZStream(t, ops, plaintext)
	stream[crcOffset] ^= 0xff

	d := xz.NewDecoder()
	_, err := d.Decode(stream, make([]byte, len(plaintext)))
	if err == nil {
		t.Fatal("Decode: want an error, got nil")
	}
	if !d.ChecksumError() {
		t.Errorf("ChecksumError() = false, want true for err %v", err)
	}
}
