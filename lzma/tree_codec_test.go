package lzma

import (
	"testing"

	"github.com/aionescu/minixz/cursor"
)

func TestProbTreeRoundTrip(t *testing.T) {
	for _, bits := range []int{3, 6, 8} {
		symbols := 1 << uint(bits)

		encTree := makeProbTree(bits)
		e := newRangeEncoder()
		for s := 0; s < symbols; s++ {
			encTree.encode(e, uint32(s))
		}
		buf := e.flush()

		c := cursor.New(buf)
		d, err := NewRangeDecoder(c, len(buf))
		if err != nil {
			t.Fatalf("bits=%d: NewRangeDecoder: %v", bits, err)
		}
		decTree := makeProbTree(bits)
		for s := 0; s < symbols; s++ {
			got, err := decTree.decode(d)
			if err != nil {
				t.Fatalf("bits=%d symbol=%d: decode: %v", bits, s, err)
			}
			if got != uint32(s) {
				t.Fatalf("bits=%d symbol=%d: got %d", bits, s, got)
			}
		}
	}
}

func TestProbTreeReverseRoundTrip(t *testing.T) {
	bits := 5
	symbols := 1 << uint(bits)

	encTree := makeProbTree(bits)
	e := newRangeEncoder()
	for s := 0; s < symbols; s++ {
		encTree.encodeReverse(e, uint32(s))
	}
	buf := e.flush()

	c := cursor.New(buf)
	d, err := NewRangeDecoder(c, len(buf))
	if err != nil {
		t.Fatalf("NewRangeDecoder: %v", err)
	}
	decTree := makeProbTree(bits)
	for s := 0; s < symbols; s++ {
		got, err := decTree.decodeReverse(d)
		if err != nil {
			t.Fatalf("symbol=%d: decodeReverse: %v", s, err)
		}
		if got != uint32(s) {
			t.Fatalf("symbol=%d: got %d", s, got)
		}
	}
}
