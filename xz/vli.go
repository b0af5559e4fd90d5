package xz

import "github.com/aionescu/minixz/cursor"

// maxVLIBytes is the longest encoding this decoder accepts for a variable
// length integer: 9 groups of 7 bits each, covering the full 63-bit range
// the xz format allows a VLI to carry.
const maxVLIBytes = 9

// errVLITooLong is wrapped as ErrStructural when a variable length integer
// runs past maxVLIBytes without its continuation bit clearing.
var errVLITooLong = newStructuralError("variable length integer longer than 9 bytes")

// errVLITrailingZero is wrapped as ErrStructural when a multi-byte
// variable length integer's final group is zero: the same value has a
// shorter, and therefore the only valid, encoding.
var errVLITrailingZero = newStructuralError("variable length integer has a redundant trailing zero byte")

// decodeVLI reads a little-endian base-128 variable length integer: each
// byte's low 7 bits hold the next group of the value and the top bit
// marks whether another byte follows.
func decodeVLI(in *cursor.Cursor) (uint64, error) {
	var v uint64
	for i := 0; i < maxVLIBytes; i++ {
		b, err := in.ReadByte()
		if err != nil {
			return 0, err
		}
		v |= uint64(b&0x7f) << uint(7*i)
		if b&0x80 == 0 {
			if i > 0 && b == 0 {
				return 0, errVLITrailingZero
			}
			return v, nil
		}
	}
	return 0, errVLITooLong
}
