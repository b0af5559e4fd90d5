package lzma

import "errors"

// PropertiesByte is the single encoded properties byte this profile
// accepts: (pb*5 + lp)*9 + lc with pb=2, lp=0, lc=3.
const PropertiesByte = byte((pb*5+lp)*9 + lc)

// ErrProperties is returned when a chunk's properties byte is not
// PropertiesByte, the only LZMA parameterization this decoder supports.
var ErrProperties = errors.New("lzma: unsupported properties byte")

// VerifyProperties checks a properties byte against the fixed lc=3, lp=0,
// pb=2 profile this decoder implements.
func VerifyProperties(b byte) error {
	if b != PropertiesByte {
		return ErrProperties
	}
	return nil
}
