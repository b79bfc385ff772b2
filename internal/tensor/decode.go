package tensor

import (
	"encoding/binary"

	"github.com/x448/float16"
)

// Halfs decodes little-endian IEEE 754 half-precision data. A trailing odd
// byte is ignored.
func Halfs(raw []byte) []float32 {
	loc := make([]float32, len(raw)/2)
	for i := range loc {
		loc[i] = float16.Frombits(binary.LittleEndian.Uint16(raw[2*i:])).Float32()
	}
	return loc
}

// Bools maps boolean tensor bytes to 0 and 1.
func Bools(raw []byte) []float32 {
	loc := make([]float32, len(raw))
	for i, b := range raw {
		if b != 0 {
			loc[i] = 1
		}
	}
	return loc
}
