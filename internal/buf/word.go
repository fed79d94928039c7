// Package buf holds the small read/write helpers used on raw page memory:
// little-endian words, one-bit-per-slot bitmaps and overflow-checked sizes.
package buf

import (
	"encoding/binary"
	"math"
)

// Word reads the little-endian uint64 at b[off:]. Returns 0 when out of range.
func Word(b []byte, off int) uint64 {
	if off < 0 || off+8 > len(b) {
		return 0
	}
	return binary.LittleEndian.Uint64(b[off:])
}

// PutWord stores v little-endian at b[off:]. It reports false when out of range.
func PutWord(b []byte, off int, v uint64) bool {
	if off < 0 || off+8 > len(b) {
		return false
	}
	binary.LittleEndian.PutUint64(b[off:], v)
	return true
}

// Half reads the little-endian uint32 at b[off:]. Returns 0 when out of range.
func Half(b []byte, off int) uint32 {
	if off < 0 || off+4 > len(b) {
		return 0
	}
	return binary.LittleEndian.Uint32(b[off:])
}

// PutHalf stores v little-endian at b[off:]. It reports false when out of range.
func PutHalf(b []byte, off int, v uint32) bool {
	if off < 0 || off+4 > len(b) {
		return false
	}
	binary.LittleEndian.PutUint32(b[off:], v)
	return true
}

// MulSize returns n*size. ok is false for negative operands or when the
// product overflows int.
func MulSize(n, size int) (int, bool) {
	if n < 0 || size < 0 {
		return 0, false
	}
	if n != 0 && size > math.MaxInt/n {
		return 0, false
	}
	return n * size, true
}
