package buf

// Bit reports whether bit i of bitmap is set. Bits are numbered LSB first
// within each byte.
func Bit(bitmap []byte, i int) bool {
	return bitmap[i>>3]&(1<<(i&7)) != 0
}

// SetBit sets bit i of bitmap.
func SetBit(bitmap []byte, i int) {
	bitmap[i>>3] |= 1 << (i & 7)
}

// CountBits returns the number of set bits among the first n bits of bitmap.
func CountBits(bitmap []byte, n int) int {
	count := 0
	for i := 0; i < n; i++ {
		if Bit(bitmap, i) {
			count++
		}
	}
	return count
}
