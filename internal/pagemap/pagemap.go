// Package pagemap obtains size-aligned blocks of anonymous memory for heap
// pages and root stacks.
package pagemap

import (
	"errors"
	"fmt"
)

// ErrSize indicates a requested block size that is not a positive power of two.
var ErrSize = errors.New("pagemap: size must be a positive power of two")

func checkSize(size int) error {
	if size <= 0 || size&(size-1) != 0 {
		return fmt.Errorf("%w: %d", ErrSize, size)
	}
	return nil
}

// Aligned reports whether b starts at a multiple of its own length.
func Aligned(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	return addr(b)%uintptr(len(b)) == 0
}
