//go:build !linux

package pagemap

import "unsafe"

// Acquire returns size zeroed bytes whose address is a multiple of size.
//
// Without a portable anonymous mmap the block is carved out of a Go slice twice
// the requested size. The Go collector does not move heap objects, so the
// aligned window stays put for as long as the slice is referenced.
func Acquire(size int) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	raw := make([]byte, 2*size)
	off := int(uintptr(size)-addr(raw)%uintptr(size)) % size
	return raw[off : off+size : off+size], nil
}

// Release drops a block returned by Acquire; the Go collector reclaims it.
func Release(b []byte) error {
	return nil
}

func addr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}
