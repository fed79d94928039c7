//go:build linux

package pagemap

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Acquire maps size bytes of anonymous, private, zeroed memory whose address
// is a multiple of size.
//
// Twice the size is mapped and the unaligned head and tail are unmapped again.
// When size does not exceed the OS page size a plain mapping is already aligned.
func Acquire(size int) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if size <= unix.Getpagesize() {
		p, err := mmap(uintptr(size))
		if err != nil {
			return nil, err
		}
		return unsafe.Slice((*byte)(p), size), nil
	}

	span := uintptr(size) * 2
	raw, err := mmap(span)
	if err != nil {
		return nil, err
	}
	head := alignUp(uintptr(raw), uintptr(size)) - uintptr(raw)
	aligned := unsafe.Add(raw, head)
	if head > 0 {
		if err := unix.MunmapPtr(raw, head); err != nil {
			return nil, fmt.Errorf("pagemap: trim head: %w", err)
		}
	}
	if tail := uintptr(size) - head; tail > 0 {
		if err := unix.MunmapPtr(unsafe.Add(aligned, size), tail); err != nil {
			return nil, fmt.Errorf("pagemap: trim tail: %w", err)
		}
	}
	return unsafe.Slice((*byte)(aligned), size), nil
}

// Release unmaps a block returned by Acquire. Releasing an empty slice is a no-op.
func Release(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if err := unix.MunmapPtr(unsafe.Pointer(&b[0]), uintptr(len(b))); err != nil {
		return fmt.Errorf("pagemap: munmap %d bytes: %w", len(b), err)
	}
	return nil
}

func mmap(length uintptr) (unsafe.Pointer, error) {
	p, err := unix.MmapPtr(-1, 0, nil, length,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("pagemap: mmap %d bytes: %w", length, err)
	}
	return p, nil
}

func alignUp(v, align uintptr) uintptr {
	return (v + align - 1) &^ (align - 1)
}

func addr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}
