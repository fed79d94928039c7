package gc

const (
	// MinSlotSize is the smallest slot: it must hold a free-list link.
	MinSlotSize = 16

	// slotAlign is the alignment of every slot size.
	slotAlign = 16

	// smallSlotMax is the top of the constant-divisor ladder in slotIndex.
	smallSlotMax = 256
)

// SlotSize returns the slot size a pool uses for objects of n bytes:
// n rounded up to a multiple of 16, and at least MinSlotSize.
//
//	1..16    → 16
//	17..32   → 32
//	...
//	241..256 → 256
//	257..    → next multiple of 16
func SlotSize(n uintptr) uintptr {
	if n < MinSlotSize {
		n = MinSlotSize
	}
	return (n + slotAlign - 1) &^ (slotAlign - 1)
}

// SlotsPerPage returns how many slots of the given slot size fit in one page.
func SlotsPerPage(slotSize uintptr) int {
	if slotSize == 0 || slotSize > DataSize {
		return 0
	}
	return int(DataSize / slotSize)
}

// slotIndex converts a byte offset within a page's data region to a slot index.
// Slot sizes up to 256 bytes divide by a constant, which compiles to a
// multiply and shift instead of a hardware divide.
func slotIndex(off, size uintptr) uintptr {
	switch size {
	case 16:
		return off / 16
	case 32:
		return off / 32
	case 48:
		return off / 48
	case 64:
		return off / 64
	case 80:
		return off / 80
	case 96:
		return off / 96
	case 112:
		return off / 112
	case 128:
		return off / 128
	case 144:
		return off / 144
	case 160:
		return off / 160
	case 176:
		return off / 176
	case 192:
		return off / 192
	case 208:
		return off / 208
	case 224:
		return off / 224
	case 240:
		return off / 240
	case smallSlotMax:
		return off / smallSlotMax
	default:
		return off / size
	}
}
