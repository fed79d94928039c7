package gc

import "testing"

func TestSlotSize(t *testing.T) {
	tests := []struct {
		in, want uintptr
	}{
		{1, 16},
		{8, 16},
		{16, 16},
		{17, 32},
		{24, 32},
		{255, 256},
		{256, 256},
		{257, 272},
		{1000, 1008},
		{DataSize, DataSize},
	}
	for _, tt := range tests {
		if got := SlotSize(tt.in); got != tt.want {
			t.Errorf("SlotSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSlotIndexMatchesDivision(t *testing.T) {
	for size := uintptr(MinSlotSize); size <= 1024; size += slotAlign {
		for off := uintptr(0); off < DataSize; off += 7 {
			if got, want := slotIndex(off, size), off/size; got != want {
				t.Fatalf("slotIndex(%d, %d) = %d, want %d", off, size, got, want)
			}
		}
	}
}

func TestSlotsPerPage(t *testing.T) {
	tests := []struct {
		size uintptr
		want int
	}{
		{16, 252},
		{32, 126},
		{48, 84},
		{256, 15},
		{DataSize, 1},
		{0, 0},
		{DataSize + 16, 0},
	}
	for _, tt := range tests {
		if got := SlotsPerPage(tt.size); got != tt.want {
			t.Errorf("SlotsPerPage(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestPageLayout(t *testing.T) {
	if DataSize+bitmapSize+trailerSize != PageSize {
		t.Fatalf("page regions do not add up to PageSize")
	}
	if slots := DataSize / MinSlotSize; slots > bitmapSize*8 {
		t.Fatalf("bitmap of %d bits cannot cover %d slots", bitmapSize*8, slots)
	}
	if pageIDOffset < bitmapOffset+bitmapSize || poolIDOffset+4 != PageSize {
		t.Fatalf("trailer overlaps bitmap or overruns page")
	}
}
