package buf

import "testing"

func TestBits(t *testing.T) {
	bitmap := make([]byte, 4)
	for _, i := range []int{0, 7, 8, 31} {
		SetBit(bitmap, i)
	}
	for i := 0; i < 32; i++ {
		want := i == 0 || i == 7 || i == 8 || i == 31
		if Bit(bitmap, i) != want {
			t.Fatalf("Bit(%d) = %v, want %v", i, !want, want)
		}
	}
	if bitmap[0] != 0x81 || bitmap[1] != 0x01 || bitmap[3] != 0x80 {
		t.Fatalf("unexpected bitmap layout % x", bitmap)
	}
	if got := CountBits(bitmap, 32); got != 4 {
		t.Fatalf("CountBits = %d, want 4", got)
	}
	if got := CountBits(bitmap, 8); got != 2 {
		t.Fatalf("CountBits(first 8) = %d, want 2", got)
	}
}
