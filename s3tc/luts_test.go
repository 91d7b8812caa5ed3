package s3tc

import "testing"

// The palette blend rule operates in the native 5/6-bit component domain:
// slot2 = floor((2*c0+c1)/3), slot3 = floor((c0+2*c1)/3), then the blended
// component is widened to 8 bits with bit replication.

func TestColorLUT5_PaletteSlots(t *testing.T) {
	d := NewDecoder(FormatBGRA)
	_, rShift, _, _ := FormatBGRA.channelShifts()

	for c0 := uint32(0); c0 < 32; c0++ {
		for c1 := uint32(0); c1 < 32; c1++ {
			base := (c0<<5 | c1) << 2
			want := [4]uint32{
				expand5(c0),
				expand5(c1),
				expand5((2*c0 + c1) / 3),
				expand5((c0 + 2*c1) / 3),
			}
			for slot := uint32(0); slot < 4; slot++ {
				got := d.redLUT[base+slot] >> rShift
				if got != want[slot] {
					t.Fatalf("redLUT[c0=%d c1=%d slot=%d] = %d, want %d", c0, c1, slot, got, want[slot])
				}
			}
		}
	}
}

func TestColorLUT6_PaletteSlots(t *testing.T) {
	d := NewDecoder(FormatBGRA)
	_, _, gShift, _ := FormatBGRA.channelShifts()

	for c0 := uint32(0); c0 < 64; c0++ {
		for c1 := uint32(0); c1 < 64; c1++ {
			base := (c0<<6 | c1) << 2
			want := [4]uint32{
				expand6(c0),
				expand6(c1),
				expand6((2*c0 + c1) / 3),
				expand6((c0 + 2*c1) / 3),
			}
			for slot := uint32(0); slot < 4; slot++ {
				got := d.greenLUT[base+slot] >> gShift
				if got != want[slot] {
					t.Fatalf("greenLUT[c0=%d c1=%d slot=%d] = %d, want %d", c0, c1, slot, got, want[slot])
				}
			}
		}
	}
}

func TestAlphaLUT_LinearRamp(t *testing.T) {
	for _, format := range []PixelFormat{FormatBGRA, FormatARGB, FormatRGBA, FormatABGR} {
		d := NewDecoder(format)
		aShift, _, _, _ := format.channelShifts()
		for code := uint32(0); code < alphaLUTSize; code++ {
			want := (code * 17) << aShift
			if got := d.alphaLUT[code]; got != want {
				t.Fatalf("%v: alphaLUT[%d] = %#x, want %#x", format, code, got, want)
			}
		}
	}
}

func TestBuildLUTs_Idempotent(t *testing.T) {
	d := NewDecoder(FormatRGBA)
	fresh := &Decoder{format: FormatRGBA}
	// Dirty the tables to prove buildLUTs fully overwrites them.
	for i := range fresh.redLUT {
		fresh.redLUT[i] = 0xDEADBEEF
	}
	for i := range fresh.greenLUT {
		fresh.greenLUT[i] = 0xDEADBEEF
	}
	fresh.buildLUTs()

	if fresh.alphaLUT != d.alphaLUT || fresh.redLUT != d.redLUT ||
		fresh.greenLUT != d.greenLUT || fresh.blueLUT != d.blueLUT {
		t.Fatalf("rebuilt tables differ from cached decoder tables")
	}
}

func TestExpandComponents_CoverFullRange(t *testing.T) {
	if expand5(0) != 0 || expand5(31) != 255 {
		t.Fatalf("expand5 endpoints: got %d..%d, want 0..255", expand5(0), expand5(31))
	}
	if expand6(0) != 0 || expand6(63) != 255 {
		t.Fatalf("expand6 endpoints: got %d..%d, want 0..255", expand6(0), expand6(63))
	}
	for c := uint32(1); c < 32; c++ {
		if expand5(c) <= expand5(c-1) {
			t.Fatalf("expand5 not strictly increasing at %d", c)
		}
	}
	for c := uint32(1); c < 64; c++ {
		if expand6(c) <= expand6(c-1) {
			t.Fatalf("expand6 not strictly increasing at %d", c)
		}
	}
}

func TestDecodeAlignedAndClippedAgree(t *testing.T) {
	// For multiple-of-4 dimensions the clipped walk must be byte-identical
	// to the unchecked walk.
	const w, h = 16, 12
	d := NewDecoder(FormatARGB)

	in := make([]byte, InputBufferSize(w, h))
	for i := range in {
		in[i] = byte(i*31 + 7)
	}

	fast := make([]byte, OutputBufferSize(w, h))
	checked := make([]byte, OutputBufferSize(w, h))
	d.decodeAligned(w, h, in, fast)
	d.decodeClipped(w, h, in, checked)

	for i := range fast {
		if fast[i] != checked[i] {
			t.Fatalf("outputs diverge at byte %d: fast %#x, checked %#x", i, fast[i], checked[i])
		}
	}
}
