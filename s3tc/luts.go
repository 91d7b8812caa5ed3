package s3tc

// Precomputed decode tables.
//
// BC2 stores block colors as two RGB565 endpoints plus a 2-bit palette
// selector per texel. Rather than expanding endpoints and blending per texel,
// the decoder indexes flat tables keyed by the packed endpoint component pair
// and the palette slot, so the hot loop is three loads and two ORs per texel
// on the color side. An alpha table maps the 4-bit explicit alpha codes the
// same way. Table values are pre-shifted into the channel position chosen by
// the active PixelFormat.
//
// Table index layout: ((c0 << bits) | c1) << 2 | slot, where bits is 5 for
// red/blue and 6 for green, and slot is the 2-bit palette selector.

const (
	// alphaLUTSize covers the 16 possible 4-bit alpha codes.
	alphaLUTSize = 16
	// colorLUTSize55 covers 5-bit endpoint pairs times 4 palette slots.
	colorLUTSize55 = 32 * 32 * 4
	// colorLUTSize66 covers 6-bit endpoint pairs times 4 palette slots.
	colorLUTSize66 = 64 * 64 * 4
)

// expand5 widens a 5-bit component to 8 bits with bit replication, so 0 maps
// to 0 and 31 maps to 255.
func expand5(c uint32) uint32 {
	return c<<3 | c>>2
}

// expand6 widens a 6-bit component to 8 bits with bit replication.
func expand6(c uint32) uint32 {
	return c<<2 | c>>4
}

// buildAlphaLUT fills the explicit-alpha table: a linear 0..255 ramp in steps
// of 17, shifted into the alpha channel position.
func (d *Decoder) buildAlphaLUT(shift uint) {
	for code := uint32(0); code < alphaLUTSize; code++ {
		d.alphaLUT[code] = (code * 17) << shift
	}
}

// buildColorLUT5 fills a 5-bit component table (red or blue) for every
// endpoint pair and palette slot.
//
// BC2 color blocks are always decoded in 4-color mode: slots 2 and 3 blend
// the endpoints at 2:1 and 1:2 regardless of endpoint ordering. The BC1 rule
// that c0 <= c1 switches to 3-color mode does not apply to BC2.
func buildColorLUT5(lut *[colorLUTSize55]uint32, shift uint) {
	for c0 := uint32(0); c0 < 32; c0++ {
		for c1 := uint32(0); c1 < 32; c1++ {
			base := (c0<<5 | c1) << 2
			lut[base+0] = expand5(c0) << shift
			lut[base+1] = expand5(c1) << shift
			lut[base+2] = expand5((2*c0+c1)/3) << shift
			lut[base+3] = expand5((c0+2*c1)/3) << shift
		}
	}
}

// buildColorLUT6 fills the 6-bit green table.
func buildColorLUT6(lut *[colorLUTSize66]uint32, shift uint) {
	for c0 := uint32(0); c0 < 64; c0++ {
		for c1 := uint32(0); c1 < 64; c1++ {
			base := (c0<<6 | c1) << 2
			lut[base+0] = expand6(c0) << shift
			lut[base+1] = expand6(c1) << shift
			lut[base+2] = expand6((2*c0+c1)/3) << shift
			lut[base+3] = expand6((c0+2*c1)/3) << shift
		}
	}
}

// buildLUTs fills all four tables for the decoder's pixel format. It fully
// overwrites previous contents and is idempotent for a given format.
func (d *Decoder) buildLUTs() {
	aShift, rShift, gShift, bShift := d.format.channelShifts()
	d.buildAlphaLUT(aShift)
	buildColorLUT5(&d.redLUT, rShift)
	buildColorLUT6(&d.greenLUT, gShift)
	buildColorLUT5(&d.blueLUT, bShift)
}
