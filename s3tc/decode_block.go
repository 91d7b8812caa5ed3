package s3tc

import "encoding/binary"

// BlockBytes is the size of one compressed BC2 block, covering 4x4 texels.
const BlockBytes = 16

// blockDim is the texel footprint of a block along each axis.
const blockDim = 4

// bitCursor consumes a bit-packed little-endian field from the low end.
//
// BC2 stores the sixteen 4-bit alpha codes and the sixteen 2-bit palette
// selectors texel-major, so decoding walks each field low bits first.
type bitCursor uint64

func (c *bitCursor) next(width uint) uint32 {
	v := uint32(*c) & (1<<width - 1)
	*c >>= width
	return v
}

// blockFields splits a 16-byte block into its alpha cursor, packed endpoint
// component pairs and palette selector cursor.
//
// The packed pairs are pre-shifted by 2 so that OR-ing in a 2-bit palette
// slot yields a direct color LUT index.
func blockFields(src []byte) (alpha, indices bitCursor, ccr, ccg, ccb uint32) {
	_ = src[BlockBytes-1]

	alpha = bitCursor(binary.LittleEndian.Uint64(src))
	c0 := uint32(binary.LittleEndian.Uint16(src[8:]))
	c1 := uint32(binary.LittleEndian.Uint16(src[10:]))
	indices = bitCursor(binary.LittleEndian.Uint32(src[12:]))

	// RGB565: bits 15-11 red, 10-5 green, 4-0 blue.
	ccr = ((c0>>11)<<5 | c1>>11) << 2
	ccg = ((c0>>5&0x3F)<<6 | c1>>5&0x3F) << 2
	ccb = ((c0&0x1F)<<5 | c1&0x1F) << 2
	return
}

// decodeBlock decodes one block into dst, whose start is the block's
// top-left texel. rowStride is the byte distance between texel rows. All 16
// texels are written; the caller guarantees dst covers the full 4x4 extent.
func (d *Decoder) decodeBlock(src, dst []byte, rowStride int) {
	alpha, indices, ccr, ccg, ccb := blockFields(src)

	rowOff := 0
	for row := 0; row < blockDim; row++ {
		off := rowOff
		for col := 0; col < blockDim; col++ {
			ci := indices.next(2)
			px := d.alphaLUT[alpha.next(4)] |
				d.redLUT[ccr|ci] |
				d.greenLUT[ccg|ci] |
				d.blueLUT[ccb|ci]
			binary.LittleEndian.PutUint32(dst[off:off+4], px)
			off += 4
		}
		rowOff += rowStride
	}
}

// decodeBlockClipped decodes a block whose footprint extends past the image
// edge. Only texels with col < maxCols and row < maxRows are written; the
// alpha and selector bits of skipped texels are still consumed so the
// remaining texels in the block stay aligned.
func (d *Decoder) decodeBlockClipped(src, dst []byte, rowStride, maxCols, maxRows int) {
	alpha, indices, ccr, ccg, ccb := blockFields(src)

	rowOff := 0
	for row := 0; row < blockDim; row++ {
		if row >= maxRows {
			return
		}
		off := rowOff
		for col := 0; col < blockDim; col++ {
			ci := indices.next(2)
			ac := alpha.next(4)
			if col >= maxCols {
				continue
			}
			px := d.alphaLUT[ac] |
				d.redLUT[ccr|ci] |
				d.greenLUT[ccg|ci] |
				d.blueLUT[ccb|ci]
			binary.LittleEndian.PutUint32(dst[off:off+4], px)
			off += 4
		}
		rowOff += rowStride
	}
}
