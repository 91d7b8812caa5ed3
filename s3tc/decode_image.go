package s3tc

import (
	"fmt"
	"image"
	"runtime"
	"sync"
	"sync/atomic"
)

// InputBufferSize returns the compressed size in bytes of a width x height
// BC2 image: one 16-byte block per 4x4 texel tile, edge tiles rounded up.
// Non-positive dimensions yield 0.
func InputBufferSize(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return ((width + 3) / 4) * ((height + 3) / 4) * BlockBytes
}

// OutputBufferSize returns the decoded size in bytes of a width x height
// image at 4 bytes per pixel. Non-positive dimensions yield 0.
func OutputBufferSize(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return width * height * 4
}

// Decode decodes a BC2 compressed image into output using the process
// default pixel format (FormatBGRA until SetPixelFormat changes it).
func Decode(width, height int, input, output []byte) error {
	return activeDecoder().Decode(width, height, input, output)
}

// DecodeRGBA decodes a BC2 compressed image into a freshly allocated
// image.RGBA, regardless of the process default pixel format.
func DecodeRGBA(width, height int, input []byte) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := NewDecoder(FormatRGBA).Decode(width, height, input, img.Pix); err != nil {
		return nil, err
	}
	return img, nil
}

// Decode decodes a BC2 compressed image.
//
// input must hold at least InputBufferSize(width, height) bytes and output at
// least OutputBufferSize(width, height) bytes; both are checked once at
// entry, after which the decode cannot fail. Exactly width*height pixels are
// written; for dimensions that are not multiples of 4 the texels of edge
// blocks that fall outside the image are dropped.
func (d *Decoder) Decode(width, height int, input, output []byte) error {
	if width <= 0 || height <= 0 {
		return newError(ErrBadParam, fmt.Sprintf("s3tc: invalid image dimensions %dx%d", width, height))
	}
	if need := InputBufferSize(width, height); len(input) < need {
		return newError(ErrSmallBuffer, fmt.Sprintf("s3tc: input buffer too small: need %d bytes, have %d", need, len(input)))
	}
	if need := OutputBufferSize(width, height); len(output) < need {
		return newError(ErrSmallBuffer, fmt.Sprintf("s3tc: output buffer too small: need %d bytes, have %d", need, len(output)))
	}

	if width%4 == 0 && height%4 == 0 {
		d.decodeAligned(width, height, input, output)
	} else {
		d.decodeClipped(width, height, input, output)
	}
	return nil
}

// decodeAligned handles images whose dimensions are multiples of 4: every
// block covers a full 4x4 tile and no per-texel bounds checks are needed.
// Large images are split across GOMAXPROCS goroutines; blocks write disjoint
// output regions, so the result is identical to the sequential walk.
func (d *Decoder) decodeAligned(width, height int, input, output []byte) {
	blocksX := width / 4
	blocksY := height / 4
	totalBlocks := blocksX * blocksY
	rowStride := width * 4

	procs := runtime.GOMAXPROCS(0)
	if procs > totalBlocks {
		procs = totalBlocks
	}

	if procs <= 1 || totalBlocks < 32 {
		src := 0
		for by := 0; by < blocksY; by++ {
			dstRow := by * 4 * rowStride
			for bx := 0; bx < blocksX; bx++ {
				d.decodeBlock(input[src:src+BlockBytes], output[dstRow+bx*16:], rowStride)
				src += BlockBytes
			}
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(procs)
	for w := 0; w < procs; w++ {
		go func() {
			defer wg.Done()
			for {
				idx := int(next.Add(1) - 1)
				if idx >= totalBlocks {
					return
				}
				bx := idx % blocksX
				by := idx / blocksX
				src := idx * BlockBytes
				dst := by*4*rowStride + bx*16
				d.decodeBlock(input[src:src+BlockBytes], output[dst:], rowStride)
			}
		}()
	}
	wg.Wait()
}

// decodeClipped handles images with non-multiple-of-4 dimensions. Interior
// blocks still take the unchecked path; only blocks on the right and bottom
// edges pay the per-texel clipping cost.
func (d *Decoder) decodeClipped(width, height int, input, output []byte) {
	blocksX := (width + 3) / 4
	blocksY := (height + 3) / 4
	rowStride := width * 4

	src := 0
	for by := 0; by < blocksY; by++ {
		y := by * 4
		maxRows := height - y
		if maxRows > blockDim {
			maxRows = blockDim
		}
		for bx := 0; bx < blocksX; bx++ {
			x := bx * 4
			maxCols := width - x
			if maxCols > blockDim {
				maxCols = blockDim
			}
			dst := output[(y*width+x)*4:]
			if maxCols == blockDim && maxRows == blockDim {
				d.decodeBlock(input[src:src+BlockBytes], dst, rowStride)
			} else {
				d.decodeBlockClipped(input[src:src+BlockBytes], dst, rowStride, maxCols, maxRows)
			}
			src += BlockBytes
		}
	}
}
