// Package s3tc decodes S3TC BC2 (DXT3) compressed texture data into packed
// 32-bit pixel buffers with a caller-selectable channel order.
package s3tc

import (
	"sync"
	"sync/atomic"
)

// Decoder decodes BC2 blocks into packed 32-bit pixels in one PixelFormat.
//
// A Decoder's tables are built once by NewDecoder and never mutated, so a
// single *Decoder is safe for concurrent use by any number of goroutines.
// Changing formats means using a different Decoder, not mutating one.
type Decoder struct {
	format PixelFormat

	alphaLUT [alphaLUTSize]uint32
	redLUT   [colorLUTSize55]uint32
	greenLUT [colorLUTSize66]uint32
	blueLUT  [colorLUTSize55]uint32
}

var decoders struct {
	mu sync.RWMutex
	m  map[PixelFormat]*Decoder
}

// NewDecoder returns the decoder for the given pixel format.
//
// Unrecognized format values resolve to FormatBGRA. Decoders are cached per
// format, so after the first call for a format this is a map lookup.
func NewDecoder(format PixelFormat) *Decoder {
	format = format.normalize()

	decoders.mu.RLock()
	if decoders.m != nil {
		if d := decoders.m[format]; d != nil {
			decoders.mu.RUnlock()
			return d
		}
	}
	decoders.mu.RUnlock()

	decoders.mu.Lock()
	defer decoders.mu.Unlock()

	if decoders.m == nil {
		decoders.m = make(map[PixelFormat]*Decoder)
	} else if d := decoders.m[format]; d != nil {
		return d
	}

	d := &Decoder{format: format}
	d.buildLUTs()
	decoders.m[format] = d
	return d
}

// Format returns the pixel format the decoder was built for.
func (d *Decoder) Format() PixelFormat {
	return d.format
}

// defaultDecoder backs the package-level Decode. Swapped whole by
// SetPixelFormat, so a racing Decode always sees a fully built table set.
var defaultDecoder atomic.Pointer[Decoder]

// SetPixelFormat selects the pixel format used by the package-level Decode.
//
// Unrecognized values resolve to FormatBGRA. Unlike a per-call format
// argument, this is process-wide state; callers that need different formats
// concurrently should hold their own Decoder from NewDecoder instead.
func SetPixelFormat(format PixelFormat) {
	defaultDecoder.Store(NewDecoder(format))
}

func activeDecoder() *Decoder {
	if d := defaultDecoder.Load(); d != nil {
		return d
	}
	d := NewDecoder(FormatBGRA)
	defaultDecoder.CompareAndSwap(nil, d)
	return d
}
