package s3tc

// PixelFormat selects the byte order of decoded 32-bit pixels.
//
// Each format assigns a distinct byte shift (0/8/16/24) to every channel.
// Pixels are stored little-endian, so the format name is also the channel
// byte order in memory: FormatRGBA output is directly usable as the Pix
// buffer of an image.RGBA.
type PixelFormat uint8

const (
	// FormatBGRA is the default format (B=0, G=8, R=16, A=24).
	FormatBGRA PixelFormat = iota
	// FormatARGB stores A=0, R=8, G=16, B=24.
	FormatARGB
	// FormatRGBA stores R=0, G=8, B=16, A=24.
	FormatRGBA
	// FormatABGR stores A=0, B=8, G=16, R=24.
	FormatABGR
)

func (f PixelFormat) String() string {
	switch f {
	case FormatBGRA:
		return "BGRA"
	case FormatARGB:
		return "ARGB"
	case FormatRGBA:
		return "RGBA"
	case FormatABGR:
		return "ABGR"
	default:
		return "BGRA"
	}
}

// channelShifts returns the per-channel bit shifts for f.
//
// Unrecognized values resolve to BGRA; an out-of-range PixelFormat is not an
// error anywhere in this package.
func (f PixelFormat) channelShifts() (a, r, g, b uint) {
	switch f {
	case FormatARGB:
		return 0, 8, 16, 24
	case FormatRGBA:
		return 24, 0, 8, 16
	case FormatABGR:
		return 0, 24, 16, 8
	default: // FormatBGRA
		return 24, 16, 8, 0
	}
}

// normalize maps unrecognized values to the default format.
func (f PixelFormat) normalize() PixelFormat {
	switch f {
	case FormatBGRA, FormatARGB, FormatRGBA, FormatABGR:
		return f
	default:
		return FormatBGRA
	}
}
