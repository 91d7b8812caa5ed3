package s3tc

import (
	"encoding/binary"
	"fmt"
)

// DDS container support for BC2 payloads.
//
// A DDS file is a 4-byte magic, a 124-byte header, an optional 20-byte DX10
// extension, then the mip chain for level 0 first. BC2 data is identified
// either by the legacy "DXT3" fourCC or by a DX10 extension carrying
// DXGI_FORMAT_BC2_UNORM(_SRGB). Anything else is rejected: this package
// decodes BC2 only.

const (
	ddsMagic      = 0x20534444 // "DDS "
	ddsHeaderSize = 124

	ddsFlagCaps        = 0x1
	ddsFlagHeight      = 0x2
	ddsFlagWidth       = 0x4
	ddsFlagPixelFormat = 0x1000
	ddsFlagMipMapCount = 0x20000
	ddsFlagLinearSize  = 0x80000

	ddsCapsTexture = 0x1000
	ddsCapsMipMap  = 0x400000

	ddsPixelFormatSize = 32
	ddpfFourCC         = 0x4

	fourCCDXT3 = 0x33545844 // "DXT3"
	fourCCDX10 = 0x30315844 // "DX10"

	dxgiFormatBC2UNorm     = 74
	dxgiFormatBC2UNormSRGB = 75
)

// DDSHeader describes a BC2 DDS surface.
type DDSHeader struct {
	Width    uint32
	Height   uint32
	MipCount uint32

	// DXGIFormat is dxgiFormatBC2UNorm or dxgiFormatBC2UNormSRGB for DX10
	// headers, and 0 for legacy "DXT3" fourCC headers.
	DXGIFormat uint32
}

func (h DDSHeader) String() string {
	variant := "DXT3"
	if h.DXGIFormat == dxgiFormatBC2UNorm {
		variant = "BC2_UNORM"
	} else if h.DXGIFormat == dxgiFormatBC2UNormSRGB {
		variant = "BC2_UNORM_SRGB"
	}
	return fmt.Sprintf("DDS %s %dx%d, %d mips", variant, h.Width, h.Height, h.MipCount)
}

// SRGB reports whether the surface is tagged as sRGB (DX10 headers only;
// legacy DXT3 headers carry no color-space information).
func (h DDSHeader) SRGB() bool {
	return h.DXGIFormat == dxgiFormatBC2UNormSRGB
}

// ParseDDSHeader parses a DDS header describing BC2 data.
//
// It returns the header and the byte offset of the level-0 payload within
// data (128 for legacy headers, 148 with a DX10 extension).
func ParseDDSHeader(data []byte) (DDSHeader, int, error) {
	if len(data) < 4+ddsHeaderSize {
		return DDSHeader{}, 0, newError(ErrBadContainer, fmt.Sprintf("s3tc: dds header: unexpected EOF: want %d bytes, got %d", 4+ddsHeaderSize, len(data)))
	}
	if binary.LittleEndian.Uint32(data) != ddsMagic {
		return DDSHeader{}, 0, newError(ErrBadContainer, "s3tc: dds: invalid magic")
	}
	if sz := binary.LittleEndian.Uint32(data[4:]); sz != ddsHeaderSize {
		return DDSHeader{}, 0, newError(ErrBadContainer, fmt.Sprintf("s3tc: dds: invalid header size %d", sz))
	}

	h := DDSHeader{
		Height:   binary.LittleEndian.Uint32(data[12:]),
		Width:    binary.LittleEndian.Uint32(data[16:]),
		MipCount: binary.LittleEndian.Uint32(data[28:]),
	}
	if h.Width == 0 || h.Height == 0 {
		return DDSHeader{}, 0, newError(ErrBadContainer, "s3tc: dds: zero image dimension")
	}
	if h.MipCount == 0 {
		h.MipCount = 1
	}

	pfFlags := binary.LittleEndian.Uint32(data[80:])
	if pfFlags&ddpfFourCC == 0 {
		return DDSHeader{}, 0, newError(ErrBadContainer, "s3tc: dds: uncompressed pixel format, not BC2")
	}

	offset := 4 + ddsHeaderSize
	switch fourCC := binary.LittleEndian.Uint32(data[84:]); fourCC {
	case fourCCDXT3:
		// Legacy header; nothing more to read.
	case fourCCDX10:
		if len(data) < offset+20 {
			return DDSHeader{}, 0, newError(ErrBadContainer, "s3tc: dds: truncated DX10 extension")
		}
		h.DXGIFormat = binary.LittleEndian.Uint32(data[offset:])
		if h.DXGIFormat != dxgiFormatBC2UNorm && h.DXGIFormat != dxgiFormatBC2UNormSRGB {
			return DDSHeader{}, 0, newError(ErrBadContainer, fmt.Sprintf("s3tc: dds: DXGI format %d is not BC2", h.DXGIFormat))
		}
		offset += 20
	default:
		return DDSHeader{}, 0, newError(ErrBadContainer, fmt.Sprintf("s3tc: dds: fourCC %08x is not DXT3", fourCC))
	}

	return h, offset, nil
}

// ParseDDSFile parses a BC2 DDS file and returns its header and the level-0
// compressed payload (the slice aliases data). Trailing data beyond level 0,
// such as further mip levels, is allowed and ignored.
func ParseDDSFile(data []byte) (DDSHeader, []byte, error) {
	h, offset, err := ParseDDSHeader(data)
	if err != nil {
		return DDSHeader{}, nil, err
	}

	need := InputBufferSize(int(h.Width), int(h.Height))
	if len(data) < offset+need {
		return DDSHeader{}, nil, newError(ErrBadContainer, fmt.Sprintf("s3tc: dds: payload: unexpected EOF: want %d bytes, got %d", need, len(data)-offset))
	}
	return h, data[offset : offset+need], nil
}

// MarshalDDSHeader builds a legacy DXT3 header for h, so raw BC2 dumps can
// be rewrapped into standalone .dds files.
func MarshalDDSHeader(h DDSHeader) ([]byte, error) {
	if h.Width == 0 || h.Height == 0 {
		return nil, newError(ErrBadParam, "s3tc: dds: zero image dimension")
	}
	mips := h.MipCount
	if mips == 0 {
		mips = 1
	}

	out := make([]byte, 4+ddsHeaderSize)
	binary.LittleEndian.PutUint32(out, ddsMagic)
	binary.LittleEndian.PutUint32(out[4:], ddsHeaderSize)

	flags := uint32(ddsFlagCaps | ddsFlagHeight | ddsFlagWidth | ddsFlagPixelFormat | ddsFlagLinearSize)
	if mips > 1 {
		flags |= ddsFlagMipMapCount
	}
	binary.LittleEndian.PutUint32(out[8:], flags)
	binary.LittleEndian.PutUint32(out[12:], h.Height)
	binary.LittleEndian.PutUint32(out[16:], h.Width)
	binary.LittleEndian.PutUint32(out[20:], uint32(InputBufferSize(int(h.Width), int(h.Height))))
	binary.LittleEndian.PutUint32(out[28:], mips)

	binary.LittleEndian.PutUint32(out[76:], ddsPixelFormatSize)
	binary.LittleEndian.PutUint32(out[80:], ddpfFourCC)
	binary.LittleEndian.PutUint32(out[84:], fourCCDXT3)

	caps := uint32(ddsCapsTexture)
	if mips > 1 {
		caps |= ddsCapsMipMap
	}
	binary.LittleEndian.PutUint32(out[108:], caps)
	return out, nil
}
