package s3tc_test

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/SoLaRGit/open.imaging.S3TC/s3tc"
)

func TestDDSHeader_MarshalParseRoundTrip(t *testing.T) {
	h := s3tc.DDSHeader{Width: 20, Height: 10, MipCount: 3}

	hdr, err := s3tc.MarshalDDSHeader(h)
	if err != nil {
		t.Fatalf("MarshalDDSHeader: %v", err)
	}
	if len(hdr) != 128 {
		t.Fatalf("header length = %d, want 128", len(hdr))
	}
	if !bytes.Equal(hdr[:4], []byte("DDS ")) {
		t.Fatalf("unexpected magic %q", hdr[:4])
	}

	payload := randomInput(t, 20, 10, 29)
	file := append(hdr, payload...)

	got, blocks, err := s3tc.ParseDDSFile(file)
	if err != nil {
		t.Fatalf("ParseDDSFile: %v", err)
	}
	if got != h {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", got, h)
	}
	if !bytes.Equal(blocks, payload) {
		t.Fatalf("payload does not alias original block data")
	}
}

func TestParseDDSFile_AllowsTrailingMips(t *testing.T) {
	hdr, err := s3tc.MarshalDDSHeader(s3tc.DDSHeader{Width: 8, Height: 8, MipCount: 2})
	if err != nil {
		t.Fatalf("MarshalDDSHeader: %v", err)
	}
	level0 := randomInput(t, 8, 8, 31)
	level1 := randomInput(t, 4, 4, 31)
	file := append(append(hdr, level0...), level1...)

	_, blocks, err := s3tc.ParseDDSFile(file)
	if err != nil {
		t.Fatalf("ParseDDSFile: %v", err)
	}
	if len(blocks) != len(level0) {
		t.Fatalf("payload length = %d, want %d", len(blocks), len(level0))
	}
}

func TestParseDDSHeader_RejectsNonBC2(t *testing.T) {
	valid, err := s3tc.MarshalDDSHeader(s3tc.DDSHeader{Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("MarshalDDSHeader: %v", err)
	}

	corrupt := func(mutate func([]byte)) []byte {
		b := bytes.Clone(valid)
		mutate(b)
		return b
	}

	cases := []struct {
		name string
		data []byte
		want string
	}{
		{"short", valid[:16], "unexpected EOF"},
		{"bad magic", corrupt(func(b []byte) { b[0] = 'X' }), "invalid magic"},
		{"bad header size", corrupt(func(b []byte) { binary.LittleEndian.PutUint32(b[4:], 64) }), "invalid header size"},
		{"DXT1 fourCC", corrupt(func(b []byte) { copy(b[84:], "DXT1") }), "not DXT3"},
		{"uncompressed", corrupt(func(b []byte) { binary.LittleEndian.PutUint32(b[80:], 0x40) }), "not BC2"},
		{"zero width", corrupt(func(b []byte) { binary.LittleEndian.PutUint32(b[16:], 0) }), "zero image dimension"},
	}
	for _, tc := range cases {
		_, _, err := s3tc.ParseDDSHeader(tc.data)
		if err == nil {
			t.Fatalf("%s: ParseDDSHeader succeeded, want error", tc.name)
		}
		if code := s3tc.ErrorCodeOf(err); code != s3tc.ErrBadContainer {
			t.Fatalf("%s: error code = %v, want ErrBadContainer", tc.name, code)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

func TestParseDDSFile_TruncatedPayload(t *testing.T) {
	hdr, err := s3tc.MarshalDDSHeader(s3tc.DDSHeader{Width: 16, Height: 16})
	if err != nil {
		t.Fatalf("MarshalDDSHeader: %v", err)
	}
	payload := randomInput(t, 16, 16, 37)
	file := append(hdr, payload[:len(payload)-1]...)

	if _, _, err := s3tc.ParseDDSFile(file); err == nil {
		t.Fatalf("ParseDDSFile succeeded on truncated payload")
	}
}

func TestParseDDSHeader_DX10Extension(t *testing.T) {
	hdr, err := s3tc.MarshalDDSHeader(s3tc.DDSHeader{Width: 8, Height: 4})
	if err != nil {
		t.Fatalf("MarshalDDSHeader: %v", err)
	}

	// Rewrite the legacy header into a DX10 one with a BC2_UNORM_SRGB
	// extension block.
	copy(hdr[84:], "DX10")
	ext := make([]byte, 20)
	binary.LittleEndian.PutUint32(ext, 75) // DXGI_FORMAT_BC2_UNORM_SRGB
	binary.LittleEndian.PutUint32(ext[4:], 3)
	binary.LittleEndian.PutUint32(ext[12:], 1)
	file := append(append(hdr, ext...), randomInput(t, 8, 4, 41)...)

	h, blocks, err := s3tc.ParseDDSFile(file)
	if err != nil {
		t.Fatalf("ParseDDSFile: %v", err)
	}
	if !h.SRGB() {
		t.Fatalf("SRGB() = false for BC2_UNORM_SRGB")
	}
	if len(blocks) != s3tc.InputBufferSize(8, 4) {
		t.Fatalf("payload length = %d, want %d", len(blocks), s3tc.InputBufferSize(8, 4))
	}
	if got := h.String(); !strings.Contains(got, "BC2_UNORM_SRGB") {
		t.Fatalf("String() = %q, want BC2_UNORM_SRGB variant", got)
	}
}
