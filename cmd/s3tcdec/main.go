// Command s3tcdec decodes BC2 (DXT3) texture data into PNG, BMP or raw pixel
// dumps. It accepts .dds files, raw BC2 block streams (with explicit -width
// and -height), and zstd-compressed variants of either (.zst suffix).
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/image/bmp"

	"github.com/SoLaRGit/open.imaging.S3TC/s3tc"
)

func main() {
	var (
		inPath    string
		outPath   string
		format    string
		width     int
		height    int
		dumpInfo  bool
		dumpBlock bool
		wrap      bool
	)
	flag.StringVar(&inPath, "in", "", "input file: .dds, raw BC2 blocks, or either zstd-compressed (.zst)")
	flag.StringVar(&outPath, "out", "", "output file: .png, .bmp, .raw or .dds (with -wrap)")
	flag.StringVar(&format, "format", "bgra", "raw output pixel format: bgra|rgba|argb|abgr")
	flag.IntVar(&width, "width", 0, "image width (required for raw input)")
	flag.IntVar(&height, "height", 0, "image height (required for raw input)")
	flag.BoolVar(&dumpInfo, "info", false, "print input info and exit")
	flag.BoolVar(&dumpBlock, "dump-first-block", false, "dump the first BC2 block as hex and exit")
	flag.BoolVar(&wrap, "wrap", false, "wrap raw BC2 input into a .dds file instead of decoding")
	flag.Parse()

	if inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: s3tcdec -in <input> [-out <output>] [-format bgra|rgba|argb|abgr] [-width W -height H]")
		os.Exit(2)
	}

	data, err := readInput(inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var blocks []byte
	if isDDS(data) {
		h, payload, err := s3tc.ParseDDSFile(data)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		width = int(h.Width)
		height = int(h.Height)
		blocks = payload
		if dumpInfo {
			fmt.Println(h.String())
			return
		}
	} else {
		if width <= 0 || height <= 0 {
			fmt.Fprintln(os.Stderr, "raw input requires -width and -height")
			os.Exit(2)
		}
		if need := s3tc.InputBufferSize(width, height); len(data) < need {
			fmt.Fprintf(os.Stderr, "raw input too small: need %d bytes for %dx%d, have %d\n", need, width, height, len(data))
			os.Exit(1)
		}
		blocks = data
		if dumpInfo {
			fmt.Printf("raw BC2 %dx%d, %d bytes\n", width, height, len(data))
			return
		}
	}

	if dumpBlock {
		if len(blocks) < s3tc.BlockBytes {
			fmt.Fprintln(os.Stderr, "missing first block")
			os.Exit(1)
		}
		fmt.Println(hex.EncodeToString(blocks[:s3tc.BlockBytes]))
		return
	}

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "missing -out")
		os.Exit(2)
	}

	if wrap {
		hdr, err := s3tc.MarshalDDSHeader(s3tc.DDSHeader{Width: uint32(width), Height: uint32(height)})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := os.WriteFile(outPath, append(hdr, blocks...), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := writeOutput(outPath, format, width, height, blocks); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readInput loads a file, transparently decompressing a .zst suffix.
func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(filepath.Ext(path), ".zst") {
		return data, nil
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	return out, nil
}

func isDDS(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == "DDS "
}

func writeOutput(outPath, format string, width, height int, blocks []byte) error {
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".raw":
		pf, err := parseFormat(format)
		if err != nil {
			return err
		}
		out := make([]byte, s3tc.OutputBufferSize(width, height))
		if err := s3tc.NewDecoder(pf).Decode(width, height, blocks, out); err != nil {
			return err
		}
		return os.WriteFile(outPath, out, 0o644)

	case ".png":
		img, err := s3tc.DecodeRGBA(width, height, blocks)
		if err != nil {
			return err
		}
		return encodeTo(outPath, img, png.Encode)

	case ".bmp":
		img, err := s3tc.DecodeRGBA(width, height, blocks)
		if err != nil {
			return err
		}
		return encodeTo(outPath, img, bmp.Encode)

	default:
		return fmt.Errorf("unsupported output extension %q (want .png, .bmp or .raw)", filepath.Ext(outPath))
	}
}

func encodeTo(path string, img *image.RGBA, encode func(w io.Writer, m image.Image) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func parseFormat(s string) (s3tc.PixelFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bgra":
		return s3tc.FormatBGRA, nil
	case "rgba":
		return s3tc.FormatRGBA, nil
	case "argb":
		return s3tc.FormatARGB, nil
	case "abgr":
		return s3tc.FormatABGR, nil
	default:
		return s3tc.FormatBGRA, fmt.Errorf("unknown pixel format %q", s)
	}
}
