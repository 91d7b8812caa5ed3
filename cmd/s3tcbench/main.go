// Command s3tcbench measures BC2 decode throughput over synthetic images.
package main

import (
	"flag"
	"fmt"
	"hash/fnv"
	"math/rand"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/SoLaRGit/open.imaging.S3TC/s3tc"
)

func main() {
	var (
		width       int
		height      int
		format      string
		iters       int
		seed        int64
		checksumOpt string
		cpuprofile  string
	)
	flag.IntVar(&width, "w", 1024, "image width")
	flag.IntVar(&height, "h", 1024, "image height")
	flag.StringVar(&format, "format", "bgra", "pixel format: bgra|rgba|argb|abgr")
	flag.IntVar(&iters, "iters", 200, "iterations")
	flag.Int64Var(&seed, "seed", 1, "input generator seed")
	flag.StringVar(&checksumOpt, "checksum", "fnv", "checksum: fnv|none")
	flag.StringVar(&cpuprofile, "cpuprofile", "", "optional CPU profile output path")
	flag.Parse()

	if width <= 0 || height <= 0 || iters <= 0 {
		fmt.Fprintln(os.Stderr, "w, h and iters must be > 0")
		os.Exit(2)
	}
	pf, err := parseFormat(format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	rng := rand.New(rand.NewSource(seed))
	in := make([]byte, s3tc.InputBufferSize(width, height))
	rng.Read(in)
	out := make([]byte, s3tc.OutputBufferSize(width, height))

	d := s3tc.NewDecoder(pf)

	// Warm up tables and caches outside the timed region.
	if err := d.Decode(width, height, in, out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if cpuprofile != "" {
		f, err := os.Create(cpuprofile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	start := time.Now()
	for i := 0; i < iters; i++ {
		if err := d.Decode(width, height, in, out); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	elapsed := time.Since(start)

	blocks := ((width + 3) / 4) * ((height + 3) / 4)
	perIter := elapsed / time.Duration(iters)
	mpixels := float64(width*height) * float64(iters) / elapsed.Seconds() / 1e6

	fmt.Printf("%dx%d %s: %d iters in %v\n", width, height, pf, iters, elapsed)
	fmt.Printf("  %v/image, %.1f ns/block, %.1f MP/s\n",
		perIter, float64(perIter.Nanoseconds())/float64(blocks), mpixels)

	if checksumOpt == "fnv" {
		h := fnv.New64a()
		_, _ = h.Write(out)
		fmt.Printf("  checksum %016x\n", h.Sum64())
	}
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
