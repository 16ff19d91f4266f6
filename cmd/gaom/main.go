// Command gaom inspects and decodes IVF-framed video streams and runs the
// block transform kernels from the command line.
//
// Usage:
//
//	gaom info <input.ivf>               Display stream metadata
//	gaom decode [options] <input.ivf>   Decode through external frame buffers
//	gaom satd [options] <input.bin>     SATD of a residual block (little-endian int16)
//	gaom cpu                            Display the selected kernel tier
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/deepteams/aom"
	"github.com/deepteams/aom/dsp"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "info":
		err = runInfo(os.Args[2:])
	case "decode":
		err = runDecode(os.Args[2:])
	case "satd":
		err = runSatd(os.Args[2:])
	case "cpu":
		err = runCPU()
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "gaom: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "gaom: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  gaom info <input.ivf>               Display IVF stream metadata
  gaom decode [options] <input.ivf>   Decode a stream through external frame buffers
  gaom satd [options] <input.bin>     SATD of a residual block (little-endian int16)
  gaom cpu                            Display the selected kernel tier

Use "-" as input to read from stdin.

Run "gaom <command> -h" for command-specific options.
`)
}

// openInput returns an io.ReadCloser for the given path.
// If path is "-", stdin is returned (caller should not close).
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// --- info ---

func runInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("info: missing input file\nUsage: gaom info <input.ivf>")
	}
	inputPath := args[0]

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := aom.ReadStreamInfo(in)
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	name := inputPath
	if inputPath == "-" {
		name = "<stdin>"
	}

	fmt.Printf("File:       %s\n", name)
	fmt.Printf("Codec:      %s\n", info.Codec)
	fmt.Printf("Dimensions: %d x %d\n", info.Width, info.Height)
	fmt.Printf("Timebase:   %d/%d\n", info.TimebaseNum, info.TimebaseDen)
	fmt.Printf("Frames:     %d\n", info.FrameCount)
	fmt.Printf("Frame buf:  %d bytes\n", aom.FrameBufferSize(info.Width, info.Height))

	if inputPath != "-" {
		fi, err := os.Stat(inputPath)
		if err == nil {
			fmt.Printf("File size:  %d bytes\n", fi.Size())
		}
	}

	return nil
}

// --- decode ---

// frameBufferSet is a fixed pool of caller-owned frame buffers with usage
// accounting, registered with the decoder via SetFrameBufferFunctions.
type frameBufferSet struct {
	buffers  [][]byte
	inUse    []bool
	gets     int
	releases int
	peak     int
}

func newFrameBufferSet(n int) *frameBufferSet {
	return &frameBufferSet{buffers: make([][]byte, n), inUse: make([]bool, n)}
}

func (s *frameBufferSet) get(minSize int, fb *aom.FrameBuffer) error {
	for i := range s.buffers {
		if s.inUse[i] {
			continue
		}
		if cap(s.buffers[i]) < minSize {
			s.buffers[i] = make([]byte, minSize)
		}
		s.inUse[i] = true
		s.gets++
		if n := s.used(); n > s.peak {
			s.peak = n
		}
		fb.Data = s.buffers[i][:minSize]
		fb.Priv = i
		return nil
	}
	return fmt.Errorf("all %d frame buffers in use", len(s.buffers))
}

func (s *frameBufferSet) release(fb *aom.FrameBuffer) error {
	s.inUse[fb.Priv.(int)] = false
	s.releases++
	return nil
}

func (s *frameBufferSet) used() int {
	n := 0
	for _, u := range s.inUse {
		if u {
			n++
		}
	}
	return n
}

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	buffers := fs.Int("buffers", aom.MinFrameBuffers, "external frame buffers to provide")
	maxFrames := fs.Int("frames", 0, "stop after this many frames (0 = all)")
	quiet := fs.Bool("q", false, "suppress per-frame lines")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("decode: missing input file\nUsage: gaom decode [options] <input.ivf>")
	}
	if *buffers < 1 {
		return fmt.Errorf("decode: -buffers must be at least 1")
	}

	in, err := openInput(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()

	sd, err := aom.NewStreamDecoder(in)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	defer sd.Close()

	set := newFrameBufferSet(*buffers)
	if err := sd.SetFrameBufferFunctions(set.get, set.release); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	n := 0
	for *maxFrames == 0 || n < *maxFrames {
		frame, err := sd.NextFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("decode: frame %d: %w", n, err)
		}
		if !*quiet {
			fmt.Printf("frame %4d  pts=%-10d %7d bytes  keyframe=%v\n",
				n, frame.PTS, len(frame.Data), frame.Keyframe)
		}
		frame.Release()
		n++
	}

	if err := sd.Close(); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Decoded %d frames; %d gets, %d releases, peak %d of %d buffers in use\n",
		n, set.gets, set.releases, set.peak, *buffers)
	return nil
}

// --- satd ---

func runSatd(args []string) error {
	fs := flag.NewFlagSet("satd", flag.ContinueOnError)
	size := fs.Int("size", 8, "block size: 8, 16, or 32")
	showCoeffs := fs.Bool("coeffs", false, "print the transformed coefficient block")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("satd: missing input file\nUsage: gaom satd [options] <input.bin>")
	}
	n := *size
	if n != dsp.Block8 && n != dsp.Block16 && n != dsp.Block32 {
		return fmt.Errorf("satd: block size must be 8, 16, or 32")
	}

	in, err := openInput(fs.Arg(0))
	if err != nil {
		return err
	}
	data, err := io.ReadAll(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("satd: reading input: %w", err)
	}
	if need := n * n * 2; len(data) < need {
		return fmt.Errorf("satd: need %d bytes of residual samples, have %d", need, len(data))
	}

	residual := make([]int16, n*n)
	for i := range residual {
		residual[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}

	coeff := make([]int32, n*n)
	switch n {
	case dsp.Block8:
		dsp.Hadamard8x8(residual, n, coeff)
	case dsp.Block16:
		dsp.Hadamard16x16(residual, n, coeff)
	case dsp.Block32:
		dsp.Hadamard32x32(residual, n, coeff)
	}

	if *showCoeffs {
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				fmt.Printf("%8d", coeff[r*n+c])
			}
			fmt.Println()
		}
	}
	fmt.Printf("satd(%dx%d) = %d\n", n, n, dsp.Satd(coeff))
	return nil
}

// --- cpu ---

func runCPU() error {
	fmt.Printf("Level:   %s\n", dsp.CurrentName())
	fmt.Printf("Kernels: %s\n", dsp.CurrentKernel())
	if os.Getenv(dsp.ScalarEnv) != "" {
		fmt.Printf("Forced:  %s is set\n", dsp.ScalarEnv)
	}
	return nil
}
