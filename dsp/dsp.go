// Package dsp provides the integer Walsh-Hadamard transform kernels used
// for transform-domain cost estimation, plus the SATD summation that
// consumes them.
//
// The kernels operate on signed 16-bit residual samples in [-4095, 4095]
// (the high-bit-depth residual range) and produce 32-bit coefficients.
// Inputs are strided windows: element (r, c) of an NxN block lives at
// src[r*stride+c] with stride >= N. Outputs are tightly packed, N*N
// contiguous coefficients in the kernel's fixed (non-raster) order;
// consumers treat the order as opaque but stable.
//
// All implementations are pure functions with no shared state and are safe
// to call concurrently on disjoint output buffers. The package-level
// function variables are assigned once by Init and must not be reassigned
// while transforms are in flight.
package dsp

// Block sizes handled by the kernel family.
const (
	Block8  = 8
	Block16 = 16
	Block32 = 32
)

// Transform function variables for dispatch.
// These are set by Init() to the best implementation for the host and can
// be overridden by platform-specific SIMD implementations in the future.
var (
	// Hadamard8x8 transforms an 8x8 residual window into 64 coefficients.
	Hadamard8x8 func(src []int16, stride int, coeff []int32)

	// Hadamard16x16 transforms a 16x16 window into 256 coefficients,
	// composed from four 8x8 transforms plus a halving combine.
	Hadamard16x16 func(src []int16, stride int, coeff []int32)

	// Hadamard32x32 transforms a 32x32 window into 1024 coefficients,
	// composed from four 16x16 transforms plus a quarter-scaling combine.
	Hadamard32x32 func(src []int16, stride int, coeff []int32)

	// Satd sums the absolute values of a coefficient block.
	Satd func(coeff []int32) int
)

// kernelTier names the implementation family Init selected.
var kernelTier = "reference"

// CurrentKernel reports which implementation family the function variables
// currently point at: "reference" or "block".
func CurrentKernel() string {
	return kernelTier
}

// Init assigns all function variables. The table-driven implementations in
// hadamard.go are the reference; when the host reports a vector unit the
// unrolled row-vector forms are selected instead. Setting the environment
// variable named by ScalarEnv forces the reference tier.
func Init() {
	Hadamard8x8 = hadamard8x8Ref
	Hadamard16x16 = hadamard16x16Ref
	Hadamard32x32 = hadamard32x32Ref
	Satd = satdRef
	kernelTier = "reference"

	if scalarForced() || CurrentLevel() == LevelScalar {
		return
	}

	Hadamard8x8 = hadamard8x8Block
	Hadamard16x16 = hadamard16x16Block
	Hadamard32x32 = hadamard32x32Block
	Satd = satdBlock
	kernelTier = "block"
}

func init() {
	Init()
}
