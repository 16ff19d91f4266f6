package dsp

// Table-driven reference implementations of the Hadamard kernel family.
// These are the source of truth; the unrolled forms in hadamard_block.go
// must stay bit-exact with them (see conformance_test.go).
//
// The 8x8 transform is two passes of a length-8 butterfly network. The
// first pass runs down the columns in 16-bit arithmetic (13-bit input gives
// at most 4095*8 = 32760, which fits int16). The second pass runs across
// the intermediate rows widened to 32 bits. Matches the output of libaom's
// aom_highbd_hadamard_8x8, including its coefficient order.

// stage3Scatter maps the butterfly's stage-3 pair outputs, taken in the
// natural order (c0+c4, c0-c4, c1+c5, c1-c5, ...), to their output
// positions. The scatter is part of the coefficient format and must not
// change.
var stage3Scatter = [8]int{0, 2, 7, 6, 3, 1, 4, 5}

// hadamardCol8First butterflies one length-8 column in 16-bit arithmetic.
// col[0], col[stride], ..., col[7*stride] are the samples; out receives the
// scattered result.
func hadamardCol8First(col []int16, stride int, out *[8]int16) {
	b0 := col[0*stride] + col[1*stride]
	b1 := col[0*stride] - col[1*stride]
	b2 := col[2*stride] + col[3*stride]
	b3 := col[2*stride] - col[3*stride]
	b4 := col[4*stride] + col[5*stride]
	b5 := col[4*stride] - col[5*stride]
	b6 := col[6*stride] + col[7*stride]
	b7 := col[6*stride] - col[7*stride]

	var c [8]int16
	c[0] = b0 + b2
	c[2] = b0 - b2
	c[1] = b1 + b3
	c[3] = b1 - b3
	c[4] = b4 + b6
	c[6] = b4 - b6
	c[5] = b5 + b7
	c[7] = b5 - b7

	for k := 0; k < 4; k++ {
		out[stage3Scatter[2*k]] = c[k] + c[k+4]
		out[stage3Scatter[2*k+1]] = c[k] - c[k+4]
	}
}

// hadamardCol8Second is the same butterfly widened to 32-bit arithmetic.
func hadamardCol8Second(col []int16, stride int, out *[8]int32) {
	b0 := int32(col[0*stride]) + int32(col[1*stride])
	b1 := int32(col[0*stride]) - int32(col[1*stride])
	b2 := int32(col[2*stride]) + int32(col[3*stride])
	b3 := int32(col[2*stride]) - int32(col[3*stride])
	b4 := int32(col[4*stride]) + int32(col[5*stride])
	b5 := int32(col[4*stride]) - int32(col[5*stride])
	b6 := int32(col[6*stride]) + int32(col[7*stride])
	b7 := int32(col[6*stride]) - int32(col[7*stride])

	var c [8]int32
	c[0] = b0 + b2
	c[2] = b0 - b2
	c[1] = b1 + b3
	c[3] = b1 - b3
	c[4] = b4 + b6
	c[6] = b4 - b6
	c[5] = b5 + b7
	c[7] = b5 - b7

	for k := 0; k < 4; k++ {
		out[stage3Scatter[2*k]] = c[k] + c[k+4]
		out[stage3Scatter[2*k+1]] = c[k] - c[k+4]
	}
}

func hadamard8x8Ref(src []int16, stride int, coeff []int32) {
	// First pass over the 8 columns. buf[j*8+k] holds scattered output k of
	// column j, so the intermediate matrix lands pre-transposed: its row r
	// is buf[r], buf[8+r], ..., buf[56+r].
	var buf [64]int16
	for j := 0; j < 8; j++ {
		var col [8]int16
		hadamardCol8First(src[j:], stride, &col)
		copy(buf[j*8:j*8+8], col[:])
	}

	// Second pass over the intermediate rows. Coefficients are stored as
	// two 8x4 half-blocks (rows 0-3, then rows 4-7): scattered output k of
	// row r goes to coeff[4k+r], or coeff[32+4k+(r-4)] for the high half.
	// There is no second transpose; consumers accept this fixed order.
	for r := 0; r < 8; r++ {
		var out [8]int32
		hadamardCol8Second(buf[r:], 8, &out)

		off := r
		if r >= 4 {
			off = 32 + r - 4
		}
		for k := 0; k < 8; k++ {
			coeff[off+4*k] = out[k]
		}
	}
}

// hadamardCombine16 merges four 8x8 quadrant outputs in place. Each pair is
// halved with a truncating arithmetic shift of the exact sum (rounds toward
// negative infinity), then cross-combined without further scaling.
func hadamardCombine16(coeff []int32) {
	for i := 0; i < 64; i++ {
		a0 := int(coeff[i])
		a1 := int(coeff[64+i])
		a2 := int(coeff[128+i])
		a3 := int(coeff[192+i])

		b0 := (a0 + a1) >> 1
		b1 := (a0 - a1) >> 1
		b2 := (a2 + a3) >> 1
		b3 := (a2 - a3) >> 1

		coeff[i] = int32(b0 + b2)
		coeff[64+i] = int32(b1 + b3)
		coeff[128+i] = int32(b0 - b2)
		coeff[192+i] = int32(b1 - b3)
	}
}

// hadamardCombine32 is the 32x32 merge: pairs are scaled by a quarter
// (full-width add, then arithmetic shift by 2) to keep one more level of
// recursion inside the coefficient range.
func hadamardCombine32(coeff []int32) {
	for i := 0; i < 256; i++ {
		a0 := int(coeff[i])
		a1 := int(coeff[256+i])
		a2 := int(coeff[512+i])
		a3 := int(coeff[768+i])

		b0 := (a0 + a1) >> 2
		b1 := (a0 - a1) >> 2
		b2 := (a2 + a3) >> 2
		b3 := (a2 - a3) >> 2

		coeff[i] = int32(b0 + b2)
		coeff[256+i] = int32(b1 + b3)
		coeff[512+i] = int32(b0 - b2)
		coeff[768+i] = int32(b1 - b3)
	}
}

func hadamard16x16Ref(src []int16, stride int, coeff []int32) {
	hadamard8x8Ref(src, stride, coeff[0:])
	hadamard8x8Ref(src[8:], stride, coeff[64:])
	hadamard8x8Ref(src[8*stride:], stride, coeff[128:])
	hadamard8x8Ref(src[8*stride+8:], stride, coeff[192:])
	hadamardCombine16(coeff)
}

func hadamard32x32Ref(src []int16, stride int, coeff []int32) {
	hadamard16x16Ref(src, stride, coeff[0:])
	hadamard16x16Ref(src[16:], stride, coeff[256:])
	hadamard16x16Ref(src[16*stride:], stride, coeff[512:])
	hadamard16x16Ref(src[16*stride+16:], stride, coeff[768:])
	hadamardCombine32(coeff)
}
