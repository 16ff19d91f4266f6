package dsp

// Unrolled row-vector forms of the Hadamard kernels. The first pass walks
// the eight rows a lane at a time with straight-line butterflies, which the
// compiler turns into good vector code on 128-bit targets. Selected by Init
// when the host reports a vector unit; bit-exact with hadamard.go.

func hadamard8x8Block(src []int16, stride int, coeff []int32) {
	_ = coeff[63]
	r0 := src[0*stride : 0*stride+8]
	r1 := src[1*stride : 1*stride+8]
	r2 := src[2*stride : 2*stride+8]
	r3 := src[3*stride : 3*stride+8]
	r4 := src[4*stride : 4*stride+8]
	r5 := src[5*stride : 5*stride+8]
	r6 := src[6*stride : 6*stride+8]
	r7 := src[7*stride : 7*stride+8]

	// First pass, one column per lane, 16-bit arithmetic. m collects the
	// scattered stage-3 outputs, so m[k][j] is output k of column j.
	var m [8][8]int16
	for j := 0; j < 8; j++ {
		b0 := r0[j] + r1[j]
		b1 := r0[j] - r1[j]
		b2 := r2[j] + r3[j]
		b3 := r2[j] - r3[j]
		b4 := r4[j] + r5[j]
		b5 := r4[j] - r5[j]
		b6 := r6[j] + r7[j]
		b7 := r6[j] - r7[j]

		c0 := b0 + b2
		c2 := b0 - b2
		c1 := b1 + b3
		c3 := b1 - b3
		c4 := b4 + b6
		c6 := b4 - b6
		c5 := b5 + b7
		c7 := b5 - b7

		m[0][j] = c0 + c4
		m[2][j] = c0 - c4
		m[7][j] = c1 + c5
		m[6][j] = c1 - c5
		m[3][j] = c2 + c6
		m[1][j] = c2 - c6
		m[4][j] = c3 + c7
		m[5][j] = c3 - c7
	}

	// Second pass across the intermediate rows, widened to 32 bits, storing
	// the two 8x4 half-blocks directly (no second transpose).
	for r := 0; r < 8; r++ {
		a0 := int32(m[r][0])
		a1 := int32(m[r][1])
		a2 := int32(m[r][2])
		a3 := int32(m[r][3])
		a4 := int32(m[r][4])
		a5 := int32(m[r][5])
		a6 := int32(m[r][6])
		a7 := int32(m[r][7])

		b0 := a0 + a1
		b1 := a0 - a1
		b2 := a2 + a3
		b3 := a2 - a3
		b4 := a4 + a5
		b5 := a4 - a5
		b6 := a6 + a7
		b7 := a6 - a7

		c0 := b0 + b2
		c2 := b0 - b2
		c1 := b1 + b3
		c3 := b1 - b3
		c4 := b4 + b6
		c6 := b4 - b6
		c5 := b5 + b7
		c7 := b5 - b7

		off := r
		if r >= 4 {
			off = 32 + r - 4
		}
		coeff[off+0] = c0 + c4
		coeff[off+8] = c0 - c4
		coeff[off+28] = c1 + c5
		coeff[off+24] = c1 - c5
		coeff[off+12] = c2 + c6
		coeff[off+4] = c2 - c6
		coeff[off+16] = c3 + c7
		coeff[off+20] = c3 - c7
	}
}

func hadamard16x16Block(src []int16, stride int, coeff []int32) {
	hadamard8x8Block(src, stride, coeff[0:])
	hadamard8x8Block(src[8:], stride, coeff[64:])
	hadamard8x8Block(src[8*stride:], stride, coeff[128:])
	hadamard8x8Block(src[8*stride+8:], stride, coeff[192:])
	hadamardCombine16(coeff)
}

func hadamard32x32Block(src []int16, stride int, coeff []int32) {
	hadamard16x16Block(src, stride, coeff[0:])
	hadamard16x16Block(src[16:], stride, coeff[256:])
	hadamard16x16Block(src[16*stride:], stride, coeff[512:])
	hadamard16x16Block(src[16*stride+16:], stride, coeff[768:])
	hadamardCombine32(coeff)
}
