package dsp

import "github.com/deepteams/aom/internal/bufpool"

// satdRef sums absolute coefficient values.
func satdRef(coeff []int32) int {
	sum := 0
	for _, c := range coeff {
		if c < 0 {
			c = -c
		}
		sum += int(c)
	}
	return sum
}

// satdBlock is satdRef with 4-way unrolling and branch-free absolutes.
func satdBlock(coeff []int32) int {
	var s0, s1, s2, s3 int
	i := 0
	for ; i+4 <= len(coeff); i += 4 {
		s0 += abs32(coeff[i])
		s1 += abs32(coeff[i+1])
		s2 += abs32(coeff[i+2])
		s3 += abs32(coeff[i+3])
	}
	for ; i < len(coeff); i++ {
		s0 += abs32(coeff[i])
	}
	return s0 + s1 + s2 + s3
}

func abs32(v int32) int {
	m := v >> 31
	return int((v + m) ^ m)
}

// BlockSatd computes the sum of absolute transformed differences for one
// NxN residual window: the size-appropriate Hadamard kernel into pooled
// scratch, then Satd over it. size must be Block8, Block16, or Block32.
func BlockSatd(src []int16, stride, size int) int {
	var kernel func([]int16, int, []int32)
	switch size {
	case Block8:
		kernel = Hadamard8x8
	case Block16:
		kernel = Hadamard16x16
	case Block32:
		kernel = Hadamard32x32
	default:
		panic("dsp: BlockSatd size must be 8, 16, or 32")
	}

	coeff := bufpool.GetCoeffs(size * size)
	defer bufpool.PutCoeffs(coeff)
	kernel(src, stride, coeff)
	return Satd(coeff)
}
