package dsp_test

import (
	"fmt"

	"github.com/deepteams/aom/dsp"
)

func ExampleBlockSatd() {
	residual := make([]int16, 64)
	for i := range residual {
		residual[i] = 3
	}
	fmt.Println(dsp.BlockSatd(residual, 8, 8))
	// Output: 192
}

func ExampleHadamard8x8() {
	residual := make([]int16, 64)
	for i := range residual {
		residual[i] = 1
	}
	coeff := make([]int32, 64)
	dsp.Hadamard8x8(residual, 8, coeff)
	fmt.Println(coeff[0], coeff[1])
	// Output: 64 0
}
