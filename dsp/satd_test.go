package dsp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSatdKnownValues(t *testing.T) {
	require.Equal(t, 0, Satd(nil))
	require.Equal(t, 0, Satd([]int32{}))
	require.Equal(t, 10, Satd([]int32{1, -2, 3, -4}))
	require.Equal(t, 6, Satd([]int32{-1, -2, -3}))
}

func TestBlockSatdImpulse(t *testing.T) {
	// A unit impulse spreads one unit into each of the 64 basis positions.
	src := make([]int16, 64)
	src[0] = 1
	require.Equal(t, 64, BlockSatd(src, 8, Block8))
}

func TestBlockSatdMatchesManual(t *testing.T) {
	rng := rand.New(rand.NewSource(53))
	sizes := []struct {
		n      int
		kernel func([]int16, int, []int32)
	}{
		{Block8, Hadamard8x8},
		{Block16, Hadamard16x16},
		{Block32, Hadamard32x32},
	}
	for _, s := range sizes {
		for iter := 0; iter < 50; iter++ {
			stride := s.n + rng.Intn(8)
			src := randBlock(rng, s.n, stride)

			coeff := make([]int32, s.n*s.n)
			s.kernel(src, stride, coeff)
			want := 0
			for _, c := range coeff {
				if c < 0 {
					c = -c
				}
				want += int(c)
			}

			require.Equal(t, want, BlockSatd(src, stride, s.n), "size %d iter %d", s.n, iter)
		}
	}
}

func TestBlockSatdBadSize(t *testing.T) {
	src := make([]int16, 64)
	assert.Panics(t, func() { BlockSatd(src, 8, 4) })
	assert.Panics(t, func() { BlockSatd(src, 8, 0) })
}

func TestAbs32(t *testing.T) {
	cases := map[int32]int{0: 0, 1: 1, -1: 1, 262080: 262080, -262080: 262080}
	for in, want := range cases {
		if got := abs32(in); got != want {
			t.Errorf("abs32(%d) = %d, want %d", in, got, want)
		}
	}
}

func BenchmarkBlockSatd(b *testing.B) {
	rng := rand.New(rand.NewSource(54))
	for _, n := range []int{Block8, Block16, Block32} {
		src := randBlock(rng, n, n)
		b.Run(map[int]string{8: "8x8", 16: "16x16", 32: "32x32"}[n], func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				BlockSatd(src, n, n)
			}
		})
	}
}
