// Package bufpool provides bucketed sync.Pool instances for the two
// allocation shapes that recur in hot paths: byte buffers for frame
// storage and int32 scratch for transform coefficients. Buffers are
// organized by size class to minimize waste. Returned buffers have
// unspecified contents.
package bufpool

import "sync"

// Byte size classes. The top classes cover decoded-frame footprints.
const (
	Size256B = 256
	Size1K   = 1024
	Size4K   = 4096
	Size16K  = 16384
	Size64K  = 65536
	Size256K = 262144
	Size1M   = 1048576
	Size4M   = 4194304
	Size16M  = 16777216
)

var sizes = [9]int{Size256B, Size1K, Size4K, Size16K, Size64K, Size256K, Size1M, Size4M, Size16M}

// bucketIndex returns the pool index for a given size.
func bucketIndex(size int) int {
	for i, s := range sizes {
		if size <= s {
			return i
		}
	}
	return len(sizes) - 1
}

var pools [9]sync.Pool

func init() {
	for i := range pools {
		sz := sizes[i]
		pools[i] = sync.Pool{
			New: func() any {
				b := make([]byte, sz)
				return &b
			},
		}
	}
}

// Get returns a byte slice of at least the requested size from the pool.
// The returned slice has length == size and may have a larger capacity.
// The caller must call Put when done.
func Get(size int) []byte {
	idx := bucketIndex(size)
	bp := pools[idx].Get().(*[]byte)
	b := *bp
	if cap(b) < size {
		b = make([]byte, size)
		*bp = b
		return b
	}
	return b[:size]
}

// Put returns a byte slice to the pool. The slice must have been obtained
// from Get. Slices smaller than Size256B are not pooled.
func Put(b []byte) {
	c := cap(b)
	if c < Size256B {
		return
	}
	idx := bucketIndex(c)
	b = b[:c]
	pools[idx].Put(&b)
}

// Coefficient classes: one per transform size (8x8, 16x16, 32x32).
var coeffSizes = [3]int{64, 256, 1024}

var coeffPools [3]sync.Pool

func init() {
	for i := range coeffPools {
		n := coeffSizes[i]
		coeffPools[i] = sync.Pool{
			New: func() any {
				s := make([]int32, n)
				return &s
			},
		}
	}
}

func coeffIndex(n int) int {
	for i, s := range coeffSizes {
		if n == s {
			return i
		}
	}
	return -1
}

// GetCoeffs returns an int32 slice of length n. Lengths matching a
// transform size come from a pool; other lengths are allocated fresh.
func GetCoeffs(n int) []int32 {
	idx := coeffIndex(n)
	if idx < 0 {
		return make([]int32, n)
	}
	sp := coeffPools[idx].Get().(*[]int32)
	return (*sp)[:n]
}

// PutCoeffs returns a slice obtained from GetCoeffs. Slices whose capacity
// is not a transform size are dropped.
func PutCoeffs(s []int32) {
	idx := coeffIndex(cap(s))
	if idx < 0 {
		return
	}
	s = s[:cap(s)]
	coeffPools[idx].Put(&s)
}
