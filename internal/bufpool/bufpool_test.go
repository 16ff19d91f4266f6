package bufpool

import (
	"sync"
	"testing"
)

func TestGetPutExactSize(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"256B", 256},
		{"64K", 65536},
		{"1M", 1048576},
		{"4M", 4194304},
		{"16M", 16777216},
		{"500B", 500},
		{"3000B", 3000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Get(tt.size)
			if len(b) != tt.size {
				t.Errorf("Get(%d): len = %d, want %d", tt.size, len(b), tt.size)
			}
			Put(b)
		})
	}
}

func TestBucketIndex(t *testing.T) {
	tests := []struct {
		size       int
		wantBucket int
	}{
		{1, 0},
		{256, 0},
		{257, 1},
		{65536, 4},
		{65537, 5},
		{1048576, 6},
		{1048577, 7},
		{4194304, 7},
		{4194305, 8},
		{16777216, 8},
		{33554432, 8},
	}
	for _, tt := range tests {
		if idx := bucketIndex(tt.size); idx != tt.wantBucket {
			t.Errorf("bucketIndex(%d) = %d, want %d", tt.size, idx, tt.wantBucket)
		}
	}
}

func TestGetLargerThanTopClass(t *testing.T) {
	// Sizes above the top class fall into the last bucket; Get must handle
	// cap(b) < size by allocating fresh.
	size := 2 * Size16M
	b := Get(size)
	if len(b) != size {
		t.Fatalf("Get(%d): len = %d", size, len(b))
	}
	Put(b)
}

func TestPutSmallSlice(t *testing.T) {
	Put(make([]byte, 100))
	Put(nil)

	b := Get(256)
	if len(b) != 256 {
		t.Errorf("Get(256) after small Put: len = %d, want 256", len(b))
	}
	Put(b)
}

func TestGetCoeffs(t *testing.T) {
	for _, n := range []int{64, 256, 1024} {
		s := GetCoeffs(n)
		if len(s) != n {
			t.Errorf("GetCoeffs(%d): len = %d, want %d", n, len(s), n)
		}
		if cap(s) != n {
			t.Errorf("GetCoeffs(%d): cap = %d, want %d", n, cap(s), n)
		}
		PutCoeffs(s)
	}
}

func TestGetCoeffsOddLength(t *testing.T) {
	// Non-transform lengths bypass the pools.
	for _, n := range []int{0, 1, 100, 2048} {
		s := GetCoeffs(n)
		if len(s) != n {
			t.Errorf("GetCoeffs(%d): len = %d, want %d", n, len(s), n)
		}
		PutCoeffs(s) // must not panic
	}
}

func TestCoeffReuse(t *testing.T) {
	s := GetCoeffs(256)
	s[0] = 42
	PutCoeffs(s)

	// Multiple cycles must keep producing full-length slices.
	for i := 0; i < 10; i++ {
		s2 := GetCoeffs(256)
		if len(s2) != 256 {
			t.Fatalf("cycle %d: len = %d", i, len(s2))
		}
		PutCoeffs(s2)
	}
}

func TestConcurrency(t *testing.T) {
	const goroutines = 32
	const iterations = 100

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				b := Get(4096)
				for j := range b {
					b[j] = byte(j)
				}
				Put(b)

				c := GetCoeffs(1024)
				c[0] = int32(i)
				PutCoeffs(c)
			}
		}()
	}

	wg.Wait()
}

func BenchmarkGet(b *testing.B) {
	benchmarks := []struct {
		name string
		size int
	}{
		{"4K", 4096},
		{"1M", 1048576},
		{"4M", 4194304},
	}
	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				buf := Get(bm.size)
				Put(buf)
			}
		})
	}
}

func BenchmarkGetCoeffs(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			s := GetCoeffs(1024)
			PutCoeffs(s)
		}
	})
}
