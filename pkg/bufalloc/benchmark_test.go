package bufalloc

import (
	"fmt"
	"testing"
)

func BenchmarkAlloc(b *testing.B) {
	sizes := []int{64, 4 << 10, 64 << 10}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Heap_%d", size), func(b *testing.B) {
			h := NewHeap(nil)
			b.SetBytes(int64(size))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				buf, err := h.Alloc(size)
				if err != nil {
					b.Fatal(err)
				}
				h.Free(buf)
			}
		})

		b.Run(fmt.Sprintf("Pool_%d", size), func(b *testing.B) {
			p := NewPool(nil, nil)
			b.SetBytes(int64(size))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				buf, err := p.Alloc(size)
				if err != nil {
					b.Fatal(err)
				}
				p.Free(buf)
			}
		})
	}
}

func BenchmarkPoolParallel(b *testing.B) {
	p := NewPool(nil, nil)
	b.SetBytes(4 << 10)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			buf, err := p.Alloc(4 << 10)
			if err != nil {
				b.Fatal(err)
			}
			p.Free(buf)
		}
	})
}
