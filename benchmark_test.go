package lockfree_test

import (
	"testing"

	"github.com/michaelpesa/lockfree"
)

// =============================================================================
// Steady-state SPSC throughput
// =============================================================================

func BenchmarkPush_Pop(b *testing.B) {
	q := lockfree.New[int]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = q.Push(i)
		q.Pop()
	}
}

func BenchmarkPush_Pop_Cached(b *testing.B) {
	b.ReportAllocs()
	q := lockfree.New[int](lockfree.WithCachePrewarm[int](1024))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = q.Push(i)
		q.Pop()
	}
}

func BenchmarkPush_Pop_Uncached(b *testing.B) {
	b.ReportAllocs()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q := lockfree.New[int]()
		_ = q.Push(i)
		q.Pop()
	}
}

func BenchmarkPushSlice_Batch16(b *testing.B) {
	q := lockfree.New[int](lockfree.WithCachePrewarm[int](1024))
	batch := make([]int, 16)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := range batch {
			batch[j] = i*16 + j
		}
		_ = q.PushSlice(batch)
		for range batch {
			q.Pop()
		}
	}
}

func BenchmarkConsumeAll_Batch64(b *testing.B) {
	q := lockfree.New[int](lockfree.WithCachePrewarm[int](128))
	const n = 64

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := 0; j < n; j++ {
			_ = q.Push(j)
		}
		q.ConsumeAll(func(int) {})
	}
}

// =============================================================================
// Pipeline (producer goroutine, consumer goroutine)
// =============================================================================

func BenchmarkPipeline(b *testing.B) {
	q := lockfree.New[int](lockfree.WithCachePrewarm[int](4096))
	done := make(chan struct{})

	go func() {
		p := q.AsProducer()
		for i := 0; i < b.N; i++ {
			for p.Push(i) != nil {
			}
		}
		close(done)
	}()

	b.ResetTimer()
	c := q.AsConsumer()
	received := 0
	for received < b.N {
		if _, ok := c.Pop(); ok {
			received++
		}
	}
	<-done
}
