package lockfree

// Option configures a Queue at construction time. Unlike the teacher
// package's fluent Builder — which exists to pick among several distinct
// bounded-queue algorithms from producer/consumer arity hints — this
// package implements exactly one algorithm, so there is no algorithm
// selection left to drive a builder. The idiomatic Go shape for
// "construct with optional configuration and nothing left to choose
// between" is functional options, not a builder with one button.
type Option[T any] func(*queueConfig[T])

type queueConfig[T any] struct {
	alloc       Allocator[T]
	prewarm     int
	withStats   bool
}

// WithAllocator installs the given Allocator for node storage instead of
// the default HeapAllocator[T]. See PoolAllocator for an allocator that
// amortizes allocation across the lifetimes of multiple queues.
func WithAllocator[T any](a Allocator[T]) Option[T] {
	return func(c *queueConfig[T]) { c.alloc = a }
}

// WithCachePrewarm pre-populates the free-node cache with n nodes at
// construction time (by allocating and immediately reclaiming them), so a
// subsequent bounded burst of up to n pushes performs zero allocations —
// the scenario the distilled spec's testable-property §8.4 describes.
// n <= 0 is a no-op.
func WithCachePrewarm[T any](n int) Option[T] {
	return func(c *queueConfig[T]) { c.prewarm = n }
}

// WithStats enables allocator call counting, made available afterwards
// through Queue.Stats. Disabled by default so the hot path never pays for
// a counter nobody reads.
func WithStats[T any]() Option[T] {
	return func(c *queueConfig[T]) { c.withStats = true }
}
