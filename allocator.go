package lockfree

import "sync"

// Allocator is the collaborator Queue depends on for node storage. It is
// deliberately minimal — Allocate hands back a fresh, zero-valued node;
// Deallocate takes one back once Queue is done with it (on Close, or when
// a partially built PushSlice chain must be unwound after a failure).
//
// Allocate is called only from the producer goroutine (or, for the
// sentinel node, from whichever goroutine calls New). Deallocate is called
// from the producer goroutine (PushSlice failure) and from whichever
// goroutine calls Close. An Allocator implementation need not be safe for
// concurrent use from unrelated goroutines beyond that.
type Allocator[T any] interface {
	// Allocate returns a new, unused node. Returns an error if node
	// storage cannot be obtained; Queue leaves its observable state
	// unchanged when this happens.
	Allocate() (*Node[T], error)
	// Deallocate returns a node Queue will never use again. The node's
	// value is already zeroed by the caller before Deallocate is invoked.
	Deallocate(*Node[T])
}

// HeapAllocator is the default Allocator: every Allocate is a plain heap
// allocation and Deallocate is a no-op, since the Go garbage collector
// reclaims a Node once Queue drops its last reference to it. This is the
// direct analogue of std::allocator<T> in the C++ original this package's
// algorithm is ported from.
type HeapAllocator[T any] struct{}

// Allocate returns a freshly heap-allocated, zero-valued node.
func (HeapAllocator[T]) Allocate() (*Node[T], error) {
	return new(Node[T]), nil
}

// Deallocate does nothing; the garbage collector reclaims n once
// unreferenced.
func (HeapAllocator[T]) Deallocate(*Node[T]) {}

// PoolAllocator recycles nodes across the lifetimes of multiple queues of
// the same element type via a sync.Pool, amortizing allocation for
// workloads that construct and Close many short-lived queues (e.g. one
// queue per accepted connection). It complements, rather than replaces,
// Queue's own steady-state node-recycling cache (§4.3): that cache
// amortizes allocation within a single queue's lifetime; PoolAllocator
// amortizes it across queue lifetimes.
type PoolAllocator[T any] struct {
	pool *sync.Pool
}

// NewPoolAllocator creates a PoolAllocator backed by a fresh sync.Pool.
func NewPoolAllocator[T any]() *PoolAllocator[T] {
	return &PoolAllocator[T]{
		pool: &sync.Pool{
			New: func() any { return new(Node[T]) },
		},
	}
}

// Allocate returns a node from the pool, or a fresh one if the pool is
// empty. Never fails.
func (a *PoolAllocator[T]) Allocate() (*Node[T], error) {
	return a.pool.Get().(*Node[T]), nil
}

// Deallocate resets n's successor pointer and returns it to the pool for
// reuse by a future Allocate call, possibly from a different queue.
func (a *PoolAllocator[T]) Deallocate(n *Node[T]) {
	n.next.Store(nil)
	a.pool.Put(n)
}
