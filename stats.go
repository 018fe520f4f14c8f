package lockfree

import "code.hybscloud.com/atomix"

// Stats reports cumulative allocator activity for a Queue. It is a
// diagnostic snapshot, not a live view — read it after quiescing the
// producer and consumer for a stable count, the same caveat the teacher's
// package doc gives for anything derived from lock-free counters.
type Stats struct {
	// Allocations is the number of successful calls to the configured
	// Allocator's Allocate (including the one sentinel node allocated by
	// New); a call that returns an error is not counted.
	Allocations uint64
	// Deallocations is the number of times Deallocate was called.
	Deallocations uint64
}

// countingAllocator wraps another Allocator and tracks call counts with
// two atomix.Uint64 counters. Installed only when a Queue is built with
// WithStats; otherwise Queue talks to the configured Allocator directly
// with zero overhead.
type countingAllocator[T any] struct {
	inner   Allocator[T]
	allocs  atomix.Uint64
	deallocs atomix.Uint64
}

func newCountingAllocator[T any](inner Allocator[T]) *countingAllocator[T] {
	return &countingAllocator[T]{inner: inner}
}

func (a *countingAllocator[T]) Allocate() (*Node[T], error) {
	n, err := a.inner.Allocate()
	if err != nil {
		return nil, err
	}
	a.allocs.AddAcqRel(1)
	return n, nil
}

func (a *countingAllocator[T]) Deallocate(n *Node[T]) {
	a.inner.Deallocate(n)
	a.deallocs.AddAcqRel(1)
}

func (a *countingAllocator[T]) stats() Stats {
	return Stats{
		Allocations:   a.allocs.LoadRelaxed(),
		Deallocations: a.deallocs.LoadRelaxed(),
	}
}

// Stats returns cumulative allocator call counts. It always returns the
// zero Stats unless the Queue was built with WithStats — instrumentation
// is opt-in so the hot path never pays for a counter it does not need.
func (q *Queue[T]) Stats() Stats {
	if ca, ok := q.alloc.(*countingAllocator[T]); ok {
		return ca.stats()
	}
	return Stats{}
}
