package lockfree

// Queue is an unbounded single-producer/single-consumer FIFO queue built
// from a lock-free singly-linked chain of nodes, with an attached
// free-node cache that recycles nodes the consumer has released back to
// the producer so steady-state Push performs no allocation once the
// cache has been warmed by an equal number of Pops.
//
// Exactly one goroutine may call the producer methods (Push, PushSlice) at
// a time, and exactly one goroutine may call the consumer methods (Pop,
// Front, Empty, Clear, ConsumeAll) at a time; the two goroutines may
// differ, and either role may be handed off to a different goroutine
// provided the handoff itself is synchronized externally (e.g. by sending
// on a channel, which establishes the necessary happens-before edge).
// Calling a producer method from two goroutines concurrently, or a
// consumer method from two goroutines concurrently, is undefined by this
// package's contract; this package has no multi-role queue variant.
//
// The zero Queue[T] is not usable; construct one with New.
type Queue[T any] struct {
	_ noCopy

	// tail is the producer's append slot: the last live node. Owned
	// entirely by the producer goroutine.
	tail *Node[T]

	// beforeHead is the sentinel immediately preceding the first live
	// element (the "logical front" is beforeHead.next). Written by the
	// consumer with a release store; read by the producer during cache
	// refill with an acquire load and by the consumer itself with a
	// relaxed load (the consumer owns it, so no fence is needed to read
	// its own last write).
	beforeHead atomicNodePtr[T]

	// cacheTail is the producer's snapshot of where the reclaim region
	// ends; refreshed from beforeHead only when the cache is empty.
	// Producer-only.
	cacheTail *Node[T]

	// cacheHead is the front of the free-node cache: the oldest
	// reclaimable node. Producer-only.
	cacheHead *Node[T]

	alloc Allocator[T]
}

// New constructs an empty Queue. The single sentinel node is obtained
// from the configured Allocator (HeapAllocator[T] by default).
func New[T any](opts ...Option[T]) *Queue[T] {
	cfg := queueConfig[T]{alloc: HeapAllocator[T]{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	alloc := cfg.alloc
	if cfg.withStats {
		alloc = newCountingAllocator[T](alloc)
	}

	sentinel, err := alloc.Allocate()
	if err != nil {
		// The only allocator this package ships that can fail this way
		// is a user-supplied one; HeapAllocator never returns an error.
		// A queue that cannot even obtain its sentinel has nowhere
		// sensible to report the failure to a constructor with no error
		// return, so it panics — the same posture the teacher's own
		// New* constructors take for a bad capacity argument.
		panic("lockfree: allocator failed to allocate sentinel node: " + err.Error())
	}

	q := &Queue[T]{
		tail:       sentinel,
		cacheTail:  sentinel,
		cacheHead:  sentinel,
		alloc:      alloc,
	}
	q.beforeHead.storeRelease(sentinel)

	if cfg.prewarm > 0 {
		q.prewarmCache(cfg.prewarm)
	}
	return q
}

// prewarmCache allocates n nodes and immediately reclaims them into the
// free-node cache, so the next n calls to acquireNode need not touch the
// allocator. Called only from New, before either goroutine has started,
// so no synchronization is needed to link the nodes in.
func (q *Queue[T]) prewarmCache(n int) {
	for i := 0; i < n; i++ {
		x, err := q.alloc.Allocate()
		if err != nil {
			return
		}
		q.tail.storeNextRelaxed(x)
		q.tail = x
	}
	// Reclaim everything just appended straight back into the cache: walk
	// beforeHead to the new tail, exactly like Clear, except there is no
	// live value to hand a caller and nothing to destroy.
	q.beforeHead.storeRelease(q.tail)
}

// AsProducer returns a handle exposing only q's producer methods.
func (q *Queue[T]) AsProducer() Producer[T] { return producerHandle[T]{q} }

// AsConsumer returns a handle exposing only q's consumer methods.
func (q *Queue[T]) AsConsumer() Consumer[T] { return consumerHandle[T]{q} }

// Allocator returns the Allocator this queue was configured with.
func (q *Queue[T]) Allocator() Allocator[T] {
	if ca, ok := q.alloc.(*countingAllocator[T]); ok {
		return ca.inner
	}
	return q.alloc
}

// IsLockFree reports whether the underlying atomic pointer type is
// lock-free. Every architecture the Go compiler targets implements
// sync/atomic's pointer operations without a fallback lock, so this
// always returns true; the method exists for interface parity with the
// distilled spec's surface.
func (q *Queue[T]) IsLockFree() bool { return true }

// ============================================================================
// Producer-side.
// ============================================================================

// acquireNode returns a node ready to hold v: either recycled from the
// free-node cache or freshly allocated. Producer-only.
func (q *Queue[T]) acquireNode(v T) (*Node[T], error) {
	x := q.cacheHead
	if q.cacheTail == x {
		// Cache exhausted as far as the producer's stale snapshot knows;
		// re-read beforeHead with acquire ordering. Every next pointer in
		// [old cacheTail, new cacheTail) was written by the consumer
		// before it released beforeHead, so once this acquire load
		// completes those next pointers — and the destroyed state of
		// their values — are safe to observe with plain relaxed reads.
		q.cacheTail = q.beforeHead.loadAcquire()
	}
	if q.cacheTail != x {
		x.value = v
		q.cacheHead = x.loadNextRelaxed()
		return x, nil
	}
	// Cache genuinely empty: fall back to the allocator.
	x, err := q.alloc.Allocate()
	if err != nil {
		return nil, err
	}
	x.value = v
	return x, nil
}

// releaseUnpublished destroys x's value and returns x directly to the
// allocator. Used only to unwind a private chain built by PushSlice after
// a mid-chain allocator failure; per the distilled spec's Open Question
// resolution (see DESIGN.md), nodes already pulled from the cache in that
// situation are released to the allocator rather than returned to the
// cache, since the caller is not entitled to see the cache change shape
// as a side effect of a push that never became visible.
func (q *Queue[T]) releaseUnpublished(x *Node[T]) {
	var zero T
	x.value = zero
	q.alloc.Deallocate(x)
}

// Push enqueues v. Never blocks. Fails only if Close has already been
// called (ErrClosed), or if the configured Allocator fails to produce a
// node when the free-node cache is empty; the queue is left unchanged in
// either case.
func (q *Queue[T]) Push(v T) error {
	if q.tail == nil {
		return ErrClosed
	}
	x, err := q.acquireNode(v)
	if err != nil {
		return err
	}
	x.storeNextRelaxed(nil)
	// The single synchronization point: this release store is what makes
	// x.value and x.next visible to the consumer's paired acquire load.
	q.tail.storeNextRelease(x)
	q.tail = x
	return nil
}

// PushSlice enqueues every element of vs as a single atomic publication:
// the consumer either observes none of vs or, from the moment any one of
// them becomes visible, sees the rest reachable without further producer
// action. An empty vs is a no-op — no allocation, no publication.
//
// If the Allocator fails partway through, every node already pulled into
// the private chain has its value destroyed and is released directly to
// the allocator (not the free-node cache); the queue's observable
// contents are unchanged.
func (q *Queue[T]) PushSlice(vs []T) error {
	if len(vs) == 0 {
		return nil
	}
	if q.tail == nil {
		return ErrClosed
	}

	insertHead, err := q.acquireNode(vs[0])
	if err != nil {
		return err
	}
	insertHead.storeNextRelaxed(nil)
	insertTail := insertHead

	for _, v := range vs[1:] {
		x, err := q.acquireNode(v)
		if err != nil {
			// Unwind everything staged so far; none of it was ever
			// published, so the queue's contents are untouched.
			for n := insertHead; n != nil; {
				next := n.loadNextRelaxed()
				q.releaseUnpublished(n)
				n = next
			}
			return err
		}
		x.storeNextRelaxed(nil)
		insertTail.storeNextRelaxed(x)
		insertTail = x
	}

	q.tail.storeNextRelease(insertHead)
	q.tail = insertTail
	return nil
}

// ============================================================================
// Consumer-side.
// ============================================================================

// head returns the current front node, or nil if the queue is empty.
// Consumer-only.
func (q *Queue[T]) head() *Node[T] {
	b := q.beforeHead.loadRelaxed()
	return b.loadNextAcquire()
}

// Pop removes and returns the front element. Returns (zero, false) if the
// queue is empty; the out value is left at its zero value in that case.
func (q *Queue[T]) Pop() (T, bool) {
	x := q.head()
	if x == nil {
		var zero T
		return zero, false
	}
	v := x.value
	var zero T
	x.value = zero
	// Transfers ownership of the previous sentinel (the node beforeHead
	// used to point at) into the producer's reclaim region.
	q.beforeHead.storeRelease(x)
	return v, true
}

// Front returns a pointer to the front element without removing it, and
// true, or (nil, false) if the queue is empty. The pointer is valid only
// until the next consumer-side mutating call on this queue.
func (q *Queue[T]) Front() (*T, bool) {
	x := q.head()
	if x == nil {
		return nil, false
	}
	return &x.value, true
}

// Empty reports whether the queue currently has no element visible to the
// consumer.
func (q *Queue[T]) Empty() bool {
	return q.head() == nil
}

// Clear removes every currently visible element without invoking a
// callback for each, destroying their values in place. The final
// beforeHead store happens once, after the whole drained prefix has been
// walked, amortizing the release fence across every element removed —
// idempotent: an immediate second Clear on an already-empty queue is a
// no-op.
func (q *Queue[T]) Clear() {
	last := q.beforeHead.loadRelaxed()
	for {
		x := last.loadNextAcquire()
		if x == nil {
			break
		}
		var zero T
		x.value = zero
		last = x
	}
	q.beforeHead.storeRelease(last)
}

// ConsumeAll drains the queue, invoking fn on each element in FIFO order
// before destroying it. beforeHead is released once per element (rather
// than once at the end, as Clear does) so a panic from fn leaves every
// element already handed to fn correctly reclaimed.
func (q *Queue[T]) ConsumeAll(fn func(T)) {
	last := q.beforeHead.loadRelaxed()
	for {
		x := last.loadNextAcquire()
		if x == nil {
			break
		}
		fn(x.value)
		var zero T
		x.value = zero
		q.beforeHead.storeRelease(x)
		last = x
	}
}

// Close reclaims every node in the queue's chain — the free-node cache,
// any already-released-but-not-yet-cached nodes, and any still-live
// elements — via the configured Allocator's Deallocate. It is not
// required for memory safety (the Go garbage collector reclaims an
// unreferenced Queue on its own); Close exists so an Allocator that pools
// memory outside the Go heap (see PoolAllocator) gets a deterministic
// Deallocate call per node. Close is idempotent: calling it again is a
// no-op. Callers must ensure the producer and consumer have both stopped
// before calling Close, the same precondition the distilled spec's
// destruction step requires.
func (q *Queue[T]) Close() {
	if q.cacheHead == nil {
		return // already closed
	}

	// Deallocate cached nodes: their values are already non-live.
	first := q.cacheHead
	cacheEnd := q.beforeHead.loadRelaxed()
	for first != cacheEnd {
		x := first
		first = first.loadNextRelaxed()
		q.alloc.Deallocate(x)
	}

	// Destroy and deallocate every remaining live node through tail.
	for first != nil {
		x := first
		first = first.loadNextRelaxed()
		var zero T
		x.value = zero
		q.alloc.Deallocate(x)
	}

	q.cacheHead = nil
	q.cacheTail = nil
	q.tail = nil
}
