package lockfree

import "sync/atomic"

// Node is one slot in the queue's singly-linked chain.
//
// A Node's value is only guaranteed live between the moment a producer
// assigns it and the moment a consumer moves it out and destroys it. At
// every other time (before assignment, after destruction, or while parked
// in the free-node cache) the value field may hold a stale or zero value;
// callers of a custom Allocator must never read it directly.
//
// Node is exported only so a custom Allocator implementation has a
// concrete type to allocate and free; its fields are unexported and
// touched exclusively by Queue.
type Node[T any] struct {
	value T
	next  atomic.Pointer[Node[T]]
}

// loadNextAcquire reads next with acquire ordering, synchronizing with the
// release store that published this node's successor.
func (n *Node[T]) loadNextAcquire() *Node[T] {
	return n.next.Load()
}

// loadNextRelaxed reads next without a fresh acquire fence. Safe only when
// the caller already holds happens-before knowledge that the pointer is
// visible (e.g. immediately after acquiring beforeHead, or when walking a
// chain the calling thread itself built).
func (n *Node[T]) loadNextRelaxed() *Node[T] {
	return n.next.Load()
}

// storeNextRelease publishes x as this node's successor with release
// ordering, making x's already-assigned value visible to a subsequent
// acquire load of next.
func (n *Node[T]) storeNextRelease(x *Node[T]) {
	n.next.Store(x)
}

// storeNextRelaxed links x into a private chain the caller is still
// building; the link becomes visible to the other thread only once the
// chain's head is published with a release store.
func (n *Node[T]) storeNextRelaxed(x *Node[T]) {
	n.next.Store(x)
}

// atomicNodePtr is Queue's beforeHead field: an atomic pointer read by
// both goroutines and written only by the consumer. It carries the same
// ordering-labeled method names as Node.next above for consistency, even
// though both compile down to sync/atomic's sequentially consistent
// Load/Store — Go's atomic.Pointer has no separate relaxed/acquire/release
// entry points the way code.hybscloud.com/atomix's integer types do (see
// DESIGN.md); the method names here document intent at each call site
// rather than selecting a distinct underlying instruction.
type atomicNodePtr[T any] struct {
	p atomic.Pointer[Node[T]]
}

func (a *atomicNodePtr[T]) loadAcquire() *Node[T]  { return a.p.Load() }
func (a *atomicNodePtr[T]) loadRelaxed() *Node[T]  { return a.p.Load() }
func (a *atomicNodePtr[T]) storeRelease(x *Node[T]) { a.p.Store(x) }
