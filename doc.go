// Package lockfree provides an unbounded, single-producer/single-consumer
// FIFO queue with no locks, no condition variables, and — once its
// free-node cache has been warmed by an equal number of pops — no
// steady-state allocation.
//
// # Quick Start
//
//	q := lockfree.New[int]()
//
//	// Producer goroutine
//	if err := q.Push(42); err != nil {
//	    // only the configured Allocator failing, or a prior Close, can cause this
//	}
//
//	// Consumer goroutine
//	v, ok := q.Pop()
//	if ok {
//	    fmt.Println(v)
//	}
//
// # Why a node cache
//
// A naive lock-free linked-list queue allocates one node per Push and
// frees one node per Pop, putting the Go allocator and garbage collector
// on the hot path of every element that flows through the queue. This
// package instead keeps every node a Pop releases on the same physical
// chain, repurposed as a producer-only free-node cache (see the field
// comments on Queue for the exact node-graph layout).
// Once the cache holds as many nodes as the consumer is keeping ahead of
// the producer, Push stops calling its Allocator at all:
//
//	q := lockfree.New[Event](lockfree.WithCachePrewarm[Event](1024))
//
//	// 1024 pushes now perform zero allocations, provided the consumer
//	// has not yet popped anything (the cache starts pre-warmed rather
//	// than built up from steady-state traffic).
//
// # Producer/Consumer roles
//
// Exactly one goroutine may call Push/PushSlice at a time, and exactly
// one goroutine may call Pop/Front/Empty/Clear/ConsumeAll at a time. The
// two roles may be different goroutines, and either role may be handed
// off to a new goroutine, but the handoff itself must be synchronized
// externally (a channel send/receive, a WaitGroup, or similar) — the
// queue provides no fence of its own for a role handoff. Use AsProducer
// and AsConsumer to hand out a narrowed interface that statically
// prevents a goroutine from calling the other role's methods:
//
//	q := lockfree.New[Job]()
//	go runProducer(q.AsProducer())
//	go runConsumer(q.AsConsumer())
//
// # Atomic publication of a batch
//
// PushSlice enqueues a whole slice as one release store: the consumer
// either sees none of it, or — from the moment any element of it becomes
// visible — sees every element reachable without further producer
// action.
//
//	batch := []Event{e0, e1, e2}
//	if err := q.PushSlice(batch); err != nil {
//	    // the queue's contents are unchanged; every staged node has
//	    // already been returned to the Allocator
//	}
//
// # Allocator
//
// Push, PushSlice, and the one sentinel node New allocates all go through
// an Allocator[T], an out-of-scope collaborator this package depends on
// but does not itself implement beyond two simple defaults:
//
//	HeapAllocator[T]  - the default: new(Node[T]) per Allocate, a no-op
//	                    Deallocate (the Go GC reclaims the rest)
//	PoolAllocator[T]  - backed by a sync.Pool, for amortizing allocation
//	                    across the lifetimes of many short-lived queues
//
// Install a custom one with WithAllocator.
//
// # Diagnostics
//
// Stats reports cumulative Allocate/Deallocate call counts when the
// queue is built with WithStats; this is how the "no steady-state
// allocation" claim above is actually verified in this package's own
// tests, and is available to callers who want the same assurance in
// production.
//
// # Memory model
//
// Exactly two fields are ever accessed atomically: each node's next
// pointer, and the queue's internal beforeHead pointer. The producer
// publishes a new node with a release store to the previous tail's next;
// the consumer observes it with an acquire load of beforeHead.next, and
// releases a drained node for producer reuse with a release store to
// beforeHead; the producer periodically re-synchronizes with an acquire
// load of beforeHead when its free-node cache runs dry. The comments on
// Queue's fields and on its producer and consumer methods state which
// load pairs with which store.
//
// # Thread safety
//
// Push/PushSlice: single producer goroutine only. Pop/Front/Empty/Clear/
// ConsumeAll: single consumer goroutine only. Violating either
// constraint is undefined behavior, not a checked error — this package
// has no multi-producer or multi-consumer variant.
//
// # Race detection
//
// Go's race detector tracks explicit synchronization primitives and the
// happens-before edges established by a single atomic variable's own
// acquire/release pair. This package's two atomic fields (node.next and
// Queue.beforeHead) are each accessed with a consistent acquire/release
// discipline at every call site, so ordinary `go test -race` runs of
// this package's concurrent tests are expected to be clean — unlike a
// FAA/CAS ring-buffer queue that derives ordering guarantees from the
// relationship between two separate atomic variables, which is exactly
// the pattern the race detector cannot always model (see DESIGN.md for
// why this algorithm avoids that shape entirely).
package lockfree
