package lockfree_test

import (
	"errors"
	"testing"

	"github.com/michaelpesa/lockfree"
)

// TestQueueCloseBalancesAllocations is the distilled spec's "No leaks"
// end-to-end scenario: however many distinct nodes a Queue ever allocated
// across its lifetime — including recycled-and-reused ones, which are
// allocated only once — Close must deallocate every single one of them
// exactly once.
func TestQueueCloseBalancesAllocations(t *testing.T) {
	q := lockfree.New[int](lockfree.WithStats[int]())

	for i := 0; i < 64; i++ {
		_ = q.Push(i)
	}
	for i := 0; i < 40; i++ {
		q.Pop()
	}
	for i := 64; i < 96; i++ {
		_ = q.Push(i)
	}
	// Leave the rest (56 live elements plus whatever sits cached) for
	// Close to walk through.

	q.Close()

	s := q.Stats()
	if s.Allocations != s.Deallocations {
		t.Fatalf("after Close: Allocations=%d Deallocations=%d, want equal", s.Allocations, s.Deallocations)
	}
	if s.Allocations == 0 {
		t.Fatalf("Allocations=0, want at least the sentinel node")
	}
}

// TestQueueCloseIdempotent verifies a second Close is a silent no-op
// rather than double-deallocating anything.
func TestQueueCloseIdempotent(t *testing.T) {
	q := lockfree.New[int](lockfree.WithStats[int]())
	_ = q.Push(1)
	_ = q.Push(2)
	q.Pop()

	q.Close()
	first := q.Stats()

	q.Close()
	second := q.Stats()

	if first != second {
		t.Fatalf("second Close changed Stats: before=%+v after=%+v", first, second)
	}
}

// TestQueuePushAfterCloseIsRejected verifies Push and PushSlice fail with
// ErrClosed once Close has run, rather than touching the now-torn-down
// chain.
func TestQueuePushAfterCloseIsRejected(t *testing.T) {
	q := lockfree.New[int]()
	_ = q.Push(1)
	q.Close()

	if err := q.Push(2); !errors.Is(err, lockfree.ErrClosed) {
		t.Fatalf("Push after Close: got err=%v, want ErrClosed", err)
	}
	if err := q.PushSlice([]int{1, 2}); !errors.Is(err, lockfree.ErrClosed) {
		t.Fatalf("PushSlice after Close: got err=%v, want ErrClosed", err)
	}
}

// TestQueueClosePoolAllocator exercises Close against a PoolAllocator,
// confirming every node handed out by Allocate across the queue's whole
// lifetime is returned via Deallocate — the scenario PoolAllocator exists
// for (bounding memory across many short-lived queues).
func TestQueueClosePoolAllocator(t *testing.T) {
	pool := lockfree.NewPoolAllocator[string]()
	q := lockfree.New[string](lockfree.WithAllocator[string](pool), lockfree.WithStats[string]())

	for _, v := range []string{"a", "b", "c", "d"} {
		_ = q.Push(v)
	}
	q.Pop()
	q.Pop()

	q.Close()

	s := q.Stats()
	if s.Allocations != s.Deallocations {
		t.Fatalf("after Close: Allocations=%d Deallocations=%d, want equal", s.Allocations, s.Deallocations)
	}
}
