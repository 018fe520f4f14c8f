package lockfree

// noCopy lets go vet's -copylocks check flag accidental copies of Queue.
// Copying a Queue would duplicate the atomic beforeHead pointer without
// duplicating the chain it points into, silently producing two queues
// that alias the same nodes — undefined by this package's SPSC contract
// the same way copying is deleted outright in the C++ original.
//
// See sync.WaitGroup and similar standard library types for the same
// convention: a zero-size field with Lock/Unlock methods so `go vet`
// recognizes it as a lock-like, non-copyable value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
