package lockfree

import "errors"

// ErrClosed is returned by Push and PushSlice once Close has been called
// on the queue. Unlike a bounded queue's would-block condition this is
// not a "try again" signal — a closed queue never becomes push-able
// again — so it is a plain sentinel error rather than a retryable one.
var ErrClosed = errors.New("lockfree: queue closed")
