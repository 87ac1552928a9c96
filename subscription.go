package sigstream

import (
	"context"
	"os"
	"sync"
)

// Subscription is one independent registration for notifications of a single
// signal. Any number of subscriptions may exist for the same signal; each
// observes every occurrence. A notification carries no payload: receiving
// one means the signal was delivered at least once since the previous
// receive (at the default mailbox capacity of 1, bursts coalesce).
type Subscription struct {
	r    *Registry
	sig  os.Signal
	slot int
	id   uint64
	ch   chan struct{}
	once sync.Once
}

// C returns the mailbox. Ranging over it consumes notifications forever;
// the range terminates only when the subscription is closed.
func (s *Subscription) C() <-chan struct{} { return s.ch }

// Signal reports the signal this subscription is registered for.
func (s *Subscription) Signal() os.Signal { return s.sig }

// Receive blocks until the next notification. It returns nil on a
// notification, ErrClosed if the subscription has been closed, or ctx.Err()
// if the context ends first.
func (s *Subscription) Receive(ctx context.Context) error {
	select {
	case _, ok := <-s.ch:
		if !ok {
			return ErrClosed
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryReceive consumes one pending notification without blocking. It reports
// false when none is pending or the subscription is closed.
func (s *Subscription) TryReceive() bool {
	select {
	case _, ok := <-s.ch:
		return ok
	default:
		return false
	}
}

// Close removes this subscription from its slot, leaving every other
// subscription to the same signal intact, and closes the mailbox. It is
// idempotent and safe to call concurrently with signal delivery. Closing is
// the only cancellation mechanism; a closed subscription cannot be
// restarted, only replaced by subscribing again.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.r.remove(s.slot, s.id, s.ch)
	})
}
