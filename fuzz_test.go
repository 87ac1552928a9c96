package sigstream

import (
	"os"
	"testing"
)

// FuzzSubscriptionLifecycle exercises permutations of subscribe, close,
// deliver, and receive operations to shake out panics, deadlocks, and bad
// slot-list state. It never touches real OS signals.
func FuzzSubscriptionLifecycle(f *testing.F) {
	f.Add([]byte{0, 2, 3, 1, 0, 0, 2, 1, 1, 3})
	f.Add([]byte{0, 0, 0, 2, 2, 2, 1, 1, 1, 3})
	f.Add([]byte{2, 1, 3, 0, 2, 0, 1, 2, 3, 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		src := newFakeSource()
		r := New(WithSource(src), WithMailboxCapacity(2))

		const maxOps = 256
		var subs []*Subscription
		defer func() {
			for _, s := range subs {
				s.Close()
			}
		}()

		for i := 0; i < len(data) && i < maxOps; i++ {
			switch data[i] % 4 {
			case 0: // subscribe
				sub, err := r.Subscribe(os.Interrupt)
				if err != nil {
					t.Fatalf("subscribe: %v", err)
				}
				subs = append(subs, sub)
			case 1: // close one (possibly already closed)
				if len(subs) > 0 {
					idx := int(data[i]) % len(subs)
					subs[idx].Close()
					subs = append(subs[:idx], subs[idx+1:]...)
				}
			case 2: // deliver an occurrence
				src.deliver(os.Interrupt)
			case 3: // drain without blocking
				for _, s := range subs {
					s.TryReceive()
				}
			}
		}
	})
}
