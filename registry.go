package sigstream

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

// feedDepth buffers signal occurrences between the source and the bridge so
// rapid-fire deliveries are not dropped while a broadcast is in flight.
const feedDepth = 16

// producer is the sending half of one subscription's mailbox. Each producer
// carries a unique token so removal can target exactly one entry among
// otherwise indistinguishable channels.
type producer struct {
	id uint64
	ch chan struct{}
}

// slot is the per-signal record: the subscribers to fan out to, whether the
// OS-level handler has been installed yet, and the disposition that
// installation displaced.
type slot struct {
	mu        sync.Mutex
	installed bool
	prev      Prev
	subs      []*producer
}

// Registry owns the signal slot table and the bridge goroutines that fan a
// physical signal occurrence out to every subscriber of that signal. The
// table itself is fixed at construction; only the slots' contents change, so
// mapping a signal to its slot needs no lock.
//
// Most callers use the package-level Default registry. Separate instances
// exist for tests and for embedding with a custom Source.
type Registry struct {
	source     Source
	logf       LoggerFunc
	debug      bool
	mailboxCap int

	nextID atomic.Uint64
	slots  [numSlots]slot
}

// New constructs a Registry backed by the platform's real signal source
// unless WithSource overrides it.
func New(opts ...Option) *Registry {
	r := &Registry{
		source:     newOSSource(),
		logf:       func(string, ...any) {},
		mailboxCap: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Subscribe registers interest in sig and returns a handle owning the
// receiving end of a fresh mailbox. The OS-level handler for sig is
// installed on first subscription and stays installed for the life of the
// process; closing the handle removes only this subscriber.
//
// Returns ErrInvalidSignal if sig has no slot on this platform, or an error
// wrapping ErrRegistrationFailed if the OS rejected installation. A failed
// installation is not cached; a later Subscribe retries it.
func (r *Registry) Subscribe(sig os.Signal) (*Subscription, error) {
	idx, err := slotIndex(sig)
	if err != nil {
		return nil, err
	}
	if err := r.enable(sig, idx); err != nil {
		return nil, err
	}

	p := &producer{
		id: r.nextID.Add(1),
		ch: make(chan struct{}, r.mailboxCap),
	}
	s := &r.slots[idx]
	s.mu.Lock()
	s.subs = append(s.subs, p)
	s.mu.Unlock()

	if r.debug {
		r.logf("sigstream: subscribe id=%d sig=%s", p.id, sigName(sig))
	}
	return &Subscription{r: r, sig: sig, slot: idx, id: p.id, ch: p.ch}, nil
}

// enable performs the one-time OS-level installation for a slot. Concurrent
// first subscriptions serialize on the slot lock; the displaced disposition
// is recorded in the same critical section that marks the slot installed, so
// no window exists where the slot is installed but prev is unrecorded.
func (r *Registry) enable(sig os.Signal, idx int) error {
	s := &r.slots[idx]
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.installed {
		return nil
	}

	feed := make(chan os.Signal, feedDepth)
	prev, err := r.source.Install(feed, sig)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}
	s.prev = prev
	s.installed = true
	go r.forward(sig, s, feed)

	if r.debug {
		r.logf("sigstream: installed handler for %s (prev=%s)", sigName(sig), prev.Kind)
	}
	return nil
}

// forward is the bridge between one slot's feed and its subscribers. Each
// occurrence is pushed to every registered mailbox with a non-blocking send:
// a full mailbox coalesces, a closed one is unreachable because producers
// are only closed after removal under the same lock. After the broadcast the
// occurrence is forwarded to a previously-installed handler, if one was
// captured, so taking over a signal stays transparent to earlier claimants.
func (r *Registry) forward(sig os.Signal, s *slot, feed <-chan os.Signal) {
	for got := range feed {
		s.mu.Lock()
		for _, p := range s.subs {
			select {
			case p.ch <- struct{}{}:
			default:
			}
		}
		n := len(s.subs)
		prev := s.prev
		s.mu.Unlock()

		if prev.Kind == PrevHandler && prev.Fn != nil {
			prev.Fn(got)
		}
		if r.debug {
			r.logf("sigstream: delivered %s to %d subscribers", sigName(sig), n)
		}
	}
}

// remove deletes exactly the producer identified by id from a slot and
// closes its mailbox. Closing under the slot lock is safe: the bridge only
// sends while holding the same lock.
func (r *Registry) remove(idx int, id uint64, ch chan struct{}) {
	s := &r.slots[idx]
	s.mu.Lock()
	for i, p := range s.subs {
		if p.id == id {
			copy(s.subs[i:], s.subs[i+1:])
			s.subs[len(s.subs)-1] = nil
			s.subs = s.subs[:len(s.subs)-1]
			break
		}
	}
	close(ch)
	s.mu.Unlock()

	if r.debug {
		r.logf("sigstream: unsubscribe id=%d", id)
	}
}
