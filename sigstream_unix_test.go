//go:build !windows

package sigstream

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func sendSelf(t *testing.T, sig os.Signal) {
	t.Helper()
	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Signal(sig); err != nil {
		t.Fatal(err)
	}
}

func mustReceive(t *testing.T, sub *Subscription) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := sub.Receive(ctx); err != nil {
		t.Fatalf("receive: %v", err)
	}
}

func TestInterruptThreeTimes_Unix(t *testing.T) {
	sub, err := Subscribe(os.Interrupt)
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Close()

	for i := 0; i < 3; i++ {
		sendSelf(t, os.Interrupt)
		mustReceive(t, sub)
	}
	if sub.TryReceive() {
		t.Fatal("unexpected extra notification after three occurrences")
	}
}

func TestTwoSubscribersIndependentCounts_Unix(t *testing.T) {
	a, err := Subscribe(syscall.SIGUSR1)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	b, err := Subscribe(syscall.SIGUSR1)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	// One subscriber takes three notifications, the other four, across four
	// deliveries. Each receipt is acknowledged so deliveries never outrun a
	// coalescing mailbox.
	acks := make(chan string, 8)
	go func() {
		for i := 0; i < 3; i++ {
			if a.Receive(context.Background()) != nil {
				return
			}
			acks <- "a"
		}
	}()
	go func() {
		for i := 0; i < 4; i++ {
			if b.Receive(context.Background()) != nil {
				return
			}
			acks <- "b"
		}
	}()

	counts := map[string]int{}
	for i := 0; i < 4; i++ {
		sendSelf(t, syscall.SIGUSR1)
		expect := 2
		if i == 3 {
			expect = 1 // the take-3 subscriber is done
		}
		for j := 0; j < expect; j++ {
			select {
			case who := <-acks:
				counts[who]++
			case <-time.After(2 * time.Second):
				t.Fatalf("delivery %d: missing acknowledgement %d (counts=%v)", i+1, j+1, counts)
			}
		}
	}

	if counts["a"] != 3 || counts["b"] != 4 {
		t.Fatalf("expected a=3 b=4, got %v", counts)
	}
}

func TestDropOneOfTwoSubscribers_Unix(t *testing.T) {
	keep, err := Subscribe(syscall.SIGUSR2)
	if err != nil {
		t.Fatal(err)
	}
	defer keep.Close()
	drop, err := Subscribe(syscall.SIGUSR2)
	if err != nil {
		t.Fatal(err)
	}
	drop.Close()

	sendSelf(t, syscall.SIGUSR2)
	mustReceive(t, keep)

	select {
	case _, ok := <-drop.C():
		if ok {
			t.Fatal("closed subscription received a notification")
		}
	default:
		t.Fatal("closed subscription mailbox should be closed")
	}
}

func TestSubscribeOutOfRange_Unix(t *testing.T) {
	for _, sig := range []syscall.Signal{0, -1, 65, 1024} {
		if _, err := Subscribe(sig); !errors.Is(err, ErrInvalidSignal) {
			t.Fatalf("signal %d: expected ErrInvalidSignal, got %v", sig, err)
		}
	}
}

func TestPreviousIgnoreDispositionCaptured_Unix(t *testing.T) {
	signal.Ignore(syscall.SIGWINCH)

	r := New()
	sub, err := r.Subscribe(syscall.SIGWINCH)
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Close()

	idx, err := slotIndex(syscall.SIGWINCH)
	if err != nil {
		t.Fatal(err)
	}
	s := &r.slots[idx]
	s.mu.Lock()
	kind := s.prev.Kind
	s.mu.Unlock()
	if kind != PrevIgnore {
		t.Fatalf("expected captured disposition %v, got %v", PrevIgnore, kind)
	}
}

func TestSignalNames_Unix(t *testing.T) {
	if got := sigName(unix.SIGUSR1); got != "SIGUSR1" {
		t.Fatalf("expected SIGUSR1, got %q", got)
	}
	if got := sigName(bogusSignal{}); got != "bogus" {
		t.Fatalf("expected bogus, got %q", got)
	}
}
