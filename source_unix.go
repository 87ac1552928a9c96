//go:build !windows

package sigstream

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// numSlots matches the runtime's Unix signal table (signal numbers 1..64).
const numSlots = 65

// slotIndex maps a signal to its slot in the registry table. Only concrete
// signal numbers within the table are representable.
func slotIndex(sig os.Signal) (int, error) {
	n, ok := sig.(syscall.Signal)
	if !ok || n <= 0 || int(n) >= numSlots {
		return 0, ErrInvalidSignal
	}
	return int(n), nil
}

// sigName renders a signal for debug logs, preferring the canonical name.
func sigName(sig os.Signal) string {
	if n, ok := sig.(syscall.Signal); ok {
		if name := unix.SignalName(n); name != "" {
			return name
		}
	}
	return sig.String()
}

// osSource is the production Source. It delegates registration to
// os/signal, so the runtime's handler stays the single function installed
// with the kernel; the runtime already forwards to handlers that were
// installed before the process started using this library. The prior
// disposition visible at this level is whether the signal was ignored.
type osSource struct{}

func (osSource) Install(ch chan<- os.Signal, sig os.Signal) (Prev, error) {
	prev := Prev{Kind: PrevDefault}
	if signal.Ignored(sig) {
		prev = Prev{Kind: PrevIgnore}
	}
	signal.Notify(ch, sig)
	return prev, nil
}

func newOSSource() Source { return osSource{} }

// interruptSignal is the canonical "interrupt requested" signal.
var interruptSignal os.Signal = syscall.SIGINT
