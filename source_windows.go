//go:build windows

package sigstream

import (
	"fmt"
	"os"
	"sync"
	"syscall"

	"golang.org/x/sys/windows"
)

// Windows exposes console control events rather than POSIX signals. Only
// CTRL_C_EVENT and CTRL_BREAK_EVENT are representable.
const numSlots = 2

const (
	ctrlCSlot     = 0
	ctrlBreakSlot = 1
)

// Break identifies the console CTRL_BREAK event. The value matches the C
// runtime's SIGBREAK.
var Break os.Signal = syscall.Signal(21)

func slotIndex(sig os.Signal) (int, error) {
	switch sig {
	case os.Interrupt:
		return ctrlCSlot, nil
	case Break:
		return ctrlBreakSlot, nil
	}
	return 0, ErrInvalidSignal
}

func sigName(sig os.Signal) string {
	switch sig {
	case os.Interrupt:
		return "CTRL_C_EVENT"
	case Break:
		return "CTRL_BREAK_EVENT"
	}
	return sig.String()
}

// consoleSource is the production Source. A single console control handler
// is registered once per process via SetConsoleCtrlHandler; it dispatches
// recognized events to every channel installed for the matching slot.
// Windows chains multiple console handlers itself, so no previous-handler
// capture is needed: unrecognized events are reported as unhandled and the
// OS passes them to the next handler in its chain.
type consoleSource struct{}

var (
	consoleOnce sync.Once
	consoleErr  error

	consoleMu    sync.Mutex
	consoleChans [numSlots][]chan<- os.Signal
)

// consoleHandler runs on an OS-provided thread at arbitrary points. It only
// performs a bounded list walk with non-blocking sends.
func consoleHandler(ctrlType uint32) uintptr {
	var idx int
	var sig os.Signal
	switch ctrlType {
	case windows.CTRL_C_EVENT:
		idx, sig = ctrlCSlot, os.Interrupt
	case windows.CTRL_BREAK_EVENT:
		idx, sig = ctrlBreakSlot, Break
	default:
		return 0 // not handled; let the OS try the next handler
	}
	consoleMu.Lock()
	for _, ch := range consoleChans[idx] {
		select {
		case ch <- sig:
		default:
		}
	}
	consoleMu.Unlock()
	return 1
}

func (consoleSource) Install(ch chan<- os.Signal, sig os.Signal) (Prev, error) {
	idx, err := slotIndex(sig)
	if err != nil {
		return Prev{}, err
	}
	consoleOnce.Do(func() {
		consoleErr = windows.SetConsoleCtrlHandler(windows.NewCallback(consoleHandler), true)
	})
	if consoleErr != nil {
		// Global console dispatch is the library's entire purpose on this
		// platform; there is no degraded mode.
		panic(fmt.Sprintf("sigstream: SetConsoleCtrlHandler failed: %v", consoleErr))
	}
	consoleMu.Lock()
	consoleChans[idx] = append(consoleChans[idx], ch)
	consoleMu.Unlock()
	return Prev{Kind: PrevNone}, nil
}

func newOSSource() Source { return consoleSource{} }

var interruptSignal os.Signal = os.Interrupt
