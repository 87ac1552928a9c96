// Package sigstream bridges asynchronous operating system signals into
// per-subscriber notification streams. Any number of goroutines can
// independently subscribe to the same signal; every occurrence delivered to
// the process is fanned out to each live subscription's mailbox, and closing
// one subscription never disturbs the others.
//
// On Unix platforms any concrete signal number can be subscribed to. On
// Windows the representable events are the console control events Ctrl+C
// (os.Interrupt) and Ctrl+Break (Break).
//
// Print each interrupt as it arrives:
//
//	sub := sigstream.CtrlC()
//	defer sub.Close()
//	for range sub.C() {
//		fmt.Println("interrupt received")
//	}
//
// Handlers installed before this library takes a signal over are preserved:
// installation captures the prior disposition and forwards each occurrence
// to it after the subscriber broadcast.
package sigstream

import (
	"fmt"
	"os"
	"sync"
)

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry backed by the platform's real
// signal source. It is constructed on first use and intentionally never torn
// down: OS-level signal handlers cannot be uninstalled safely mid-process,
// so enabled slots stay enabled for the process lifetime.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = New()
	})
	return defaultReg
}

// Subscribe registers interest in sig on the Default registry. See
// Registry.Subscribe.
func Subscribe(sig os.Signal) (*Subscription, error) {
	return Default().Subscribe(sig)
}

// CtrlC subscribes to the platform's canonical interrupt request (SIGINT on
// Unix, CTRL_C_EVENT on Windows) on the Default registry. It panics if
// registration fails, which is not expected in any normal hosting
// environment.
func CtrlC() *Subscription {
	sub, err := Subscribe(interruptSignal)
	if err != nil {
		panic(fmt.Sprintf("sigstream: subscribing to interrupt: %v", err))
	}
	return sub
}
