package sigstream

import "os"

// Source abstracts OS-level signal registration. The production source is
// platform-specific (os/signal on Unix, a console control handler on
// Windows); tests inject fakes to observe installation counts and to
// simulate previously-installed handlers.
type Source interface {
	// Install arranges for every future occurrence of sig to be sent to ch
	// with a non-blocking send, and reports the disposition that was in
	// effect before installation. The returned Prev must describe the state
	// captured at the moment of installation. Install is called at most once
	// per signal per registry unless it returns an error.
	Install(ch chan<- os.Signal, sig os.Signal) (Prev, error)
}

// PrevKind classifies what was installed for a signal before this library
// took it over.
type PrevKind uint8

const (
	// PrevNone means no prior disposition is tracked for the platform (the
	// OS chains multiple handlers itself, as with console control handlers).
	PrevNone PrevKind = iota
	// PrevDefault means the default action was in effect.
	PrevDefault
	// PrevIgnore means the signal was explicitly ignored.
	PrevIgnore
	// PrevHandler means a handler was installed; Fn invokes it.
	PrevHandler
)

// Prev describes the handler that was active for a signal before
// installation. After broadcasting an occurrence to all subscribers, the
// bridge forwards the signal to Fn when Kind is PrevHandler; default and
// ignore dispositions are never forwarded.
type Prev struct {
	Kind PrevKind
	Fn   func(os.Signal)
}

func (k PrevKind) String() string {
	switch k {
	case PrevNone:
		return "none"
	case PrevDefault:
		return "default"
	case PrevIgnore:
		return "ignore"
	case PrevHandler:
		return "handler"
	default:
		return "unknown"
	}
}
