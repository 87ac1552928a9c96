package sigstream

// LoggerFunc receives debug log lines when debug logging is enabled.
type LoggerFunc func(format string, args ...any)

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithSource replaces the OS registration backend. Intended for tests and
// for embedding into an existing signal dispatch layer.
func WithSource(src Source) Option {
	return func(r *Registry) { r.source = src }
}

// WithLogger sets the debug logger.
func WithLogger(l LoggerFunc) Option {
	return func(r *Registry) { r.logf = l }
}

// WithDebug toggles debug logging.
func WithDebug(enabled bool) Option {
	return func(r *Registry) { r.debug = enabled }
}

// WithMailboxCapacity sets the buffer depth of each subscription's mailbox.
// The default of 1 coalesces rapid-fire occurrences into a single pending
// notification; raise it to observe every occurrence individually.
func WithMailboxCapacity(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.mailboxCap = n
		}
	}
}
