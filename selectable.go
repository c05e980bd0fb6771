package reactor

// Selectable is the uniform readiness surface every reactor participant
// implements: a socket adapter, an acceptor, or an event injector. The
// reactor calls Reading/Writing/Closed before every poll — they must be
// pure and cheap — and calls Readable/Writable only after the OS (or, in
// tests, a fake) has reported the corresponding readiness. Once Closed
// reports true the reactor removes the participant and calls Removed
// exactly once. Mirrors spec.md §4.1.
type Selectable interface {
	// Fd returns the OS file descriptor this participant polls on.
	Fd() int
	// Reading reports whether the reactor should include Fd in the read
	// set on the next poll.
	Reading() bool
	// Writing reports whether the reactor should include Fd in the write
	// set on the next poll.
	Writing() bool
	// Closed reports whether this participant is done and safe to
	// remove. Once true it stays true.
	Closed() bool
	// Readable is invoked when Fd is ready for reading.
	Readable()
	// Writable is invoked when Fd is ready for writing.
	Writable()
	// Removed is invoked exactly once, after Closed first reports true
	// and the reactor has dropped this participant from its poll set.
	Removed()
}
