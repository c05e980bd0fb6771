// Package proto is a minimal stand-in for the AMQP 1.0 protocol engine
// that the reactor drives. It implements just enough of the endpoint
// lifecycle, link/delivery bookkeeping, and transfer/disposition
// exchange to exercise the reactor faithfully; it does not implement
// the real AMQP 1.0 binary type system or wire codec (see SPEC_FULL.md).
package proto

// State is a bitmask over an endpoint's independent local and remote
// halves. Exactly one bit from {LocalUninit, LocalActive, LocalClosed}
// and one from {RemoteUninit, RemoteActive, RemoteClosed} is set at
// any time.
type State uint8

const (
	LocalUninit State = 1 << iota
	LocalActive
	LocalClosed
	RemoteUninit
	RemoteActive
	RemoteClosed
)

const (
	localMask  = LocalUninit | LocalActive | LocalClosed
	remoteMask = RemoteUninit | RemoteActive | RemoteClosed
)

func (s State) String() string {
	var local, remote string
	switch {
	case s&LocalUninit != 0:
		local = "UNINIT"
	case s&LocalActive != 0:
		local = "ACTIVE"
	case s&LocalClosed != 0:
		local = "CLOSED"
	}
	switch {
	case s&RemoteUninit != 0:
		remote = "UNINIT"
	case s&RemoteActive != 0:
		remote = "ACTIVE"
	case s&RemoteClosed != 0:
		remote = "CLOSED"
	}
	return "local=" + local + " remote=" + remote
}

// Endpoint holds the common state every connection, session, and link
// shares: its half-states and a user-attachable Context consumed by the
// scoped dispatcher.
type Endpoint struct {
	State State

	// Context is arbitrary per-entity user data; the scoped dispatcher
	// looks for handler methods on it. Side-table by reference, not by
	// engine-assigned identifier, since each endpoint already has a
	// stable Go pointer identity for the lifetime of the process.
	Context any

	// RemoteCondition carries the peer's close/detach error, if any.
	RemoteCondition error
}

func newEndpoint() Endpoint {
	return Endpoint{State: LocalUninit | RemoteUninit}
}

func (e *Endpoint) openLocal() {
	e.State = (e.State &^ localMask) | LocalActive
}

func (e *Endpoint) closeLocal() {
	e.State = (e.State &^ localMask) | LocalClosed
}

func (e *Endpoint) openRemote() {
	e.State = (e.State &^ remoteMask) | RemoteActive
}

func (e *Endpoint) closeRemote(cond error) {
	e.State = (e.State &^ remoteMask) | RemoteClosed
	e.RemoteCondition = cond
}

// ClosedCleanly reports whether both halves have reached CLOSED.
func (e *Endpoint) ClosedCleanly() bool {
	return e.State&LocalClosed != 0 && e.State&RemoteClosed != 0
}
