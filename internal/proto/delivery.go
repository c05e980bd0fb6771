package proto

// DispositionState is the closed set of terminal delivery outcomes.
// spec.md §9 flags a variant that collapses all four into a single
// "on_accepted" call; this repo keeps them distinct throughout.
type DispositionState int

const (
	StateNone DispositionState = iota
	StateAccepted
	StateRejected
	StateReleased
	StateModified
)

func (s DispositionState) String() string {
	switch s {
	case StateAccepted:
		return "ACCEPTED"
	case StateRejected:
		return "REJECTED"
	case StateReleased:
		return "RELEASED"
	case StateModified:
		return "MODIFIED"
	default:
		return "NONE"
	}
}

// Delivery represents one transfer on a link.
type Delivery struct {
	Tag []byte
	Link *Link

	// Pending is the number of unread bytes for an incoming delivery.
	Pending int
	// Readable is true once the full transfer has arrived.
	Readable bool
	// Partial is always false: this engine does not fragment transfers
	// across frames (each performTransfer carries a whole message).
	Partial bool

	LocalState  DispositionState
	RemoteState DispositionState
	Settled     bool
	// Updated is true when RemoteState/Settled last changed as a result
	// of a peer disposition, since the handler last observed it.
	Updated bool

	// Context is the optional per-delivery handler, attached by
	// MessagingContext.Sender.SendMsg.
	Context any

	payload []byte
	// autoSettled guards OutgoingMessageHandler's at-most-once
	// auto-settle side effect (spec.md §4.8 / testable property 3).
	autoSettled bool
}

// AutoSettled reports whether this delivery has already been marked
// settled by an OutgoingMessageHandler's auto-settle step.
func (d *Delivery) AutoSettled() bool { return d.autoSettled }

// MarkAutoSettled records that auto-settle has run for this delivery.
func (d *Delivery) MarkAutoSettled() { d.autoSettled = true }

// Update sets the delivery's local disposition state and queues a
// disposition performative to the peer.
func (d *Delivery) Update(state DispositionState) {
	d.LocalState = state
	d.Link.sendDisposition(d, false)
}

// Settle marks the delivery settled locally and notifies the peer.
func (d *Delivery) Settle() {
	d.Settled = true
	d.Link.sendDisposition(d, true)
}
