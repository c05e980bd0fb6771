package reactor

import (
	stderrors "errors"

	"github.com/nimbusmq/reactor/internal/proto"
)

// IncomingMessageHandler decodes a receiver's readable deliveries into
// messages, calls OnMessageFunc, and applies the resulting disposition:
// an error satisfying errors.As(err, *Reject) always wins and rejects
// the delivery regardless of DisableAutoAccept (spec.md §4.9, scenario
// S4); otherwise, unless DisableAutoAccept, the delivery is accepted.
// Once a delivery that already finished reading is merely updated and
// settled (a late disposition echo), OnSettledFunc fires instead.
type IncomingMessageHandler struct {
	OnMessageFunc func(ev proto.Event) error
	OnSettledFunc func(ev proto.Event)

	// DisableAutoAccept opts out of automatic ACCEPTED disposition; the
	// default behaves like Python's auto_accept() returning true.
	DisableAutoAccept bool
}

func (h *IncomingMessageHandler) OnDelivery(ev proto.Event) {
	d := ev.Delivery
	if d == nil || d.Link == nil || !d.Link.IsReceiver {
		return
	}

	if d.Readable && !d.Partial {
		b := d.Link.Recv(d.Pending)
		var msg proto.Message
		_ = msg.Decode(b)
		d.Link.Advance()
		ev.Message = &msg

		var err error
		if h.OnMessageFunc != nil {
			err = h.OnMessageFunc(ev)
		}

		var rej *Reject
		switch {
		case stderrors.As(err, &rej):
			d.Update(proto.StateRejected)
			d.Settle()
		case !h.DisableAutoAccept:
			d.Update(proto.StateAccepted)
			d.Settle()
		}
		return
	}

	if d.Updated && d.Settled && h.OnSettledFunc != nil {
		h.OnSettledFunc(ev)
	}
}

func (h *IncomingMessageHandler) Dispatch(ev proto.Event) { Dispatch(h, ev) }

// Accept, Reject, Release, and Settle are the explicit disposition
// helpers spec.md §4.9 names, for use outside an IncomingMessageHandler
// (e.g. a user's own scoped handler deciding disposition directly).

// Accept settles d as ACCEPTED.
func Accept(d *proto.Delivery) {
	d.Update(proto.StateAccepted)
	d.Settle()
}

// RejectDelivery settles d as REJECTED.
func RejectDelivery(d *proto.Delivery) {
	d.Update(proto.StateRejected)
	d.Settle()
}

// Release settles d as MODIFIED if delivered is true (the peer is known
// to have processed it at least partially), RELEASED otherwise.
func Release(d *proto.Delivery, delivered bool) {
	if delivered {
		d.Update(proto.StateModified)
	} else {
		d.Update(proto.StateReleased)
	}
	d.Settle()
}

// Settle settles d, optionally updating its disposition state first.
func Settle(d *proto.Delivery, state proto.DispositionState) {
	if state != proto.StateNone {
		d.Update(state)
	}
	d.Settle()
}
