package reactor

import "github.com/nimbusmq/reactor/internal/proto"

// OutgoingMessageHandler tracks a sender's deliveries to terminal
// disposition: it calls exactly one of OnAccepted/OnRejected/OnReleased/
// OnModified when the remote disposition settles on one of those four
// states, calls OnSettled once the peer has settled, and then (unless
// DisableAutoSettle) settles the delivery locally at most once (spec.md
// §4.8; testable property 3, at-most-once auto-settle). spec.md §9
// flags a variant that collapses all four outcomes into on_accepted —
// not reproduced here; see DESIGN.md.
type OutgoingMessageHandler struct {
	OnAcceptedFunc func(proto.Event)
	OnRejectedFunc func(proto.Event)
	OnReleasedFunc func(proto.Event)
	OnModifiedFunc func(proto.Event)
	OnSettledFunc  func(proto.Event)

	// DisableAutoSettle opts out of automatic local settlement; the
	// default behaves like Python's auto_settle() returning true.
	DisableAutoSettle bool
}

func (h *OutgoingMessageHandler) OnDelivery(ev proto.Event) {
	d := ev.Delivery
	if d == nil || d.Link == nil || d.Link.IsReceiver {
		return
	}
	if !d.Updated || d.AutoSettled() {
		return
	}

	switch d.RemoteState {
	case proto.StateAccepted:
		if h.OnAcceptedFunc != nil {
			h.OnAcceptedFunc(ev)
		}
	case proto.StateRejected:
		if h.OnRejectedFunc != nil {
			h.OnRejectedFunc(ev)
		}
	case proto.StateReleased:
		if h.OnReleasedFunc != nil {
			h.OnReleasedFunc(ev)
		}
	case proto.StateModified:
		if h.OnModifiedFunc != nil {
			h.OnModifiedFunc(ev)
		}
	}

	if d.Settled && h.OnSettledFunc != nil {
		h.OnSettledFunc(ev)
	}

	if !h.DisableAutoSettle {
		d.MarkAutoSettled()
		d.Settle()
	}
}

func (h *OutgoingMessageHandler) Dispatch(ev proto.Event) { Dispatch(h, ev) }
