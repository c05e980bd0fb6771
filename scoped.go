package reactor

import "github.com/nimbusmq/reactor/internal/proto"

// ScopedDispatcher routes an event through the per-entity Context
// attached to each domain object in the event's chain, finest scope
// first: delivery, link, session, connection (spec.md §4.5, testable
// property 8). It is itself a Handler so it can sit directly in an
// EventSource's global chain alongside behavioral handlers like
// Handshaker and FlowController.
type ScopedDispatcher struct{}

func (ScopedDispatcher) Dispatch(ev proto.Event) {
	if ev.Delivery != nil && ev.Delivery.Context != nil {
		Dispatch(ev.Delivery.Context, ev)
	}
	if ev.Link != nil && ev.Link.Context != nil {
		Dispatch(ev.Link.Context, ev)
	}
	if ev.Session != nil && ev.Session.Context != nil {
		Dispatch(ev.Session.Context, ev)
	}
	if ev.Connection != nil && ev.Connection.Context != nil {
		Dispatch(ev.Connection.Context, ev)
	}
}
