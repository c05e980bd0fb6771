package reactor

import "github.com/nimbusmq/reactor/internal/proto"

// Handler is anything the reactor's global dispatch chain, or the
// scoped per-endpoint dispatcher, can feed an event to.
type Handler interface {
	Dispatch(ev proto.Event)
}

// The On* interfaces below replace the Python engine's dynamic
// `getattr(self, "on_" + event.type)` dispatch (spec.md §4.5, §9) with a
// closed set of single-method capability interfaces: a handler opts into
// exactly the events it cares about by implementing the matching
// interface, and Dispatch below type-asserts rather than reflecting. A
// handler that implements none of these for a given event type is
// silently skipped, mirroring the Python base dispatcher's implicit
// `unhandled` fallback.
type (
	OnConnectionInit        interface{ OnConnectionInit(proto.Event) }
	OnConnectionOpen        interface{ OnConnectionOpen(proto.Event) }
	OnConnectionRemoteOpen  interface{ OnConnectionRemoteOpen(proto.Event) }
	OnConnectionClose       interface{ OnConnectionClose(proto.Event) }
	OnConnectionRemoteClose interface{ OnConnectionRemoteClose(proto.Event) }
	OnConnectionFinal       interface{ OnConnectionFinal(proto.Event) }

	OnSessionInit        interface{ OnSessionInit(proto.Event) }
	OnSessionOpen        interface{ OnSessionOpen(proto.Event) }
	OnSessionRemoteOpen  interface{ OnSessionRemoteOpen(proto.Event) }
	OnSessionClose       interface{ OnSessionClose(proto.Event) }
	OnSessionRemoteClose interface{ OnSessionRemoteClose(proto.Event) }
	OnSessionFinal       interface{ OnSessionFinal(proto.Event) }

	OnLinkInit        interface{ OnLinkInit(proto.Event) }
	OnLinkOpen        interface{ OnLinkOpen(proto.Event) }
	OnLinkRemoteOpen  interface{ OnLinkRemoteOpen(proto.Event) }
	OnLinkClose       interface{ OnLinkClose(proto.Event) }
	OnLinkRemoteClose interface{ OnLinkRemoteClose(proto.Event) }
	OnLinkFlow        interface{ OnLinkFlow(proto.Event) }
	OnLinkFinal       interface{ OnLinkFinal(proto.Event) }

	OnDelivery interface{ OnDelivery(proto.Event) }

	OnTimer        interface{ OnTimer(proto.Event) }
	OnDisconnected interface{ OnDisconnected(proto.Event) }
)

// Dispatch type-asserts target against the capability interface matching
// ev.Type and invokes it if present. Used both by the global handler
// chain (a handler's own Dispatch method typically just forwards here)
// and by the scoped dispatcher walking an event's domain-object chain.
func Dispatch(target any, ev proto.Event) {
	switch ev.Type {
	case proto.ConnectionInit:
		if t, ok := target.(OnConnectionInit); ok {
			t.OnConnectionInit(ev)
		}
	case proto.ConnectionOpen:
		if t, ok := target.(OnConnectionOpen); ok {
			t.OnConnectionOpen(ev)
		}
	case proto.ConnectionRemoteOpen:
		if t, ok := target.(OnConnectionRemoteOpen); ok {
			t.OnConnectionRemoteOpen(ev)
		}
	case proto.ConnectionClose:
		if t, ok := target.(OnConnectionClose); ok {
			t.OnConnectionClose(ev)
		}
	case proto.ConnectionRemoteClose:
		if t, ok := target.(OnConnectionRemoteClose); ok {
			t.OnConnectionRemoteClose(ev)
		}
	case proto.ConnectionFinal:
		if t, ok := target.(OnConnectionFinal); ok {
			t.OnConnectionFinal(ev)
		}

	case proto.SessionInit:
		if t, ok := target.(OnSessionInit); ok {
			t.OnSessionInit(ev)
		}
	case proto.SessionOpen:
		if t, ok := target.(OnSessionOpen); ok {
			t.OnSessionOpen(ev)
		}
	case proto.SessionRemoteOpen:
		if t, ok := target.(OnSessionRemoteOpen); ok {
			t.OnSessionRemoteOpen(ev)
		}
	case proto.SessionClose:
		if t, ok := target.(OnSessionClose); ok {
			t.OnSessionClose(ev)
		}
	case proto.SessionRemoteClose:
		if t, ok := target.(OnSessionRemoteClose); ok {
			t.OnSessionRemoteClose(ev)
		}
	case proto.SessionFinal:
		if t, ok := target.(OnSessionFinal); ok {
			t.OnSessionFinal(ev)
		}

	case proto.LinkInit:
		if t, ok := target.(OnLinkInit); ok {
			t.OnLinkInit(ev)
		}
	case proto.LinkOpen:
		if t, ok := target.(OnLinkOpen); ok {
			t.OnLinkOpen(ev)
		}
	case proto.LinkRemoteOpen:
		if t, ok := target.(OnLinkRemoteOpen); ok {
			t.OnLinkRemoteOpen(ev)
		}
	case proto.LinkClose:
		if t, ok := target.(OnLinkClose); ok {
			t.OnLinkClose(ev)
		}
	case proto.LinkRemoteClose:
		if t, ok := target.(OnLinkRemoteClose); ok {
			t.OnLinkRemoteClose(ev)
		}
	case proto.LinkFlow:
		if t, ok := target.(OnLinkFlow); ok {
			t.OnLinkFlow(ev)
		}
	case proto.LinkFinal:
		if t, ok := target.(OnLinkFinal); ok {
			t.OnLinkFinal(ev)
		}

	case proto.Delivery_:
		if t, ok := target.(OnDelivery); ok {
			t.OnDelivery(ev)
		}

	case proto.Timer:
		if t, ok := target.(OnTimer); ok {
			t.OnTimer(ev)
		}
	case proto.Disconnected:
		if t, ok := target.(OnDisconnected); ok {
			t.OnDisconnected(ev)
		}
	}
}
