package reactor

import "github.com/nimbusmq/reactor/internal/proto"

// Handshaker automates endpoint symmetry: whenever the peer opens an
// endpoint whose local half is still UNINIT, open it locally too; copy a
// remote-opened link's addresses onto the local side first. Whenever the
// peer closes an endpoint whose local half isn't already CLOSED, close
// it locally. This is "mirror the peer unless the application already
// acted" (spec.md §4.6) — attach it as a global handler and most
// applications never need to open/close anything themselves.
type Handshaker struct{}

func (Handshaker) OnConnectionRemoteOpen(ev proto.Event) {
	c := ev.Connection
	if c.State&proto.LocalUninit != 0 {
		c.Open()
	}
}

func (Handshaker) OnSessionRemoteOpen(ev proto.Event) {
	s := ev.Session
	if s.State&proto.LocalUninit != 0 {
		s.Open()
	}
}

func (Handshaker) OnLinkRemoteOpen(ev proto.Event) {
	l := ev.Link
	if l.State&proto.LocalUninit != 0 {
		// The application never chose addresses for this link (it's a
		// peer-initiated link proto.Session auto-created on Attach) —
		// inherit whatever the peer declared before opening locally.
		// A link the application already opened (and so already gave
		// its own SourceAddr/TargetAddr) is left alone.
		l.SourceAddr = l.RemoteSourceAddr
		l.TargetAddr = l.RemoteTargetAddr
		l.Open()
	}
}

func (Handshaker) OnConnectionRemoteClose(ev proto.Event) {
	c := ev.Connection
	if c.State&proto.LocalClosed == 0 {
		c.Close()
	}
}

func (Handshaker) OnSessionRemoteClose(ev proto.Event) {
	s := ev.Session
	if s.State&proto.LocalClosed == 0 {
		s.Close()
	}
}

func (Handshaker) OnLinkRemoteClose(ev proto.Event) {
	l := ev.Link
	if l.State&proto.LocalClosed == 0 {
		l.Close()
	}
}

func (h Handshaker) Dispatch(ev proto.Event) { Dispatch(h, ev) }
