package reactor

import (
	"time"

	"github.com/nimbusmq/reactor/internal/debug"
	"github.com/nimbusmq/reactor/internal/proto"
)

// connState is the per-connection reconnect bookkeeping a Connector
// keeps: the round-robin address list and the backoff iterator driving
// how long to wait before the next attempt.
type connState struct {
	urls    *Urls
	backoff Backoff
}

// Connector is the global behavioral handler implementing reconnect
// logic (spec.md §4.12): it dials the next address when a registered
// connection is locally opened, resets backoff on a successful remote
// open, and reschedules (or immediately retries) on disconnection.
type Connector struct {
	react  *Reactor
	states map[*proto.Connection]*connState

	// MaxBackoff, if non-zero, caps every connection's reconnect delay
	// (spec.md §6's Config.MaxBackoff); zero uses Backoff's own 10s cap.
	MaxBackoff time.Duration

	// Metrics, if non-nil, is incremented once per reconnect attempt
	// Connector drives (not the initial connect) — spec.md §6's
	// reactor_reconnects_total.
	Metrics *Metrics
}

// NewConnector builds a Connector and attaches it to react as a global
// handler.
func NewConnector(react *Reactor) *Connector {
	c := &Connector{react: react, states: make(map[*proto.Connection]*connState)}
	react.AddHandler(c)
	return c
}

// Connect creates a new connection addressed by urls; the caller opens
// it (conn.Open()) whenever it's ready to start connecting — Connector
// reacts to that local open by actually dialing the first address.
// Connect reports ErrNoAddress if urls is nil or empty (spec.md §7's
// documented misuse of building a messaging context without an address).
func (c *Connector) Connect(containerID string, urls *Urls) (*proto.Connection, error) {
	if urls == nil || len(urls.list) == 0 {
		return nil, ErrNoAddress
	}
	conn := c.react.Connection(containerID)
	c.states[conn] = &connState{urls: urls, backoff: Backoff{Max: c.MaxBackoff}}
	return conn, nil
}

func (c *Connector) dial(conn *proto.Connection, st *connState) {
	addr := st.urls.Next()
	fd, err := dialTCP(addr.Host, addr.Port)
	if err != nil {
		debug.Log(1, "connector: dial %s failed: %v", addr, err)
		c.react.source.dispatchApplication(proto.NewApplicationEvent(proto.Disconnected, conn, nil, nil, nil, nil))
		return
	}
	transport := &proto.Transport{}
	transport.Bind(conn)
	sock := newSocketAdapter(fd, transport, conn, c.react)
	c.react.addSelectable(sock)
}

func (c *Connector) OnConnectionOpen(ev proto.Event) {
	if st, ok := c.states[ev.Connection]; ok {
		c.dial(ev.Connection, st)
	}
}

func (c *Connector) OnConnectionRemoteOpen(ev proto.Event) {
	if st, ok := c.states[ev.Connection]; ok {
		st.backoff.Reset()
	}
}

func (c *Connector) OnDisconnected(ev proto.Event) {
	st, ok := c.states[ev.Connection]
	if !ok {
		return
	}
	delay := st.backoff.Next()
	if delay == 0 {
		if c.Metrics != nil {
			c.Metrics.Reconnects.Inc()
		}
		c.dial(ev.Connection, st)
		return
	}
	c.react.Schedule(delay, proto.NewApplicationEvent(proto.Timer, ev.Connection, nil, nil, nil, c))
}

func (c *Connector) OnTimer(ev proto.Event) {
	if ev.Subject != c {
		return
	}
	if st, ok := c.states[ev.Connection]; ok {
		if c.Metrics != nil {
			c.Metrics.Reconnects.Inc()
		}
		c.dial(ev.Connection, st)
	}
}

func (c *Connector) Dispatch(ev proto.Event) { Dispatch(c, ev) }
