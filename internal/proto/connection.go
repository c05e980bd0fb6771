package proto

// Connection is the top-level endpoint. Constructed via NewConnection and
// bound to a Collector before any events can be observed, matching
// spec.md §6 (`collect(collector)`).
type Connection struct {
	Endpoint

	ContainerID string
	Hostname    string

	collector *Collector
	transport *Transport

	sessions    map[uint16]*Session
	nextChannel uint16
}

// NewConnection constructs a connection with no collector bound yet.
// Use Collect to bind one before driving any state transitions.
func NewConnection(containerID string) *Connection {
	return &Connection{
		Endpoint:    newEndpoint(),
		ContainerID: containerID,
		sessions:    make(map[uint16]*Session),
	}
}

// Collect binds the collector events for this connection (and every
// session/link/delivery it creates) are reported through.
func (c *Connection) Collect(col *Collector) {
	c.collector = col
	c.collector.Put(NewApplicationEvent(ConnectionInit, c, nil, nil, nil, nil))
}

// Session creates a new, as-yet-unopened session on the next available
// channel.
func (c *Connection) Session() *Session {
	ch := c.nextChannel
	c.nextChannel++
	s := newSession(c, ch)
	c.sessions[ch] = s
	c.collector.Put(NewApplicationEvent(SessionInit, nil, s, nil, nil, nil))
	return s
}

// Open transitions the local half to ACTIVE and transmits Open.
func (c *Connection) Open() {
	c.openLocal()
	c.collector.Put(NewApplicationEvent(ConnectionOpen, c, nil, nil, nil, nil))
	c.enqueue(&performOpen{ContainerID: c.ContainerID, Hostname: c.Hostname})
}

// Close transitions the local half to CLOSED and transmits Close.
func (c *Connection) Close() {
	c.closeLocal()
	c.collector.Put(NewApplicationEvent(ConnectionClose, c, nil, nil, nil, nil))
	c.enqueue(&performClose{})
}

func (c *Connection) enqueue(fb frameBody) {
	if c.transport != nil {
		c.transport.enqueue(fb)
	}
}

// handleFrame applies an inbound performative to this connection or
// routes it to the right session by channel.
func (c *Connection) handleFrame(fb frameBody) {
	switch fr := fb.(type) {
	case *performOpen:
		c.openRemote()
		c.collector.Put(NewApplicationEvent(ConnectionRemoteOpen, c, nil, nil, nil, nil))
	case *performClose:
		c.closeRemote(errString(fr.Error))
		c.collector.Put(NewApplicationEvent(ConnectionRemoteClose, c, nil, nil, nil, nil))
	case *performBegin:
		s, ok := c.sessions[fr.Channel]
		if !ok {
			s = newSession(c, fr.Channel)
			c.sessions[fr.Channel] = s
			c.collector.Put(NewApplicationEvent(SessionInit, nil, s, nil, nil, nil))
		}
		s.handleFrame(fr)
	case *performEnd:
		if s, ok := c.sessions[fr.Channel]; ok {
			s.handleFrame(fr)
		}
	case *performAttach:
		if s, ok := c.sessions[fr.Channel]; ok {
			s.handleFrame(fr)
		}
	case *performFlow:
		if s, ok := c.sessions[fr.Channel]; ok {
			s.handleFrame(fr)
		}
	case *performTransfer:
		if s, ok := c.sessions[fr.Channel]; ok {
			s.handleFrame(fr)
		}
	case *performDisposition:
		if s, ok := c.sessions[fr.Channel]; ok {
			s.handleFrame(fr)
		}
	case *performDetach:
		if s, ok := c.sessions[fr.Channel]; ok {
			s.handleFrame(fr)
		}
	}
}
