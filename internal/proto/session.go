package proto

// Session groups links under one connection channel.
type Session struct {
	Endpoint

	Connection *Connection
	Channel    uint16

	links      map[uint32]*Link
	nextHandle uint32
}

func newSession(c *Connection, channel uint16) *Session {
	return &Session{
		Endpoint:   newEndpoint(),
		Connection: c,
		Channel:    channel,
		links:      make(map[uint32]*Link),
	}
}

// Open transitions the local half to ACTIVE and transmits Begin.
func (s *Session) Open() {
	s.openLocal()
	s.Connection.collector.Put(NewApplicationEvent(SessionOpen, nil, s, nil, nil, nil))
	s.enqueue(&performBegin{Channel: s.Channel})
}

// Close transitions the local half to CLOSED and transmits End.
func (s *Session) Close() {
	s.closeLocal()
	s.Connection.collector.Put(NewApplicationEvent(SessionClose, nil, s, nil, nil, nil))
	s.enqueue(&performEnd{Channel: s.Channel})
}

// Sender creates a new sending link on this session. The caller must
// still call Link.Open to attach it.
func (s *Session) Sender(name string) *Link {
	return s.newLink(name, false)
}

// Receiver creates a new receiving link on this session. The caller must
// still call Link.Open to attach it.
func (s *Session) Receiver(name string) *Link {
	return s.newLink(name, true)
}

func (s *Session) newLink(name string, isReceiver bool) *Link {
	l := newLink(s, name, isReceiver)
	l.Handle = s.nextHandle
	s.nextHandle++
	s.links[l.Handle] = l
	s.Connection.collector.Put(NewApplicationEvent(LinkInit, nil, nil, l, nil, nil))
	return l
}

func (s *Session) enqueue(fb frameBody) {
	s.Connection.enqueue(fb)
}

// handleFrame routes an inbound performative addressed to this session
// (or to one of its links) to the right place.
func (s *Session) handleFrame(fb frameBody) {
	switch fr := fb.(type) {
	case *performBegin:
		s.openRemote()
		s.Connection.collector.Put(NewApplicationEvent(SessionRemoteOpen, nil, s, nil, nil, nil))
	case *performEnd:
		s.closeRemote(nil)
		s.Connection.collector.Put(NewApplicationEvent(SessionRemoteClose, nil, s, nil, nil, nil))
	case *performAttach:
		l, ok := s.links[fr.Handle]
		if !ok {
			// peer-initiated attach for a link we didn't create locally
			l = newLink(s, fr.Name, !fr.IsReceiver)
			l.Handle = fr.Handle
			s.links[fr.Handle] = l
			s.Connection.collector.Put(NewApplicationEvent(LinkInit, nil, nil, l, nil, nil))
		}
		l.handleFrame(fr)
	case *performFlow:
		if l, ok := s.links[fr.Handle]; ok {
			l.handleFrame(fr)
		}
	case *performTransfer:
		if l, ok := s.links[fr.Handle]; ok {
			l.handleFrame(fr)
		}
	case *performDisposition:
		if l, ok := s.links[fr.Handle]; ok {
			l.handleFrame(fr)
		}
	case *performDetach:
		if l, ok := s.links[fr.Handle]; ok {
			l.handleFrame(fr)
		}
	}
}
