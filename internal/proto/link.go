package proto

// Link is the common representation for both sender and receiver link
// endpoints. spec.md §6 lists one combined surface
// (`source/target/.../flow/credit/is_receiver/advance/recv/delivery/
// send/offered`); this engine mirrors that rather than splitting into
// Sender/Receiver engine types, leaving the sender/receiver-specific
// ergonomics to the reactor package's MessagingContext wrappers (design
// note "rebinding a send method" — SPEC_FULL.md §4).
type Link struct {
	Endpoint

	Session *Session
	Handle  uint32
	Name    string

	IsReceiver bool
	SourceAddr string
	TargetAddr string
	Dynamic    bool

	// RemoteSourceAddr/RemoteTargetAddr are the addresses the peer
	// declared in its Attach — distinct from SourceAddr/TargetAddr,
	// which are this side's own (spec.md §6 remote_source/remote_target).
	// handleFrame only ever writes these; copying them onto the local
	// SourceAddr/TargetAddr fields, when appropriate, is the Handshaker's
	// job (spec.md §4.6), not the engine's.
	RemoteSourceAddr string
	RemoteTargetAddr string

	// Credit is the number of messages this receiver currently permits
	// the peer to send. Only meaningful when IsReceiver.
	Credit uint32
	// DeliveryCount is incremented by the sender each time a transfer is
	// advanced.
	DeliveryCount uint32
	// availableCredit is this sender's last-known view of the peer's
	// granted credit, decremented on every advanced transfer.
	availableCredit uint32
	// Offered is a purely local accounting field: how many messages the
	// application has queued up to send (used by the backpressure
	// scenario, spec.md §8 S2).
	Offered uint32

	// current is the delivery under construction (sender) or awaiting
	// Recv/Advance (receiver).
	current *Delivery
	// unsettled indexes outgoing deliveries awaiting a disposition, by
	// tag, so an inbound disposition performative can be routed back.
	unsettled map[string]*Delivery
}

func newLink(s *Session, name string, isReceiver bool) *Link {
	return &Link{
		Endpoint:   newEndpoint(),
		Session:    s,
		Name:       name,
		IsReceiver: isReceiver,
		unsettled:  make(map[string]*Delivery),
	}
}

// Open transitions the local half to ACTIVE and attaches the link.
func (l *Link) Open() {
	l.openLocal()
	l.Session.Connection.collector.Put(NewApplicationEvent(LinkOpen, nil, nil, l, nil, nil))
	l.Session.enqueue(&performAttach{
		Channel:    l.Session.Channel,
		Handle:     l.Handle,
		Name:       l.Name,
		IsReceiver: l.IsReceiver,
		Source:     l.SourceAddr,
		Target:     l.TargetAddr,
		Dynamic:    l.Dynamic,
	})
}

// Close transitions the local half to CLOSED and detaches the link.
func (l *Link) Close() {
	l.closeLocal()
	l.Session.Connection.collector.Put(NewApplicationEvent(LinkClose, nil, nil, l, nil, nil))
	l.Session.enqueue(&performDetach{Channel: l.Session.Channel, Handle: l.Handle, Closed: true})
}

// Flow grants delta additional credits to the peer (receiver side) and
// transmits the new total.
func (l *Link) Flow(delta uint32) {
	l.Credit += delta
	l.Session.enqueue(&performFlow{Channel: l.Session.Channel, Handle: l.Handle, LinkCredit: l.Credit})
}

// Draining always reports false: this engine does not implement drain
// mode, which no scenario in spec.md §8 exercises.
func (l *Link) Draining() bool { return false }

// SetOffered records how many messages the application has queued to
// send; purely local bookkeeping (see Offered field doc).
func (l *Link) SetOffered(n uint32) { l.Offered = n }

// Delivery allocates a new outgoing delivery with the given tag
// (sender side) and makes it the link's current in-progress delivery.
func (l *Link) Delivery(tag []byte) *Delivery {
	d := &Delivery{Tag: tag, Link: l}
	l.current = d
	return d
}

// Send appends bytes to the current outgoing delivery's payload.
func (l *Link) Send(b []byte) {
	if l.current == nil {
		return
	}
	l.current.payload = append(l.current.payload, b...)
}

// Recv returns up to n bytes of the current incoming delivery's
// unread payload (receiver side).
func (l *Link) Recv(n int) []byte {
	if l.current == nil {
		return nil
	}
	if n > len(l.current.payload) {
		n = len(l.current.payload)
	}
	return l.current.payload[:n]
}

// Advance finalizes the current delivery: for a sender, it transmits the
// accumulated payload as a transfer and decrements available credit; for
// a receiver, it simply clears the read cursor.
func (l *Link) Advance() {
	d := l.current
	l.current = nil
	if d == nil {
		return
	}
	if !l.IsReceiver {
		l.unsettled[string(d.Tag)] = d
		l.Session.enqueue(&performTransfer{
			Channel:       l.Session.Channel,
			Handle:        l.Handle,
			DeliveryTag:   d.Tag,
			Payload:       d.payload,
			MessageFormat: 0,
		})
		if l.availableCredit > 0 {
			l.availableCredit--
		}
		l.DeliveryCount++
	}
}

// sendDisposition transmits the local disposition state for d.
func (l *Link) sendDisposition(d *Delivery, settledOnly bool) {
	l.Session.enqueue(&performDisposition{
		Channel:     l.Session.Channel,
		Handle:      l.Handle,
		DeliveryTag: d.Tag,
		State:       d.LocalState,
		Settled:     d.Settled || settledOnly,
	})
}

// handleFrame applies an inbound performative addressed to this link.
func (l *Link) handleFrame(fb frameBody) {
	col := l.Session.Connection.collector
	switch fr := fb.(type) {
	case *performAttach:
		l.RemoteSourceAddr = fr.Source
		l.RemoteTargetAddr = fr.Target
		l.openRemote()
		col.Put(NewApplicationEvent(LinkRemoteOpen, nil, nil, l, nil, nil))

	case *performFlow:
		// LinkCredit is the receiver's current outstanding credit.
		l.availableCredit = fr.LinkCredit
		col.Put(NewApplicationEvent(LinkFlow, nil, nil, l, nil, nil))

	case *performTransfer:
		if l.Credit > 0 {
			l.Credit--
		}
		d := &Delivery{
			Tag:      fr.DeliveryTag,
			Link:     l,
			Pending:  len(fr.Payload),
			Readable: true,
			payload:  fr.Payload,
			Settled:  fr.Settled,
		}
		l.current = d
		col.Put(NewApplicationEvent(Delivery_, nil, nil, nil, d, nil))

	case *performDisposition:
		d, ok := l.unsettled[string(fr.DeliveryTag)]
		if !ok {
			return
		}
		d.RemoteState = fr.State
		d.Settled = fr.Settled
		d.Updated = true
		if fr.Settled {
			delete(l.unsettled, string(fr.DeliveryTag))
		}
		col.Put(NewApplicationEvent(Delivery_, nil, nil, nil, d, nil))

	case *performDetach:
		l.closeRemote(errString(fr.Error))
		col.Put(NewApplicationEvent(LinkRemoteClose, nil, nil, l, nil, nil))
	}
}

func errString(s string) error {
	if s == "" {
		return nil
	}
	return errorString(s)
}

type errorString string

func (e errorString) Error() string { return string(e) }
