package reactor

import "github.com/nimbusmq/reactor/internal/proto"

// BlockingConnection is a synchronous façade over the same reactor: each
// call pumps Reactor.Step until its own condition holds, rather than
// running a separate event loop or thread (spec.md §4.13, scenario S6).
type BlockingConnection struct {
	react        *Reactor
	conn         *proto.Connection
	msg          *MessagingContext
	disconnected bool
}

// Dial opens a blocking connection to addr: it dials the socket,
// issues a local Open, and pumps until the remote half acknowledges.
func Dial(react *Reactor, addr Url, containerID string) (*BlockingConnection, error) {
	conn := react.Connection(containerID)
	fd, err := dialTCP(addr.Host, addr.Port)
	if err != nil {
		return nil, err
	}
	transport := &proto.Transport{}
	transport.Bind(conn)
	sock := newSocketAdapter(fd, transport, conn, react)
	react.addSelectable(sock)

	bc := &BlockingConnection{react: react, conn: conn, msg: NewMessagingContext(react, conn)}
	react.AddHandler(bc)

	conn.Open()
	if err := bc.pumpUntil(func() bool { return conn.State&proto.RemoteUninit == 0 }); err != nil {
		return nil, err
	}
	return bc, nil
}

func (b *BlockingConnection) OnDisconnected(ev proto.Event) {
	if ev.Connection == b.conn {
		b.disconnected = true
	}
}

func (b *BlockingConnection) Dispatch(ev proto.Event) { Dispatch(b, ev) }

// pumpUntil steps the reactor until cond holds, surfacing a terminal
// error if the peer disconnects or closes remotely while we're still
// locally active (spec.md §7).
func (b *BlockingConnection) pumpUntil(cond func() bool) error {
	for !cond() {
		if b.disconnected {
			return ErrDisconnected
		}
		done, err := b.react.Step()
		if err != nil {
			return err
		}
		if done {
			return ErrAborted
		}
		if b.conn.State&proto.RemoteClosed != 0 && b.conn.State&proto.LocalActive != 0 {
			return ErrConnectionClosed
		}
	}
	return nil
}

// Sender opens a sending link and pumps until the peer attaches it.
func (b *BlockingConnection) Sender(target string, opts ...SenderOption) (*Sender, error) {
	s := b.msg.Sender(target, opts...)
	if err := b.pumpUntil(func() bool { return s.State&proto.RemoteUninit == 0 }); err != nil {
		return nil, err
	}
	return s, nil
}

// Receiver opens a receiving link and pumps until the peer attaches it.
func (b *BlockingConnection) Receiver(source string, opts ...ReceiverOption) (*Receiver, error) {
	r := b.msg.Receiver(source, opts...)
	if err := b.pumpUntil(func() bool { return r.State&proto.RemoteUninit == 0 }); err != nil {
		return nil, err
	}
	return r, nil
}

// SendMsg issues a delivery on s and pumps until the peer settles it.
func (b *BlockingConnection) SendMsg(s *Sender, msg proto.Message, opts ...DeliveryOption) error {
	d, err := s.SendMsg(msg, opts...)
	if err != nil {
		return err
	}
	return b.pumpUntil(func() bool { return d.Settled })
}

// Close issues a local Close and pumps until the remote half leaves
// ACTIVE.
func (b *BlockingConnection) Close() error {
	b.conn.Close()
	return b.pumpUntil(func() bool { return b.conn.State&proto.RemoteActive == 0 })
}
