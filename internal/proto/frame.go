package proto

import "encoding/gob"

// frameBody adds some type safety to performative encoding, mirroring
// the teacher's own `frameBody interface { frameBody() }` marker in
// frames.go — the shape survives even though the wire codec underneath
// (gob, not the real AMQP type system) does not.
type frameBody interface {
	frameBody()
}

// performOpen is the connection handshake performative.
//
// <type name="open" class="composite" source="list" provides="frame">
//
//	<field name="container-id" type="string" mandatory="true"/>
//	<field name="hostname" type="string"/>
type performOpen struct {
	ContainerID string
	Hostname    string
}

func (*performOpen) frameBody() {}

// performClose ends a connection, optionally carrying an error condition.
type performClose struct {
	Error string // empty means no condition
}

func (*performClose) frameBody() {}

// performBegin starts a session on a channel.
type performBegin struct {
	Channel uint16
}

func (*performBegin) frameBody() {}

// performEnd ends a session.
type performEnd struct {
	Channel uint16
}

func (*performEnd) frameBody() {}

// performAttach establishes a link within a session.
type performAttach struct {
	Channel    uint16
	Handle     uint32
	Name       string
	IsReceiver bool // role of the endpoint performing this attach
	Source     string
	Target     string
	Dynamic    bool
}

func (*performAttach) frameBody() {}

// performDetach tears down a link, optionally as a close.
type performDetach struct {
	Channel uint16
	Handle  uint32
	Closed  bool
	Error   string
}

func (*performDetach) frameBody() {}

// performFlow grants link credit to a sender.
type performFlow struct {
	Channel    uint16
	Handle     uint32
	LinkCredit uint32
}

func (*performFlow) frameBody() {}

// performTransfer carries one complete message (this engine does not
// fragment transfers across frames).
type performTransfer struct {
	Channel       uint16
	Handle        uint32
	DeliveryTag   []byte
	Payload       []byte
	MessageFormat uint32
	Settled       bool
}

func (*performTransfer) frameBody() {}

// performDisposition updates the outcome of one or more deliveries.
type performDisposition struct {
	Channel     uint16
	Handle      uint32
	DeliveryTag []byte
	State       DispositionState
	Settled     bool
}

func (*performDisposition) frameBody() {}

func init() {
	gob.Register(&performOpen{})
	gob.Register(&performClose{})
	gob.Register(&performBegin{})
	gob.Register(&performEnd{})
	gob.Register(&performAttach{})
	gob.Register(&performDetach{})
	gob.Register(&performFlow{})
	gob.Register(&performTransfer{})
	gob.Register(&performDisposition{})
}
