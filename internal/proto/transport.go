package proto

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"

	"github.com/pkg/errors"
)

// defaultReadChunk bounds how many bytes Transport.Capacity() advertises
// it is willing to accept per Push call; the socket adapter treats this
// as the read buffer size (spec.md §4.2).
const defaultReadChunk = 64 * 1024

// envelope carries one performative across the wire. The length prefix
// written by enqueue/decodeEnvelope delimits frames the way a real AMQP
// transport's frame header does, without reproducing its binary type
// system (see SPEC_FULL.md §1).
type envelope struct {
	Body frameBody
}

// Transport bridges a byte-oriented socket to a Connection: bind it,
// then drive bytes through Push/Peek/Pop/Pending/Capacity exactly as
// spec.md §4.2's socket adapter contract describes.
type Transport struct {
	conn *Connection

	outbound  bytes.Buffer
	inbound   []byte
	closeTail bool
	err       error
}

// Bind associates this transport with a connection; from this point on,
// local actions on conn (and its sessions/links/deliveries) are encoded
// onto the outbound buffer.
func (t *Transport) Bind(c *Connection) {
	t.conn = c
	c.transport = t
}

// Unbind disassociates the transport from its connection, e.g. after an
// abnormal disconnect (spec.md §4.2 `removed()`).
func (t *Transport) Unbind() {
	if t.conn != nil {
		t.conn.transport = nil
	}
	t.conn = nil
}

// Sasl returns a no-op SASL negotiator: the SASL layer is an external
// collaborator out of scope for this reactor (spec.md §1).
func (t *Transport) Sasl() *Sasl { return &Sasl{} }

// Sasl is an intentionally minimal stand-in; see Transport.Sasl.
type Sasl struct{}

// Plain records PLAIN credentials. A real implementation would negotiate
// over the wire before the AMQP handshake; this reactor's engine does
// not model SASL, so this is a documented no-op.
func (*Sasl) Plain(user, password string) {}

// Capacity reports how many bytes of inbound data the transport can
// currently accept, or a negative value once closed.
func (t *Transport) Capacity() int {
	if t.closeTail || t.err != nil {
		return -1
	}
	return defaultReadChunk
}

// Push feeds newly read bytes into the transport, decoding and applying
// every complete performative found.
func (t *Transport) Push(b []byte) error {
	t.inbound = append(t.inbound, b...)
	for {
		body, consumed, ok, err := decodeEnvelope(t.inbound)
		if err != nil {
			t.err = err
			return err
		}
		if !ok {
			break
		}
		t.inbound = t.inbound[consumed:]
		if t.conn != nil {
			t.conn.handleFrame(body)
		}
	}
	return nil
}

// Pending reports how many outbound bytes are ready to be written.
func (t *Transport) Pending() int {
	if t.err != nil {
		return -1
	}
	return t.outbound.Len()
}

// Peek returns up to n outbound bytes without consuming them.
func (t *Transport) Peek(n int) []byte {
	b := t.outbound.Bytes()
	if n > len(b) {
		n = len(b)
	}
	return b[:n]
}

// Pop discards the first n outbound bytes (the number actually written).
func (t *Transport) Pop(n int) {
	t.outbound.Next(n)
}

// CloseTail signals that no more inbound bytes will ever arrive (the
// peer shut down its write half).
func (t *Transport) CloseTail() {
	t.closeTail = true
}

func (t *Transport) enqueue(fb frameBody) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&envelope{Body: fb}); err != nil {
		t.err = errors.Wrap(err, "proto: encode frame")
		return
	}
	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(buf.Len()))
	t.outbound.Write(lenPrefix[:])
	t.outbound.Write(buf.Bytes())
}

func decodeEnvelope(data []byte) (frameBody, int, bool, error) {
	if len(data) < 4 {
		return nil, 0, false, nil
	}
	n := binary.BigEndian.Uint32(data[:4])
	if len(data) < 4+int(n) {
		return nil, 0, false, nil
	}
	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(data[4 : 4+n])).Decode(&env); err != nil {
		return nil, 0, false, errors.Wrap(err, "proto: decode frame")
	}
	return env.Body, 4 + int(n), true, nil
}
