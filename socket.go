package reactor

import (
	"golang.org/x/sys/unix"

	"github.com/nimbusmq/reactor/internal/debug"
	"github.com/nimbusmq/reactor/internal/proto"
)

// socketReadChunk bounds how many bytes socketAdapter.Readable reads per
// call, capped by the transport's own advertised Capacity.
const socketReadChunk = 16 * 1024

// socketAdapter binds a non-blocking raw socket to a proto.Transport,
// pumping bytes in both directions per the byte-pump contract in
// spec.md §4.2. Grounded on the teacher's link.go framing loop for the
// push/pop accounting, and on the pack's raw-syscall eventloop (see
// DESIGN.md) for driving the fd directly with golang.org/x/sys/unix
// instead of net.Conn, which is what lets this type sit directly in a
// pollSet.
type socketAdapter struct {
	fd        int
	transport *proto.Transport
	conn      *proto.Connection
	react     *Reactor

	readDone  bool
	writeDone bool
}

func newSocketAdapter(fd int, transport *proto.Transport, conn *proto.Connection, react *Reactor) *socketAdapter {
	_ = unix.SetNonblock(fd, true)
	return &socketAdapter{fd: fd, transport: transport, conn: conn, react: react}
}

// dialTCP opens a non-blocking client connection to host:port and sets
// TCP_NODELAY, per spec.md §4.2.
func dialTCP(host string, port int) (int, error) {
	ips, err := lookupIPs(host)
	if err != nil {
		return -1, err
	}
	var lastErr error
	for _, ip := range ips {
		fd, err := unix.Socket(domainFor(ip), unix.SOCK_STREAM, unix.IPPROTO_TCP)
		if err != nil {
			lastErr = err
			continue
		}
		_ = unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
		if err := unix.SetNonblock(fd, true); err != nil {
			_ = unix.Close(fd)
			lastErr = err
			continue
		}
		sa := sockaddrFor(ip, port)
		if err := unix.Connect(fd, sa); err != nil && err != unix.EINPROGRESS {
			_ = unix.Close(fd)
			lastErr = err
			continue
		}
		return fd, nil
	}
	if lastErr == nil {
		lastErr = unix.EHOSTUNREACH
	}
	return -1, lastErr
}

func (s *socketAdapter) Fd() int { return s.fd }

func (s *socketAdapter) Reading() bool {
	if s.readDone {
		return false
	}
	if s.transport.Capacity() < 0 {
		s.readDone = true
		return false
	}
	return s.transport.Capacity() > 0
}

func (s *socketAdapter) Writing() bool {
	if s.writeDone {
		return false
	}
	p := s.transport.Pending()
	if p < 0 {
		s.writeDone = true
		return false
	}
	return p > 0
}

func (s *socketAdapter) Closed() bool { return s.readDone && s.writeDone }

func (s *socketAdapter) Readable() {
	n := s.transport.Capacity()
	if n <= 0 || n > socketReadChunk {
		n = socketReadChunk
	}
	buf := make([]byte, n)
	nr, err := unix.Read(s.fd, buf)
	switch {
	case err != nil:
		if err == unix.EAGAIN {
			return
		}
		debug.Log(1, "socket: read error on fd %d: %v", s.fd, err)
		s.readDone = true
		s.writeDone = true
	case nr == 0:
		if !s.conn.ClosedCleanly() {
			s.readDone = true
			s.writeDone = true
		} else {
			s.transport.CloseTail()
			s.readDone = true
		}
	default:
		if err := s.transport.Push(buf[:nr]); err != nil {
			debug.Log(1, "socket: protocol error on fd %d: %v", s.fd, err)
			s.readDone = true
		}
	}
}

func (s *socketAdapter) Writable() {
	pending := s.transport.Pending()
	if pending <= 0 {
		return
	}
	b := s.transport.Peek(pending)
	nw, err := unix.Write(s.fd, b)
	if err != nil {
		if err == unix.EAGAIN {
			return
		}
		debug.Log(1, "socket: write error on fd %d: %v", s.fd, err)
		s.writeDone = true
		return
	}
	s.transport.Pop(nw)
}

// Removed unbinds the transport and, unless the logical connection
// closed cleanly, dispatches a synthetic Disconnected event so the
// connector (or a user handler) can react — spec.md §4.2's `removed()`
// contract.
func (s *socketAdapter) Removed() {
	_ = unix.Close(s.fd)
	clean := s.conn.ClosedCleanly()
	s.transport.Unbind()
	if !clean && s.react != nil {
		s.react.source.dispatchApplication(proto.NewApplicationEvent(proto.Disconnected, s.conn, nil, nil, nil, nil))
	}
}
