package reactor

import (
	"golang.org/x/sys/unix"

	"github.com/nimbusmq/reactor/internal/debug"
	"github.com/nimbusmq/reactor/internal/proto"
)

// Acceptor is a non-blocking listening socket registered as a
// Selectable. Each accepted connection is wrapped in its own
// socketAdapter bound to a freshly minted protocol connection, and
// handed to the same reactor (spec.md §4.3).
type Acceptor struct {
	fd      int
	react   *Reactor
	onAccept func(*proto.Connection)
	closing  bool
}

// Listen opens a non-blocking listening socket on host:port and
// registers it with react. onAccept, if non-nil, is called with each
// newly accepted connection before it is opened, to attach a
// MessagingContext or per-connection context.
func Listen(react *Reactor, host string, port int, onAccept func(*proto.Connection)) (*Acceptor, error) {
	ips, err := lookupIPs(host)
	if err != nil {
		return nil, err
	}
	ip := ips[0]
	fd, err := unix.Socket(domainFor(ip), unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return nil, err
	}
	_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	if err := unix.Bind(fd, sockaddrFor(ip, port)); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}
	if err := unix.Listen(fd, 128); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}
	_ = unix.SetNonblock(fd, true)
	a := &Acceptor{fd: fd, react: react, onAccept: onAccept}
	react.addSelectable(a)
	return a, nil
}

func (a *Acceptor) Fd() int       { return a.fd }
func (a *Acceptor) Reading() bool { return !a.closing }
func (a *Acceptor) Writing() bool { return false }
func (a *Acceptor) Closed() bool  { return a.closing }

func (a *Acceptor) Readable() {
	nfd, _, err := unix.Accept4(a.fd, unix.SOCK_NONBLOCK)
	if err != nil {
		if err != unix.EAGAIN {
			debug.Log(1, "acceptor: accept error on fd %d: %v", a.fd, err)
		}
		return
	}
	conn := a.react.source.Connection("")
	transport := &proto.Transport{}
	transport.Bind(conn)
	sock := newSocketAdapter(nfd, transport, conn, a.react)
	a.react.addSelectable(sock)
	if a.onAccept != nil {
		a.onAccept(conn)
	}
}

func (a *Acceptor) Writable() {}

// Close marks the acceptor for removal on the next reactor sweep.
func (a *Acceptor) Close() { a.closing = true }

func (a *Acceptor) Removed() {
	_ = unix.Close(a.fd)
}
