package reactor

import (
	"sync"

	"golang.org/x/sys/unix"

	"github.com/nimbusmq/reactor/internal/proto"
)

// Injector is the reactor's cross-thread trigger: any goroutine can call
// Trigger to enqueue an application event and wake the reactor, safe to
// call concurrently with the reactor loop itself (spec.md §4.4,
// scenario S5). It is a Selectable backed by a self-pipe: writing a
// single byte wakes Poll; the reactor drains the pipe and the queue on
// readiness.
type Injector struct {
	mu     sync.Mutex
	queue  []proto.Event
	react  *Reactor
	rfd    int
	wfd    int
	closed bool
}

// NewInjector creates a self-pipe-backed injector and registers it with
// react.
func NewInjector(react *Reactor) (*Injector, error) {
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		return nil, err
	}
	_ = unix.SetNonblock(fds[0], true)
	_ = unix.SetNonblock(fds[1], true)
	inj := &Injector{react: react, rfd: fds[0], wfd: fds[1]}
	react.addSelectable(inj)
	return inj, nil
}

// Trigger enqueues ev and wakes the reactor. Safe from any goroutine.
func (i *Injector) Trigger(ev proto.Event) {
	i.mu.Lock()
	i.queue = append(i.queue, ev)
	i.mu.Unlock()
	var b [1]byte
	_, _ = unix.Write(i.wfd, b[:])
}

// Close marks the injector for removal once its queue drains.
func (i *Injector) Close() {
	i.mu.Lock()
	i.closed = true
	i.mu.Unlock()
}

func (i *Injector) Fd() int       { return i.rfd }
func (i *Injector) Reading() bool { return true }
func (i *Injector) Writing() bool { return false }

func (i *Injector) Closed() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.closed && len(i.queue) == 0
}

func (i *Injector) Readable() {
	var buf [64]byte
	for {
		_, err := unix.Read(i.rfd, buf[:])
		if err != nil {
			break
		}
	}
	i.mu.Lock()
	pending := i.queue
	i.queue = nil
	i.mu.Unlock()
	for _, ev := range pending {
		i.react.source.dispatchApplication(ev)
	}
}

func (i *Injector) Writable() {}

func (i *Injector) Removed() {
	_ = unix.Close(i.rfd)
	_ = unix.Close(i.wfd)
}
