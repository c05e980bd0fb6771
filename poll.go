package reactor

import (
	"time"

	"golang.org/x/sys/unix"
)

// pollSet computes the (reading, writing) pollfd array for one reactor
// iteration and blocks in unix.Poll for up to timeout, mirroring Python's
// select.select(reading, writing, [], timeout) (spec.md §4.11 step 5).
// A single Poll call, rather than separate epoll/kqueue-backed pollers,
// keeps one implementation working across Linux/Darwin/BSD — the same
// tradeoff core/eventloop.go in the retrieved pack makes with its own
// netpoll abstraction, just collapsed to the portable syscall.
type pollSet struct {
	fds  []unix.PollFd
	byFd map[int]Selectable
}

func newPollSet() *pollSet {
	return &pollSet{byFd: make(map[int]Selectable)}
}

func (p *pollSet) reset() {
	p.fds = p.fds[:0]
	for k := range p.byFd {
		delete(p.byFd, k)
	}
}

func (p *pollSet) add(s Selectable) {
	var events int16
	if s.Reading() {
		events |= unix.POLLIN
	}
	if s.Writing() {
		events |= unix.POLLOUT
	}
	if events == 0 {
		return
	}
	p.fds = append(p.fds, unix.PollFd{Fd: int32(s.Fd()), Events: events})
	p.byFd[s.Fd()] = s
}

// wait blocks until a descriptor is ready or timeout elapses, then
// invokes Readable/Writable on every ready participant. Returns the
// number of ready descriptors (0 on timeout).
func (p *pollSet) wait(timeout time.Duration) (int, error) {
	if len(p.fds) == 0 {
		// unix.Poll with an empty set still sleeps for the timeout, which
		// is exactly what we want when there's nothing to watch but
		// timers are pending.
		time.Sleep(timeout)
		return 0, nil
	}
	ms := int(timeout / time.Millisecond)
	if timeout > 0 && ms == 0 {
		ms = 1
	}
	n, err := unix.Poll(p.fds, ms)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, err
	}
	for _, pfd := range p.fds {
		if pfd.Revents == 0 {
			continue
		}
		s := p.byFd[int(pfd.Fd)]
		if s == nil {
			continue
		}
		if pfd.Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0 {
			s.Readable()
		}
		if pfd.Revents&unix.POLLOUT != 0 {
			s.Writable()
		}
	}
	return n, nil
}
