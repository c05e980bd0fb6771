// Package reactor implements a single-threaded, cooperative, event-driven
// runtime for AMQP 1.0 client connections: readiness-multiplexed non-blocking
// sockets, a layered event dispatch pipeline, and the messaging-lifecycle
// conveniences (handshaking, flow control, reconnection, a blocking
// adapter) built on top of it.
package reactor

import (
	"time"

	"github.com/nimbusmq/reactor/internal/proto"
)

// DefaultTimeout bounds how long one reactor iteration blocks in its
// readiness wait when no timer is sooner (spec.md §4.11 step 4).
const DefaultTimeout = 3 * time.Second

// Reactor is the single-threaded cooperative scheduler: it owns every
// Selectable (sockets, acceptors, injectors) and the EventSource that
// feeds protocol and application events through the dispatch chain.
// Mirrors spec.md §4.11.
type Reactor struct {
	source         *EventSource
	selectables    []Selectable
	poll           *pollSet
	aborted        bool
	DefaultTimeout time.Duration
	metrics        *Metrics
}

// New constructs an idle Reactor with an empty selectable set. Every
// event it drains reaches global handlers added with AddHandler, in the
// order added, followed by a ScopedDispatcher visiting the event's
// per-endpoint Context chain (spec.md §6, "attach handlers ... globally
// ... per-endpoint ... or both").
func New() *Reactor {
	return &Reactor{
		source:         newEventSource(),
		poll:           newPollSet(),
		DefaultTimeout: DefaultTimeout,
	}
}

// AddHandler appends a global handler to the dispatch chain.
func (r *Reactor) AddHandler(h Handler) {
	r.source.AddHandler(h)
}

// UseMetrics attaches m so Step and the underlying EventSource report
// reactor_iterations_total, reactor_events_dispatched_total,
// reactor_timers_scheduled_total, and reactor_selectables.
func (r *Reactor) UseMetrics(m *Metrics) {
	r.metrics = m
	r.source.metrics = m
}

// Connection creates a new protocol connection bound to this reactor's
// shared collector (spec.md §4.5 `connection()`).
func (r *Reactor) Connection(containerID string) *proto.Connection {
	return r.source.Connection(containerID)
}

// Schedule dispatches ev no earlier than now+delay (spec.md §4.5
// `schedule`).
func (r *Reactor) Schedule(delay time.Duration, ev proto.Event) {
	r.source.Schedule(time.Now().Add(delay), ev)
}

// Abort causes Run to return at the next iteration boundary, callable
// from any handler (spec.md §4.11, §5).
func (r *Reactor) Abort() { r.aborted = true }

func (r *Reactor) addSelectable(s Selectable) {
	r.selectables = append(r.selectables, s)
}

// Run drives the reactor loop until Abort is called or both the event
// source and the selectable set go empty (spec.md §4.11).
func (r *Reactor) Run() error {
	for {
		done, err := r.Step()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Step runs exactly one reactor iteration: drain events, quiesce closed
// selectables, and block in one readiness wait. Returns done=true when
// the reactor would stop (aborted, or nothing left to do). BlockingConnection
// drives the same reactor one Step at a time, pumping only until its own
// condition is satisfied (spec.md §4.13).
func (r *Reactor) Step() (done bool, err error) {
	if r.metrics != nil {
		r.metrics.Iterations.Inc()
	}

	r.source.Process()
	if r.aborted {
		return true, nil
	}

	for r.quiesce() {
	}
	if r.metrics != nil {
		r.metrics.Selectables.Set(float64(len(r.selectables)))
	}

	if r.source.Empty() && len(r.selectables) == 0 {
		return true, nil
	}

	timeout := r.DefaultTimeout
	if d, ok := r.source.NextInterval(); ok && d < timeout {
		timeout = d
	}

	r.poll.reset()
	for _, s := range r.selectables {
		r.poll.add(s)
	}
	if _, err := r.poll.wait(timeout); err != nil {
		return true, err
	}
	return false, nil
}

// quiesce removes every selectable that reports Closed, calling Removed
// on each, and reports whether it removed anything (callers loop until
// false, since Removed can itself close other selectables).
func (r *Reactor) quiesce() bool {
	removedAny := false
	kept := r.selectables[:0]
	for _, s := range r.selectables {
		if s.Closed() {
			s.Removed()
			removedAny = true
			continue
		}
		kept = append(kept, s)
	}
	r.selectables = kept
	return removedAny
}
