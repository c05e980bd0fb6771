package reactor

import (
	"container/heap"
	"time"

	"github.com/nimbusmq/reactor/internal/proto"
)

// timerEntry is one scheduled application event, ordered by deadline in
// timerHeap (spec.md §3 "Scheduled timer").
type timerEntry struct {
	deadline time.Time
	event    proto.Event
	index    int
}

type timerHeap []*timerEntry

func (h timerHeap) Len() int           { return len(h) }
func (h timerHeap) Less(i, j int) bool { return h[i].deadline.Before(h[j].deadline) }
func (h timerHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i]; h[i].index, h[j].index = i, j }
func (h *timerHeap) Push(x any)        { e := x.(*timerEntry); e.index = len(*h); *h = append(*h, e) }
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// EventSource owns the one proto.Collector shared by every connection
// this reactor drives, the dispatch chain those events are fed through,
// and the timer heap. It mirrors spec.md §4.5's EventSource/
// ScheduledEventSource pair collapsed into one type, since Go has no
// need for the Python subclassing split.
type EventSource struct {
	collector *proto.Collector
	handlers  []Handler
	timers    timerHeap
	metrics   *Metrics
}

func newEventSource() *EventSource {
	return &EventSource{collector: &proto.Collector{}}
}

// AddHandler appends a handler to the global dispatch chain, run in
// order for every event drained from the collector or the timer heap.
func (s *EventSource) AddHandler(h Handler) {
	s.handlers = append(s.handlers, h)
}

// Connection creates a new protocol connection bound to this source's
// shared collector (spec.md §4.5 `connection()`).
func (s *EventSource) Connection(containerID string) *proto.Connection {
	c := proto.NewConnection(containerID)
	c.Collect(s.collector)
	return c
}

// Schedule pushes a timer event to fire no earlier than deadline.
func (s *EventSource) Schedule(deadline time.Time, ev proto.Event) {
	heap.Push(&s.timers, &timerEntry{deadline: deadline, event: ev})
	if s.metrics != nil {
		s.metrics.TimersScheduled.Inc()
	}
}

// dispatchApplication feeds one synthetic (non-collector) event through
// the handler chain, e.g. a socket adapter's Disconnected event.
func (s *EventSource) dispatchApplication(ev proto.Event) {
	s.dispatch(ev)
}

func (s *EventSource) dispatch(ev proto.Event) {
	if s.metrics != nil {
		s.metrics.EventsDispatched.Inc()
	}
	for _, h := range s.handlers {
		h.Dispatch(ev)
	}
	// Per-endpoint Context handlers always get a chance after every
	// global handler has run (spec.md §6).
	scopedDispatcher.Dispatch(ev)
}

var scopedDispatcher = ScopedDispatcher{}

// Process drains every currently queued collector event and every timer
// whose deadline has passed, dispatching each through the handler
// chain. Handler side effects may enqueue more collector events; Process
// keeps draining until the collector is empty and no timer is due,
// matching spec.md §4.5. Timers whose deadline is still ahead stay queued.
func (s *EventSource) Process() {
	for {
		progressed := false
		for !s.collector.Empty() {
			ev, ok := s.collector.Peek()
			if !ok {
				break
			}
			s.collector.Pop()
			s.dispatch(ev)
			progressed = true
		}
		now := time.Now()
		for len(s.timers) > 0 && !s.timers[0].deadline.After(now) {
			e := heap.Pop(&s.timers).(*timerEntry)
			s.dispatch(e.event)
			progressed = true
		}
		if !progressed {
			return
		}
	}
}

// NextInterval returns the delay until the earliest pending timer, and
// false if no timer is scheduled.
func (s *EventSource) NextInterval() (time.Duration, bool) {
	if len(s.timers) == 0 {
		return 0, false
	}
	d := time.Until(s.timers[0].deadline)
	if d < 0 {
		d = 0
	}
	return d, true
}

// Empty reports whether both the collector and the timer heap are
// empty.
func (s *EventSource) Empty() bool {
	return s.collector.Empty() && len(s.timers) == 0
}
