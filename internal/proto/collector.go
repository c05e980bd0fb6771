package proto

// Collector is a FIFO queue of engine-produced events, mirroring the
// `proton.Collector` external dependency spec.md assumes (§6): `peek`
// returns the oldest unconsumed event without removing it, `pop`
// discards it.
//
// Not safe for concurrent use — like every other engine object, a
// Collector is touched only by the reactor thread (see SPEC_FULL.md §5).
type Collector struct {
	events []Event
}

// Put appends an event; called internally by Connection/Session/Link/
// Delivery whenever a local or remote state transition occurs.
func (c *Collector) Put(ev Event) {
	c.events = append(c.events, ev)
}

// Peek returns the oldest queued event, or ok=false if the collector is
// empty.
func (c *Collector) Peek() (Event, bool) {
	if len(c.events) == 0 {
		return Event{}, false
	}
	return c.events[0], true
}

// Pop discards the oldest queued event. A no-op if the collector is
// empty.
func (c *Collector) Pop() {
	if len(c.events) == 0 {
		return
	}
	// avoid retaining references in the now-unused slot
	c.events[0] = Event{}
	c.events = c.events[1:]
}

// Empty reports whether there are no queued events.
func (c *Collector) Empty() bool {
	return len(c.events) == 0
}
