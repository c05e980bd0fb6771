package reactor

import "github.com/prometheus/client_golang/prometheus"

// Metrics exports reactor activity as Prometheus collectors: loop
// iterations, events dispatched, timers scheduled, reconnect attempts,
// and the live selectable count. Unlike the dispatch-pipeline handlers,
// none of these series line up one-to-one with an EventType a Handler
// can observe (a loop iteration and the live selectable count aren't
// events at all), so Metrics is a plain counter/gauge holder that
// Reactor, EventSource, and Connector call into directly rather than a
// Handler on the dispatch chain. Naming follows the literal
// fully-qualified Name idiom of the retrieved worker repo's metrics
// package (see DESIGN.md) rather than a Namespace-prefixed constructor.
type Metrics struct {
	// Iterations counts every pass through Reactor.Step.
	Iterations prometheus.Counter

	// EventsDispatched counts every event EventSource hands to the
	// dispatch pipeline, application and protocol alike.
	EventsDispatched prometheus.Counter

	// TimersScheduled counts every Schedule call, i.e. every timer
	// enqueued onto the reactor's heap.
	TimersScheduled prometheus.Counter

	// Reconnects counts every reconnect attempt Connector drives —
	// the initial dial from Connect/OnConnectionOpen doesn't count,
	// only attempts following a Disconnected or backoff timer.
	Reconnects prometheus.Counter

	// Selectables tracks the live selectable count after each
	// Reactor.Step quiesce pass.
	Selectables prometheus.Gauge
}

// NewMetrics constructs the metric set with the exact series names
// reactor operators expect to find.
func NewMetrics() *Metrics {
	return &Metrics{
		Iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reactor_iterations_total",
			Help: "Passes through the reactor's Step loop.",
		}),
		EventsDispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reactor_events_dispatched_total",
			Help: "Events handed to the dispatch pipeline.",
		}),
		TimersScheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reactor_timers_scheduled_total",
			Help: "Timers enqueued via Schedule.",
		}),
		Reconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reactor_reconnects_total",
			Help: "Reconnect attempts driven by Connector, excluding the initial dial.",
		}),
		Selectables: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "reactor_selectables",
			Help: "Live selectable count after the most recent quiesce pass.",
		}),
	}
}

// Collectors returns every metric so the caller can register them, e.g.
// with a prometheus.Registry or the default one.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Iterations, m.EventsDispatched, m.TimersScheduled, m.Reconnects, m.Selectables,
	}
}
