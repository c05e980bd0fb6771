package reactor

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/nimbusmq/reactor/internal/proto"
)

func TestMetricsSeriesNames(t *testing.T) {
	m := NewMetrics()
	m.Iterations.Inc()
	m.EventsDispatched.Inc()
	m.EventsDispatched.Inc()
	m.TimersScheduled.Inc()
	m.Reconnects.Inc()
	m.Selectables.Set(3)

	want := map[string]float64{
		"reactor_iterations_total":        1,
		"reactor_events_dispatched_total": 2,
		"reactor_timers_scheduled_total":  1,
		"reactor_reconnects_total":        1,
		"reactor_selectables":             3,
	}
	for name, w := range want {
		var got float64
		switch name {
		case "reactor_iterations_total":
			got = testutil.ToFloat64(m.Iterations)
		case "reactor_events_dispatched_total":
			got = testutil.ToFloat64(m.EventsDispatched)
		case "reactor_timers_scheduled_total":
			got = testutil.ToFloat64(m.TimersScheduled)
		case "reactor_reconnects_total":
			got = testutil.ToFloat64(m.Reconnects)
		case "reactor_selectables":
			got = testutil.ToFloat64(m.Selectables)
		}
		if got != w {
			t.Fatalf("%s = %v, want %v", name, got, w)
		}
	}
}

func TestReactorStepInstrumentsIterationsAndSelectables(t *testing.T) {
	react := New()
	m := NewMetrics()
	react.UseMetrics(m)
	m.Selectables.Set(7) // stale value Step must overwrite

	if _, err := react.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := testutil.ToFloat64(m.Iterations); got != 1 {
		t.Fatalf("Iterations after one Step = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Selectables); got != 0 {
		t.Fatalf("Selectables after one Step on an empty reactor = %v, want 0", got)
	}
}

func TestEventSourceInstrumentsSchedule(t *testing.T) {
	s := newEventSource()
	m := NewMetrics()
	s.metrics = m

	s.Schedule(time.Now(), proto.NewApplicationEvent(proto.Timer, nil, nil, nil, nil, nil))
	if got := testutil.ToFloat64(m.TimersScheduled); got != 1 {
		t.Fatalf("TimersScheduled after one Schedule = %v, want 1", got)
	}
}
