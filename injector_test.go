package reactor

import (
	"testing"
	"time"

	"github.com/fortytw2/leaktest"

	"github.com/nimbusmq/reactor/internal/proto"
)

type wakeHandler struct {
	got chan proto.Event
}

func (w *wakeHandler) Dispatch(ev proto.Event) {
	if ev.Type == proto.Timer {
		w.got <- ev
	}
}

func TestInjectorWakesReactorFromAnotherGoroutine(t *testing.T) {
	defer leaktest.Check(t)()

	react := New()
	react.DefaultTimeout = 50 * time.Millisecond

	w := &wakeHandler{got: make(chan proto.Event, 1)}
	react.AddHandler(w)

	inj, err := NewInjector(react)
	if err != nil {
		t.Fatalf("NewInjector: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- react.Run() }()

	go func() {
		time.Sleep(10 * time.Millisecond)
		inj.Trigger(proto.NewApplicationEvent(proto.Timer, nil, nil, nil, nil, "wake"))
		inj.Close()
	}()

	select {
	case ev := <-w.got:
		if ev.Subject != "wake" {
			t.Fatalf("subject = %v, want wake", ev.Subject)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for injected event")
	}

	react.Abort()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reactor did not stop after Abort")
	}
}
