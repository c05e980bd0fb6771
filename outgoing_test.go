package reactor

import (
	"testing"

	"github.com/nimbusmq/reactor/internal/proto"
)

func TestOutgoingMessageHandlerAutoSettlesOnce(t *testing.T) {
	col := &proto.Collector{}
	conn := proto.NewConnection("c")
	conn.Collect(col)
	sess := conn.Session()
	sess.Open()
	sender := sess.Sender("s")
	sender.Open()

	d := sender.Delivery([]byte("tag"))
	sender.Advance()

	var accepted int
	h := &OutgoingMessageHandler{
		OnAcceptedFunc: func(proto.Event) { accepted++ },
	}

	d.RemoteState = proto.StateAccepted
	d.Settled = true
	d.Updated = true

	ev := proto.NewApplicationEvent(proto.Delivery_, nil, nil, nil, d, nil)
	h.OnDelivery(ev)
	if accepted != 1 {
		t.Fatalf("OnAccepted fired %d times, want 1", accepted)
	}
	if !d.AutoSettled() {
		t.Fatalf("delivery was not marked auto-settled")
	}

	// A second update (e.g. a duplicate disposition echo) must not fire
	// OnAccepted again.
	d.Updated = true
	h.OnDelivery(ev)
	if accepted != 1 {
		t.Fatalf("OnAccepted fired again after auto-settle: count=%d", accepted)
	}
}

func TestOutgoingMessageHandlerDistinguishesOutcomes(t *testing.T) {
	col := &proto.Collector{}
	conn := proto.NewConnection("c")
	conn.Collect(col)
	sess := conn.Session()
	sess.Open()
	sender := sess.Sender("s")
	sender.Open()

	var rejected, accepted int
	h := &OutgoingMessageHandler{
		OnAcceptedFunc: func(proto.Event) { accepted++ },
		OnRejectedFunc: func(proto.Event) { rejected++ },
	}

	d := sender.Delivery([]byte("tag"))
	sender.Advance()
	d.RemoteState = proto.StateRejected
	d.Updated = true

	h.OnDelivery(proto.NewApplicationEvent(proto.Delivery_, nil, nil, nil, d, nil))
	if rejected != 1 || accepted != 0 {
		t.Fatalf("rejected=%d accepted=%d, want 1,0", rejected, accepted)
	}
}
