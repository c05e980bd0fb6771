package reactor

import (
	"testing"

	"github.com/nimbusmq/reactor/internal/proto"
)

func TestIncomingMessageHandlerAutoAccepts(t *testing.T) {
	col := &proto.Collector{}
	conn := proto.NewConnection("c")
	conn.Collect(col)
	sess := conn.Session()
	sess.Open()
	receiver := sess.Receiver("r")
	receiver.Open()

	msg := proto.Message{Body: map[string]any{"sequence": 0}}
	b, err := msg.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	d := receiver.Delivery([]byte("t"))
	receiver.Send(b)
	d.Pending = len(b)
	d.Readable = true

	var gotSeq any
	h := &IncomingMessageHandler{
		OnMessageFunc: func(ev proto.Event) error {
			body := ev.Message.Body.(map[string]any)
			gotSeq = body["sequence"]
			return nil
		},
	}
	h.OnDelivery(proto.NewApplicationEvent(proto.Delivery_, nil, nil, nil, d, nil))

	if gotSeq != 0 {
		t.Fatalf("OnMessage saw sequence %v, want 0", gotSeq)
	}
	if d.LocalState != proto.StateAccepted || !d.Settled {
		t.Fatalf("delivery not auto-accepted: state=%v settled=%v", d.LocalState, d.Settled)
	}
}

func TestIncomingMessageHandlerRejectWinsOverAutoAccept(t *testing.T) {
	col := &proto.Collector{}
	conn := proto.NewConnection("c")
	conn.Collect(col)
	sess := conn.Session()
	sess.Open()
	receiver := sess.Receiver("r")
	receiver.Open()

	msg := proto.Message{Body: map[string]any{"sequence": 0}}
	b, _ := msg.Encode()
	d := receiver.Delivery([]byte("t"))
	receiver.Send(b)
	d.Pending = len(b)
	d.Readable = true

	h := &IncomingMessageHandler{
		OnMessageFunc: func(ev proto.Event) error {
			return &Reject{Reason: "nope"}
		},
	}
	h.OnDelivery(proto.NewApplicationEvent(proto.Delivery_, nil, nil, nil, d, nil))

	if d.LocalState != proto.StateRejected || !d.Settled {
		t.Fatalf("expected REJECTED+settled, got state=%v settled=%v", d.LocalState, d.Settled)
	}
}
