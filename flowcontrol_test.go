package reactor

import (
	"testing"

	"github.com/nimbusmq/reactor/internal/proto"
)

func TestFlowControllerTopsUpReceiverCredit(t *testing.T) {
	col := &proto.Collector{}
	conn := proto.NewConnection("c")
	conn.Collect(col)
	sess := conn.Session()
	sess.Open()
	receiver := sess.Receiver("r")
	receiver.Open()

	fc := NewFlowController(10)
	fc.OnLinkOpen(proto.NewApplicationEvent(proto.LinkOpen, nil, nil, receiver, nil, nil))

	if receiver.Credit != 10 {
		t.Fatalf("credit = %d, want 10", receiver.Credit)
	}

	// A partial top-up (simulating credit already partly consumed)
	// should top back up to the window, not add on top of it.
	receiver.Credit = 4
	fc.OnLinkFlow(proto.NewApplicationEvent(proto.LinkFlow, nil, nil, receiver, nil, nil))
	if receiver.Credit != 10 {
		t.Fatalf("credit after top-up = %d, want 10", receiver.Credit)
	}
}

func TestFlowControllerPerLinkWindowOverridesFlat(t *testing.T) {
	col := &proto.Collector{}
	conn := proto.NewConnection("c")
	conn.Collect(col)
	sess := conn.Session()
	sess.Open()

	bulk := sess.Receiver("bulk")
	bulk.Open()
	control := sess.Receiver("control")
	control.Open()

	fc := NewFlowController(10)
	fc.PerLinkWindow = func(l *proto.Link) uint32 {
		if l.Name == "control" {
			return 1
		}
		return 50
	}

	fc.OnLinkOpen(proto.NewApplicationEvent(proto.LinkOpen, nil, nil, bulk, nil, nil))
	fc.OnLinkOpen(proto.NewApplicationEvent(proto.LinkOpen, nil, nil, control, nil, nil))

	if bulk.Credit != 50 {
		t.Fatalf("bulk credit = %d, want 50", bulk.Credit)
	}
	if control.Credit != 1 {
		t.Fatalf("control credit = %d, want 1", control.Credit)
	}
}

func TestFlowControllerIgnoresSenders(t *testing.T) {
	col := &proto.Collector{}
	conn := proto.NewConnection("c")
	conn.Collect(col)
	sess := conn.Session()
	sess.Open()
	sender := sess.Sender("s")
	sender.Open()

	fc := NewFlowController(10)
	fc.OnLinkOpen(proto.NewApplicationEvent(proto.LinkOpen, nil, nil, sender, nil, nil))

	if sender.Credit != 0 {
		t.Fatalf("sender credit = %d, want untouched 0", sender.Credit)
	}
}
