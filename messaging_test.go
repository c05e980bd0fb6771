package reactor

import (
	"testing"

	"github.com/nimbusmq/reactor/internal/proto"
)

func TestMessagingContextDefaultLinkNames(t *testing.T) {
	col := &proto.Collector{}
	conn := proto.NewConnection("c")
	conn.Collect(col)
	m := NewMessagingContext(nil, conn)

	if got := m.linkName("", "target", "source"); got != "target-source" {
		t.Fatalf("linkName = %q, want target-source", got)
	}
	if got := m.linkName("", "target", ""); got != "target" {
		t.Fatalf("linkName = %q, want target", got)
	}
	if got := m.linkName("explicit", "target", "source"); got != "explicit" {
		t.Fatalf("linkName = %q, want explicit", got)
	}
	if got := m.linkName("", "", ""); got != "temp" {
		t.Fatalf("linkName = %q, want temp", got)
	}
	if got := m.linkName("", "", ""); got != "temp-2" {
		t.Fatalf("second anonymous linkName = %q, want temp-2", got)
	}
}

func TestSenderDeliveryTagsAreMonotonicDecimalStartingAt1(t *testing.T) {
	col := &proto.Collector{}
	conn := proto.NewConnection("c")
	conn.Collect(col)
	sess := conn.Session()
	sess.Open()
	link := sess.Sender("s")
	link.Open()
	s := &Sender{Link: link}

	d1, err := s.SendMsg(proto.Message{Body: "a"})
	if err != nil {
		t.Fatalf("SendMsg: %v", err)
	}
	d2, err := s.SendMsg(proto.Message{Body: "b"})
	if err != nil {
		t.Fatalf("SendMsg: %v", err)
	}
	if string(d1.Tag) != "1" || string(d2.Tag) != "2" {
		t.Fatalf("tags = %q, %q, want 1, 2", d1.Tag, d2.Tag)
	}
}
