package reactor

import (
	"testing"

	"github.com/nimbusmq/reactor/internal/proto"
)

func TestHandshakerMirrorsRemoteOpenAndClose(t *testing.T) {
	col := &proto.Collector{}
	conn := proto.NewConnection("c")
	conn.Collect(col)

	h := Handshaker{}

	// Connection: remote opens first; handshaker should open locally.
	h.OnConnectionRemoteOpen(proto.NewApplicationEvent(proto.ConnectionRemoteOpen, conn, nil, nil, nil, nil))
	if conn.State&proto.LocalActive == 0 {
		t.Fatalf("handshaker did not open local half on remote open: %v", conn.State)
	}

	// Remote closes; handshaker should close locally since local isn't
	// already closed.
	h.OnConnectionRemoteClose(proto.NewApplicationEvent(proto.ConnectionRemoteClose, conn, nil, nil, nil, nil))
	if conn.State&proto.LocalClosed == 0 {
		t.Fatalf("handshaker did not close local half on remote close: %v", conn.State)
	}
}

func TestHandshakerDoesNotReopenAlreadyActive(t *testing.T) {
	col := &proto.Collector{}
	conn := proto.NewConnection("c")
	conn.Collect(col)
	conn.Open() // application already opened locally

	h := Handshaker{}
	h.OnConnectionRemoteOpen(proto.NewApplicationEvent(proto.ConnectionRemoteOpen, conn, nil, nil, nil, nil))

	// Should not panic or double-enqueue; local state remains ACTIVE.
	if conn.State&proto.LocalActive == 0 {
		t.Fatalf("expected local half to remain ACTIVE, got %v", conn.State)
	}
}

// TestHandshakerLinkAddressAdoption covers both halves of spec.md §4.6's
// address-copy contract: a link the application already opened with its
// own addresses must keep them, while a peer-initiated link (still
// LocalUninit) inherits the peer's declared addresses.
func TestHandshakerLinkAddressAdoption(t *testing.T) {
	col := &proto.Collector{}
	conn := proto.NewConnection("c")
	conn.Collect(col)
	sess := conn.Session()
	sess.Open()

	h := Handshaker{}

	appOpened := sess.Sender("already-open")
	appOpened.TargetAddr = "my-target"
	appOpened.Open()
	appOpened.RemoteSourceAddr = "peer-source"
	appOpened.RemoteTargetAddr = "peer-target"
	h.OnLinkRemoteOpen(proto.NewApplicationEvent(proto.LinkRemoteOpen, nil, nil, appOpened, nil, nil))
	if appOpened.TargetAddr != "my-target" {
		t.Fatalf("handshaker overwrote an app-chosen address: %q", appOpened.TargetAddr)
	}

	peerInitiated := sess.Receiver("auto-created")
	peerInitiated.RemoteSourceAddr = "peer-source"
	peerInitiated.RemoteTargetAddr = "peer-target"
	h.OnLinkRemoteOpen(proto.NewApplicationEvent(proto.LinkRemoteOpen, nil, nil, peerInitiated, nil, nil))
	if peerInitiated.SourceAddr != "peer-source" || peerInitiated.TargetAddr != "peer-target" {
		t.Fatalf("handshaker did not adopt peer addresses on an uninitialized link: source=%q target=%q",
			peerInitiated.SourceAddr, peerInitiated.TargetAddr)
	}
}
