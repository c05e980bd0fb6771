package reactor

import (
	"net"
	"testing"
	"time"

	"github.com/nimbusmq/reactor/internal/proto"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("freePort: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

// TestEchoScenario exercises SPEC_FULL.md's S1 end to end: a loopback
// acceptor with a handshaker and a flow controller(10) accepts one
// client; the client opens a sender to "q" and sends {sequence: 0}; the
// server's receiver observes it; the sender's OnAccepted fires exactly
// once; both sides close cleanly.
func TestEchoScenario(t *testing.T) {
	port := freePort(t)

	react := New()
	react.DefaultTimeout = 50 * time.Millisecond
	react.AddHandler(Handshaker{})
	react.AddHandler(NewFlowController(10))

	received := make(chan map[string]any, 1)
	incoming := &IncomingMessageHandler{
		OnMessageFunc: func(ev proto.Event) error {
			received <- ev.Message.Body.(map[string]any)
			return nil
		},
	}

	if _, err := Listen(react, "127.0.0.1", port, func(conn *proto.Connection) {
		conn.Context = &serverCtx{incoming: incoming}
	}); err != nil {
		t.Fatalf("Listen: %v", err)
	}

	client, err := Dial(react, Url{Host: "127.0.0.1", Port: port}, "client")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}

	sender, err := client.Sender("q")
	if err != nil {
		t.Fatalf("Sender: %v", err)
	}
	var accepted int
	sender.Context = &OutgoingMessageHandler{
		OnAcceptedFunc: func(proto.Event) { accepted++ },
	}

	if err := client.SendMsg(sender, proto.Message{Body: map[string]any{"sequence": 0}}); err != nil {
		t.Fatalf("SendMsg: %v", err)
	}

	select {
	case body := <-received:
		if body["sequence"] != 0 {
			t.Fatalf("server received %v, want sequence 0", body)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server never received the message")
	}

	if accepted != 1 {
		t.Fatalf("OnAccepted fired %d times, want exactly 1", accepted)
	}

	sender.Close()
	if err := client.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

type serverCtx struct {
	incoming *IncomingMessageHandler
}

func (c *serverCtx) OnLinkInit(ev proto.Event) {
	if ev.Link != nil && ev.Link.IsReceiver {
		ev.Link.Context = c.incoming
	}
}

func (c *serverCtx) Dispatch(ev proto.Event) { Dispatch(c, ev) }
