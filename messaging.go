package reactor

import (
	"fmt"
	"strconv"

	"github.com/nimbusmq/reactor/internal/proto"
)

// MessagingContext is the per-connection endpoint builder: it lazily
// allocates one session on first use and hands out Sender/Receiver
// wrappers over named links (spec.md §4.10).
type MessagingContext struct {
	react *Reactor
	conn  *proto.Connection
	sess  *proto.Session

	tempCounter int
}

// NewMessagingContext wraps conn (already created via Reactor.Connection)
// with the sender/receiver builder façade.
func NewMessagingContext(react *Reactor, conn *proto.Connection) *MessagingContext {
	return &MessagingContext{react: react, conn: conn}
}

// Connection returns the underlying protocol connection.
func (m *MessagingContext) Connection() *proto.Connection { return m.conn }

func (m *MessagingContext) session() *proto.Session {
	if m.sess == nil {
		m.sess = m.conn.Session()
		m.sess.Open()
	}
	return m.sess
}

// linkName resolves the Open Question #1 fallback: an explicit name
// wins, else "target-source" (whichever address(es) are non-empty),
// else "temp" disambiguated by a per-connection counter. See DESIGN.md.
func (m *MessagingContext) linkName(explicit, target, source string) string {
	if explicit != "" {
		return explicit
	}
	switch {
	case target != "" && source != "":
		return target + "-" + source
	case target != "":
		return target
	case source != "":
		return source
	}
	m.tempCounter++
	if m.tempCounter == 1 {
		return "temp"
	}
	return fmt.Sprintf("temp-%d", m.tempCounter)
}

// SenderOption configures Sender.
type SenderOption func(*senderConfig)

type senderConfig struct {
	source  string
	name    string
	handler any
}

func SenderSource(source string) SenderOption  { return func(c *senderConfig) { c.source = source } }
func SenderName(name string) SenderOption      { return func(c *senderConfig) { c.name = name } }
func SenderHandler(handler any) SenderOption   { return func(c *senderConfig) { c.handler = handler } }

// Sender wraps a sending proto.Link with delivery-tag generation and
// SendMsg, replacing the Python engine's method-rebinding trick with a
// thin owning wrapper (spec.md §9 design note).
type Sender struct {
	*proto.Link
	nextTag uint64
}

// Sender allocates (opening lazily) the session, then the named sending
// link to target.
func (m *MessagingContext) Sender(target string, opts ...SenderOption) *Sender {
	cfg := senderConfig{}
	for _, o := range opts {
		o(&cfg)
	}
	l := m.session().Sender(m.linkName(cfg.name, target, cfg.source))
	l.TargetAddr = target
	l.SourceAddr = cfg.source
	l.Context = cfg.handler
	l.Open()
	return &Sender{Link: l}
}

// DeliveryOption configures SendMsg.
type DeliveryOption func(*deliveryConfig)

type deliveryConfig struct {
	tag     []byte
	handler any
}

func DeliveryTag(tag []byte) DeliveryOption { return func(c *deliveryConfig) { c.tag = tag } }
func DeliveryHandler(handler any) DeliveryOption {
	return func(c *deliveryConfig) { c.handler = handler }
}

// SendMsg encodes msg, writes it as a new delivery, and advances the
// link. The default delivery tag is a monotonic decimal counter
// starting at "1" (spec.md §4.10, replacing the Python generator with a
// counter owned by this wrapper per §9's design note).
func (s *Sender) SendMsg(msg proto.Message, opts ...DeliveryOption) (*proto.Delivery, error) {
	cfg := deliveryConfig{}
	for _, o := range opts {
		o(&cfg)
	}
	tag := cfg.tag
	if tag == nil {
		s.nextTag++
		tag = []byte(strconv.FormatUint(s.nextTag, 10))
	}
	d := s.Delivery(tag)
	if cfg.handler != nil {
		d.Context = cfg.handler
	}
	b, err := msg.Encode()
	if err != nil {
		return nil, err
	}
	s.Send(b)
	s.Advance()
	return d, nil
}

// ReceiverOption configures Receiver.
type ReceiverOption func(*receiverConfig)

type receiverConfig struct {
	target  string
	name    string
	dynamic bool
	handler any
}

func ReceiverTarget(target string) ReceiverOption { return func(c *receiverConfig) { c.target = target } }
func ReceiverName(name string) ReceiverOption      { return func(c *receiverConfig) { c.name = name } }
func ReceiverDynamic(dynamic bool) ReceiverOption {
	return func(c *receiverConfig) { c.dynamic = dynamic }
}
func ReceiverHandler(handler any) ReceiverOption {
	return func(c *receiverConfig) { c.handler = handler }
}

// Receiver wraps a receiving proto.Link; nothing beyond the embedded
// link is needed since credit and message decoding are handled by
// FlowController and IncomingMessageHandler respectively.
type Receiver struct {
	*proto.Link
}

// Receiver allocates (opening lazily) the session, then the named
// receiving link from source.
func (m *MessagingContext) Receiver(source string, opts ...ReceiverOption) *Receiver {
	cfg := receiverConfig{}
	for _, o := range opts {
		o(&cfg)
	}
	l := m.session().Receiver(m.linkName(cfg.name, cfg.target, source))
	l.SourceAddr = source
	l.TargetAddr = cfg.target
	l.Dynamic = cfg.dynamic
	l.Context = cfg.handler
	l.Open()
	return &Receiver{Link: l}
}
