package reactor

import (
	"testing"

	"github.com/nimbusmq/reactor/internal/proto"
)

type orderRecorder struct {
	name  string
	order *[]string
}

func (o orderRecorder) OnDelivery(ev proto.Event) { *o.order = append(*o.order, o.name) }
func (o orderRecorder) Dispatch(ev proto.Event)   { Dispatch(o, ev) }

func TestScopedDispatcherVisitsFinestToCoarsest(t *testing.T) {
	col := &proto.Collector{}
	conn := proto.NewConnection("c")
	conn.Collect(col)
	sess := conn.Session()
	sess.Open()
	link := sess.Sender("s")
	link.Open()
	d := link.Delivery([]byte("t"))

	var order []string
	d.Context = orderRecorder{name: "delivery", order: &order}
	link.Context = orderRecorder{name: "link", order: &order}
	sess.Context = orderRecorder{name: "session", order: &order}
	conn.Context = orderRecorder{name: "connection", order: &order}

	ev := proto.NewApplicationEvent(proto.Delivery_, nil, nil, nil, d, nil)
	ScopedDispatcher{}.Dispatch(ev)

	want := []string{"delivery", "link", "session", "connection"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
