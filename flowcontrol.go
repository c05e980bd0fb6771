package reactor

import "github.com/nimbusmq/reactor/internal/proto"

// FlowController keeps every receiver's credit topped up to a fixed
// window W: on open, remote-open, flow, and each delivery, it grants
// W minus whatever credit the link currently has outstanding. Senders
// are untouched. Attach one globally per window size needed (spec.md
// §4.7; testable property 2, credit convergence).
//
// PerLinkWindow, if set, overrides Window on a per-link basis: a
// connection that mixes a bulk-transfer receiver against a
// control-channel receiver can hand each a different window instead of
// sharing one global value. The zero-value FlowController (PerLinkWindow
// unset) behaves identically to the flat single-window form.
type FlowController struct {
	Window uint32

	// PerLinkWindow, if non-nil, is consulted instead of Window for
	// every link topUp touches.
	PerLinkWindow func(l *proto.Link) uint32
}

func NewFlowController(window uint32) *FlowController {
	return &FlowController{Window: window}
}

func (f *FlowController) windowFor(l *proto.Link) uint32 {
	if f.PerLinkWindow != nil {
		return f.PerLinkWindow(l)
	}
	return f.Window
}

func (f *FlowController) topUp(l *proto.Link) {
	if l == nil || !l.IsReceiver {
		return
	}
	w := f.windowFor(l)
	if w > l.Credit {
		l.Flow(w - l.Credit)
	}
}

func (f *FlowController) OnLinkOpen(ev proto.Event)       { f.topUp(ev.Link) }
func (f *FlowController) OnLinkRemoteOpen(ev proto.Event) { f.topUp(ev.Link) }
func (f *FlowController) OnLinkFlow(ev proto.Event)       { f.topUp(ev.Link) }

func (f *FlowController) OnDelivery(ev proto.Event) {
	if ev.Delivery == nil {
		return
	}
	f.topUp(ev.Delivery.Link)
}

func (f *FlowController) Dispatch(ev proto.Event) { Dispatch(f, ev) }
