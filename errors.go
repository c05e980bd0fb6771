package reactor

import "github.com/pkg/errors"

// Sentinel errors surfaced to blocking callers and, where useful,
// exported so global handlers can distinguish failure modes with
// errors.Is, matching the teacher's own sentinel-error style in
// link.go/sender.go (ErrLinkClosed-style values wrapped with
// github.com/pkg/errors at each layer that adds context).
var (
	// ErrConnectionClosed is returned to a BlockingConnection caller when
	// the remote peer closed the connection while the local half was
	// still ACTIVE (spec.md §4.13).
	ErrConnectionClosed = errors.New("reactor: connection closed by peer")

	// ErrDisconnected is returned to a BlockingConnection caller when the
	// underlying socket failed or the peer went away mid-pump, without a
	// clean protocol close.
	ErrDisconnected = errors.New("reactor: disconnected")

	// ErrNoAddress is returned by Connector.Connect and Config.Urls when
	// no address was supplied — spec.md §7's documented misuse case.
	ErrNoAddress = errors.New("reactor: no address supplied")

	// ErrAborted is returned by a blocking pump loop that observed the
	// reactor abort before its condition was satisfied.
	ErrAborted = errors.New("reactor: aborted before condition was met")
)

// Reject is raised by an IncomingMessageHandler's OnMessage to signal
// that the delivery should be disposed REJECTED instead of whatever
// auto_accept would otherwise do (spec.md §4.9, scenario S4). It is a
// distinguished error, not a generic failure: callers recover it with
// errors.As to decide disposition, not to log a failure.
type Reject struct {
	Reason string
}

func (r *Reject) Error() string {
	if r.Reason == "" {
		return "reactor: message rejected"
	}
	return "reactor: message rejected: " + r.Reason
}
