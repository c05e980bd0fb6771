package proto

import (
	"bytes"
	"encoding/gob"

	"github.com/pkg/errors"
)

// Message is the external collaborator spec.md §6 names: `encode()`,
// `decode(bytes)`, `body`. Real AMQP message encoding (sections,
// annotations, header/properties) is out of scope (§1 Non-goals); Body
// is transported as a gob-encoded value, which is sufficient for every
// testable property and end-to-end scenario in spec.md §8.
type Message struct {
	Body any
}

func init() {
	// gob needs every concrete type that will flow through the Body
	// interface registered up front; these cover the JSON-ish shapes
	// used by every scenario in spec.md §8, plus the bare scalars a
	// handler might use directly as a message body.
	gob.Register(map[string]any{})
	gob.Register([]any{})
	gob.Register("")
	gob.Register(float64(0))
	gob.Register(int(0))
	gob.Register(false)
	gob.Register([]byte(nil))
}

// Encode serializes the message body for transfer.
func (m *Message) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&m.Body); err != nil {
		return nil, errors.Wrap(err, "proto: encode message")
	}
	return buf.Bytes(), nil
}

// Decode populates the message body from previously encoded bytes.
func (m *Message) Decode(b []byte) error {
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&m.Body); err != nil {
		return errors.Wrap(err, "proto: decode message")
	}
	return nil
}
