package result

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Invoke represents a code invocation result and is used by several RPC calls
// that invoke functions, scripts and generic bytecode.
type Invoke struct {
	State          string          `json:"state"`
	GasConsumed    int64           `json:"gasconsumed,string"`
	Script         []byte          `json:"script"`
	Stack          []Item          `json:"stack"`
	FaultException *string         `json:"exception"`
	Notifications  json.RawMessage `json:"notifications,omitempty"`
	Session        uuid.UUID       `json:"session,omitempty"`
}

// Item is a JSON-level representation of a VM stack item returned by the
// server. Interface-typed items (iterators) carry a server-side ID instead
// of a value.
type Item struct {
	Type      string          `json:"type"`
	Value     json.RawMessage `json:"value,omitempty"`
	Interface string          `json:"interface,omitempty"`
	ID        *uuid.UUID      `json:"id,omitempty"`
}

// IteratorID returns the server-side iterator ID of an InteropInterface item
// if there is one.
func (i Item) IteratorID() (uuid.UUID, bool) {
	if i.Type != "InteropInterface" || i.ID == nil {
		return uuid.UUID{}, false
	}
	return *i.ID, true
}
