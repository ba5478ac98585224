// Package envelope defines the normalized response contract returned by
// every dispatch. Callers (HTTP layer, socket layer, CLI) consume only
// this type; it serializes directly to JSON.
package envelope

import (
	"encoding/json"
	"fmt"
)

// Type discriminates the three kinds of dispatch result.
type Type string

// Type constants for dispatch results.
const (
	TypeText   Type = "text"
	TypeVisual Type = "visual"
	TypeError  Type = "error"
)

// Valid reports whether t is one of the three declared type tags.
func (t Type) Valid() bool {
	switch t {
	case TypeText, TypeVisual, TypeError:
		return true
	}
	return false
}

// Envelope is the single result shape produced by the dispatcher.
// Content is plain text for TypeText and TypeError; for TypeVisual it
// carries an opaque serialized chart document.
type Envelope struct {
	Type    Type   `json:"type"`
	Content string `json:"content"`
}

// Text wraps plain text content.
func Text(content string) Envelope {
	return Envelope{Type: TypeText, Content: content}
}

// Visual wraps a serialized chart document.
func Visual(content string) Envelope {
	return Envelope{Type: TypeVisual, Content: content}
}

// Errorf builds an error envelope from a format string. The resulting
// content is a short diagnostic sentence, never a stack trace.
func Errorf(format string, args ...any) Envelope {
	return Envelope{Type: TypeError, Content: fmt.Sprintf(format, args...)}
}

// IsError reports whether the envelope conveys a failure.
func (e Envelope) IsError() bool {
	return e.Type == TypeError
}

// MarshalJSON validates the envelope before serializing it, so a
// malformed envelope can never cross the process boundary silently.
func (e Envelope) MarshalJSON() ([]byte, error) {
	if !e.Type.Valid() {
		return nil, fmt.Errorf("envelope: invalid type %q", string(e.Type))
	}
	type wire Envelope
	return json.Marshal(wire(e))
}
