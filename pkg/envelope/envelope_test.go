package envelope_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/lenoxlabs/lenox/pkg/envelope"
)

func TestType_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  envelope.Type
		want bool
	}{
		{name: "text", typ: envelope.TypeText, want: true},
		{name: "visual", typ: envelope.TypeVisual, want: true},
		{name: "error", typ: envelope.TypeError, want: true},
		{name: "empty", typ: envelope.Type(""), want: false},
		{name: "unknown_tag", typ: envelope.Type("audio"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.typ.Valid(); got != tt.want {
				t.Errorf("Type(%q).Valid() = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	if e := envelope.Text("hello"); e.Type != envelope.TypeText || e.Content != "hello" {
		t.Errorf("Text() = %+v", e)
	}
	if e := envelope.Visual(`{"data":[]}`); e.Type != envelope.TypeVisual || e.Content != `{"data":[]}` {
		t.Errorf("Visual() = %+v", e)
	}
	e := envelope.Errorf("tool %s failed", "search")
	if e.Type != envelope.TypeError || e.Content != "tool search failed" {
		t.Errorf("Errorf() = %+v", e)
	}
	if !e.IsError() {
		t.Error("Errorf().IsError() = false, want true")
	}
	if envelope.Text("x").IsError() {
		t.Error("Text().IsError() = true, want false")
	}
}

func TestEnvelope_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(envelope.Text("hi"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"type":"text","content":"hi"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestEnvelope_MarshalJSON_InvalidType(t *testing.T) {
	t.Parallel()

	_, err := json.Marshal(envelope.Envelope{Type: "bogus", Content: "x"})
	if err == nil {
		t.Fatal("Marshal() with invalid type: want error, got nil")
	}
	if !strings.Contains(err.Error(), "invalid type") {
		t.Errorf("Marshal() error = %v, want mention of invalid type", err)
	}
}
