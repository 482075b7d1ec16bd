package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveNetworkState(t *testing.T) {
	tests := []struct {
		name       string
		organizers any
		expected   string
	}{
		{"nil", nil, UnknownLabel},
		{"empty string", "", UnknownLabel},
		{"blank string", "   ", UnknownLabel},
		{"empty JSON array", "[]", UnknownLabel},
		{"JSON empty string", `""`, UnknownLabel},
		{"JSON array of one object", `[{"name":"Network School"}]`, "Network School"},
		{"last element wins", `[{"name":"Host"},{"name":"  Edge City "}]`, "Edge City"},
		{"JSON array of strings", `["Host", "Zuzalu"]`, "Zuzalu"},
		{"last object without name", `[{"name":"Host"},{"id":3}]`, UnknownLabel},
		{"last object with blank name", `[{"name":"Host"},{"name":"  "}]`, UnknownLabel},
		{"last element is a number", `["Host", 42]`, UnknownLabel},
		{"JSON object", `{"name":"Network School"}`, UnknownLabel},
		{"JSON string value", `"  Praxis "`, "Praxis"},
		{"invalid JSON falls back to raw string", "not json {", "not json {"},
		{"truncated JSON array falls back to raw string", ` [{"name": `, `[{"name":`},
		{"plain string", "  Cabin  ", "Cabin"},
		{"decoded slice of any", []any{map[string]any{"name": "A"}, map[string]any{"name": "B"}}, "B"},
		{"decoded empty slice", []any{}, UnknownLabel},
		{"string slice", []string{"A", " B "}, "B"},
		{"organizer slice", []Organizer{{Name: "A"}, {Name: "Network School"}}, "Network School"},
		{"map slice", []map[string]any{{"name": "Vitalia"}}, "Vitalia"},
		{"unsupported type", 12, UnknownLabel},
		{"raw JSON from jsonb", json.RawMessage(`[{"name":"Infinita"}]`), "Infinita"},
		{"raw JSON null", json.RawMessage(`null`), UnknownLabel},
		{"raw JSON empty", json.RawMessage(nil), UnknownLabel},
		{"raw JSON string holding an encoded list", json.RawMessage(`"[{\"name\":\"Logos\"}]"`), "Logos"},
		{"raw bytes", []byte(`["Crecimiento"]`), "Crecimiento"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.expected, ResolveNetworkState(tt.organizers))
			})
		})
	}
}

func TestResolveNetworkState_DoublyEncoded(t *testing.T) {
	list, err := json.Marshal([]Organizer{{Name: "X"}, {Name: "Y"}})
	assert.NoError(t, err)
	encoded, err := json.Marshal(string(list))
	assert.NoError(t, err)

	assert.Equal(t, "Y", ResolveNetworkState(string(encoded)))
	assert.Equal(t, "Y", ResolveNetworkState(json.RawMessage(encoded)))
	assert.Equal(t, "Y", ResolveNetworkState(encoded))

	t.Run("encoded plain name", func(t *testing.T) {
		assert.Equal(t, "Cabin", ResolveNetworkState(`""Cabin""`))
		assert.Equal(t, "Cabin", ResolveNetworkState(json.RawMessage(`""Cabin""`)))
	})
}

func TestResolveNetworkState_LastElementProperty(t *testing.T) {
	lists := [][]string{
		{"Network School"},
		{"A", "B", "C"},
		{" padded ", "  last  "},
	}
	for _, names := range lists {
		organizers := make([]Organizer, len(names))
		for i, n := range names {
			organizers[i] = Organizer{Name: n}
		}
		encoded, err := json.Marshal(organizers)
		assert.NoError(t, err)

		want := nonBlankOrUnknown(names[len(names)-1])
		assert.Equal(t, want, ResolveNetworkState(string(encoded)))
		assert.Equal(t, want, ResolveNetworkState(json.RawMessage(encoded)))
		assert.Equal(t, want, ResolveNetworkState(organizers))
	}
}
