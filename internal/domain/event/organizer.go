package event

import (
	"encoding/json"
	"strings"
)

// UnknownLabel is the fallback for unresolvable network state and country
const UnknownLabel = "Unknown"

// ResolveNetworkState derives the network-state label from an organizers
// value. Providers list the network state as the last organizer; that
// convention is isolated here.
//
// Accepted shapes: nil, a string (plain or JSON-encoded), raw JSON bytes as
// read from the jsonb column, or an already decoded list of organizers.
// The function never fails; anything it cannot read yields UnknownLabel,
// except a JSON-looking string that does not parse, which is returned trimmed.
//
// A JSON string is unwrapped and resolved again, whichever Go type carried
// it, so a doubly encoded list resolves to its last organizer's name.
func ResolveNetworkState(organizers any) string {
	switch v := organizers.(type) {
	case nil:
		return UnknownLabel
	case string:
		return resolveString(v)
	case json.RawMessage:
		return resolveBytes(v)
	case []byte:
		return resolveBytes(v)
	default:
		return resolveValue(v)
	}
}

func resolveBytes(b []byte) string {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "" {
		return UnknownLabel
	}
	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return trimmed
	}
	// A jsonb string may itself hold an encoded list.
	if s, ok := decoded.(string); ok {
		return resolveString(s)
	}
	return resolveValue(decoded)
}

func resolveString(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return UnknownLabel
	}
	if !looksLikeJSON(trimmed) {
		return trimmed
	}
	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return trimmed
	}
	if inner, ok := decoded.(string); ok {
		return resolveString(inner)
	}
	return resolveValue(decoded)
}

func looksLikeJSON(s string) bool {
	switch s[0] {
	case '[', '{', '"':
		return true
	}
	return false
}

func resolveValue(v any) string {
	switch val := v.(type) {
	case string:
		return nonBlankOrUnknown(val)
	case []any:
		if len(val) == 0 {
			return UnknownLabel
		}
		return resolveOrganizer(val[len(val)-1])
	case []string:
		if len(val) == 0 {
			return UnknownLabel
		}
		return nonBlankOrUnknown(val[len(val)-1])
	case []Organizer:
		if len(val) == 0 {
			return UnknownLabel
		}
		return nonBlankOrUnknown(val[len(val)-1].Name)
	case []map[string]any:
		if len(val) == 0 {
			return UnknownLabel
		}
		return resolveOrganizer(val[len(val)-1])
	}
	return UnknownLabel
}

func resolveOrganizer(v any) string {
	switch o := v.(type) {
	case string:
		return nonBlankOrUnknown(o)
	case map[string]any:
		if name, ok := o["name"].(string); ok {
			return nonBlankOrUnknown(name)
		}
	case Organizer:
		return nonBlankOrUnknown(o.Name)
	case *Organizer:
		if o != nil {
			return nonBlankOrUnknown(o.Name)
		}
	}
	return UnknownLabel
}

func nonBlankOrUnknown(s string) string {
	if trimmed := strings.TrimSpace(s); trimmed != "" {
		return trimmed
	}
	return UnknownLabel
}
