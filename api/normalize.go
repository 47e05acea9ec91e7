package api

import (
	"encoding/json"
	"strings"
)

// Unwrap returns the logical inner payload of a one-level {success, data} envelope.
// Payload-only responses pass through untouched; upstream API versions differ on
// whether the envelope is present, and both forms must be accepted.
func Unwrap(raw json.RawMessage) json.RawMessage {
	var env struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return raw
	}
	if env.Data != nil {
		return env.Data
	}
	return raw
}

// objectFields decodes raw as a JSON object, or nil when raw is not an object.
func objectFields(raw json.RawMessage) map[string]json.RawMessage {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

// lookup walks a dot-separated path ("pageInfo.hasNextPage") through nested objects.
func lookup(raw json.RawMessage, path string) (json.RawMessage, bool) {
	current := raw
	for _, part := range strings.Split(path, ".") {
		m := objectFields(current)
		if m == nil {
			return nil, false
		}
		next, ok := m[part]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// PickList returns the first candidate key whose value decodes as a list of T.
// When raw itself is an array it is decoded directly. Absent or undecodable
// candidates all fall through to an empty slice, never an error: the upstream has
// shipped the same logical collection under several names over time and this
// layer stays tolerant of that.
func PickList[T any](raw json.RawMessage, candidates ...string) []T {
	decode := func(data json.RawMessage) ([]T, bool) {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil || items == nil {
			return nil, false
		}
		return items, true
	}

	if items, ok := decode(raw); ok {
		return items
	}

	for _, candidate := range candidates {
		value, ok := lookup(raw, candidate)
		if !ok {
			continue
		}
		if items, ok := decode(value); ok {
			return items
		}
	}

	return []T{}
}

// PickBool returns the first candidate path that decodes as a boolean, else false.
func PickBool(raw json.RawMessage, candidates ...string) bool {
	for _, candidate := range candidates {
		value, ok := lookup(raw, candidate)
		if !ok {
			continue
		}
		var b bool
		if err := json.Unmarshal(value, &b); err == nil {
			return b
		}
	}
	return false
}

// PickInt returns the first candidate path that decodes as an integer, else def.
func PickInt(raw json.RawMessage, def int, candidates ...string) int {
	for _, candidate := range candidates {
		value, ok := lookup(raw, candidate)
		if !ok {
			continue
		}
		var n int
		if err := json.Unmarshal(value, &n); err == nil {
			return n
		}
	}
	return def
}

// PickString returns the first candidate path that decodes as a non-empty string.
func PickString(raw json.RawMessage, candidates ...string) string {
	for _, candidate := range candidates {
		value, ok := lookup(raw, candidate)
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(value, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}
