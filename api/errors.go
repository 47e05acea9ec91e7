package api

import "encoding/json"

// Kind classifies a request failure for the presentation layer.
type Kind int

const (
	// KindNetwork marks a transport-level failure: DNS, connect, timeout.
	KindNetwork Kind = iota + 1
	// KindUpstream marks a non-2xx response from the upstream API.
	KindUpstream
)

// Error is a displayable request failure. Message prefers the server-supplied
// message field over transport-level error text.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// serverMessage extracts a human-readable message from an upstream error body.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
