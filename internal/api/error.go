package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Machine error codes for failures that never reached the server.
const (
	// CodeNetwork means the request was sent but no response arrived.
	CodeNetwork = "network"

	// CodeTimeout means the request deadline expired.
	CodeTimeout = "timeout"

	// CodeRequest means the request could not be built or the response
	// could not be decoded locally.
	CodeRequest = "request"
)

// Error is the normalized error shape for every request client failure.
// Exactly one of three classes applies: server-returned (Status > 0),
// network (CodeNetwork/CodeTimeout), or local request construction
// (CodeRequest).
type Error struct {
	// Message is human-readable and safe to show to the user.
	Message string

	// Status is the HTTP status code, 0 when no response was received.
	Status int

	// Code is a machine error code for non-server failures.
	Code string
}

func (e *Error) Error() string {
	return e.Message
}

// IsServer reports whether the error carries a server response status.
func (e *Error) IsServer() bool { return e.Status > 0 }

// IsNetwork reports whether the request never got a response.
func (e *Error) IsNetwork() bool { return e.Code == CodeNetwork || e.Code == CodeTimeout }

// validationItem mirrors the backend's validation error entries,
// e.g. [{"path":["title"],"message":"Required"}].
type validationItem struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// errorBody covers the object-shaped error payloads the backend emits.
type errorBody struct {
	Success *bool           `json:"success"`
	Error   string          `json:"error"`
	Message json.RawMessage `json:"message"`
}

// NormalizeErrorBody turns whatever error payload the server sent into a
// single readable message. Recognized shapes: a validation-error array of
// {path, message} items (possibly double-encoded as a JSON string), an
// object with an "error" or "message" field, and a raw string. Anything
// else falls back to a generic message with the status code.
func NormalizeErrorBody(status int, body []byte) string {
	if msg, ok := normalize(body); ok {
		return msg
	}
	return fmt.Sprintf("server error (status %d)", status)
}

func normalize(body []byte) (string, bool) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "", false
	}

	var raw any
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		// Not JSON at all: the body is the message.
		return trimmed, true
	}

	switch v := raw.(type) {
	case string:
		// Double-encoded payloads: the string itself may hold a
		// validation array or another error object.
		if inner, ok := normalize([]byte(v)); ok {
			return inner, true
		}
		return v, true
	case []any:
		if msg, ok := formatValidation([]byte(trimmed)); ok {
			return msg, true
		}
	case map[string]any:
		var eb errorBody
		if err := json.Unmarshal([]byte(trimmed), &eb); err == nil {
			if eb.Error != "" {
				return eb.Error, true
			}
			if len(eb.Message) > 0 {
				if inner, ok := normalize(eb.Message); ok {
					return inner, true
				}
			}
		}
	}
	return "", false
}

// formatValidation renders a validation-error array as
// "title: Required" joined with ", ".
func formatValidation(body []byte) (string, bool) {
	var items []validationItem
	if err := json.Unmarshal(body, &items); err != nil || len(items) == 0 {
		return "", false
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		field := strings.Join(it.Path, ".")
		if field == "" {
			field = "field"
		}
		msg := it.Message
		if msg == "" {
			msg = "invalid value"
		}
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, ", "), true
}
