package api

import "fmt"

// RequestError is the single failure kind surfaced by the client: a
// non-2xx response carries the numeric status, and a transport failure
// (no response at all) carries Status 0.
type RequestError struct {
	// Status is the HTTP status code, or 0 when no response arrived.
	Status int

	// Message is the trimmed response body, or the transport error text.
	Message string
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("memory service unreachable: %s", e.Message)
	}
	if e.Message == "" {
		return fmt.Sprintf("memory service returned HTTP %d", e.Status)
	}
	return fmt.Sprintf("memory service returned HTTP %d: %s", e.Status, e.Message)
}

// Unreachable reports whether the request never produced a response.
func (e *RequestError) Unreachable() bool {
	return e.Status == 0
}

// NotFound reports whether the service answered 404. The service does
// not distinguish unknown chats with a dedicated error kind, so this is
// the only not-found signal callers get.
func (e *RequestError) NotFound() bool {
	return e.Status == 404
}
