package api

import "fmt"

// TransportError reports a failure to reach or read from the AIVEILIX API:
// a non-2xx response, a network error, or an interrupted response body.
// Status is zero when the failure happened before a response arrived.
type TransportError struct {
	// Status is the HTTP status code, when one was received.
	Status int

	// Detail is the server-provided detail message, when the error body
	// could be parsed.
	Detail string

	// Err is the underlying network error, if any.
	Err error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil && e.Status == 0:
		return fmt.Sprintf("transport error: %v", e.Err)
	case e.Detail != "":
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Detail)
	default:
		return fmt.Sprintf("api error (status %d)", e.Status)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerError reports an explicit error event received on a chat stream.
// The message is the server's verbatim error string (e.g. "API quota
// exceeded") and is safe to show to the user.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server reported: %s", e.Message)
}
