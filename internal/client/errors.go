package client

import (
	"errors"
)

// RequestError is the single error shape every store operation surfaces. Transport
// failures, non-2xx responses and missing arguments all collapse into it.
type RequestError struct {
	// Message is the operation-level reason, e.g. "Failed to fetch enquiries"
	Message string
	// Detail is the server's explanation when it gave one
	Detail string
	// Status is the HTTP status, 0 when no response was received
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Detail != "" && e.Detail != e.Message {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e *RequestError) Unwrap() error { return e.Err }

// ErrMissingID is returned for operations invoked without a record id
var ErrMissingID = errors.New("missing id")

// ErrReadOnly is returned when writing a document that has no write endpoint
var ErrReadOnly = errors.New("resource is read-only")

func newRequestError(message string, err error) *RequestError {
	re := &RequestError{Message: message, Err: err}
	var se *StatusError
	if errors.As(err, &se) {
		re.Status = se.Code
		re.Detail = se.Message
	}
	return re
}
