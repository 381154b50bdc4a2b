package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrDecode       = errors.New("undecodable response")
)

// Origin tells whether a failure happened on the way to the server, was
// reported by it, or happened on this machine before any request was built.
type Origin int

const (
	OriginTransport Origin = iota + 1
	OriginApplication
	OriginLocal
)

func (o Origin) String() string {
	switch o {
	case OriginTransport:
		return "transport"
	case OriginApplication:
		return "application"
	case OriginLocal:
		return "local"
	default:
		return "unknown"
	}
}

// Error is the failure value of every Requester call.
type Error struct {
	Message    string
	Origin     Origin
	StatusCode int
	Err        error

	kind error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.kind != nil {
		errs = append(errs, e.kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func transportError(msg string, err error) *Error {
	return &Error{Message: msg, Origin: OriginTransport, Err: err, kind: ErrUnavailable}
}

func decodeError(status int, err error) *Error {
	return &Error{
		Message:    fmt.Sprintf("decode response: %v", err),
		Origin:     OriginTransport,
		StatusCode: status,
		Err:        err,
		kind:       ErrDecode,
	}
}

func localError(msg string, err error) *Error {
	return &Error{Message: fmt.Sprintf("%s: %v", msg, err), Origin: OriginLocal, Err: err}
}

func applicationError(status int, msg string) *Error {
	return &Error{Message: msg, Origin: OriginApplication, StatusCode: status, kind: kindForStatus(status)}
}

func kindForStatus(status int) error {
	switch status {
	case 401, 403:
		return ErrUnauthorized
	case 404:
		return ErrNotFound
	case 409:
		return ErrConflict
	default:
		return nil
	}
}

// OriginOf reports the origin of err, or 0 when err is not an *Error.
func OriginOf(err error) Origin {
	var e *Error
	if errors.As(err, &e) {
		return e.Origin
	}
	return 0
}

// StatusOf reports the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// Message returns the human readable part of err suitable for display.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// NewApplicationError builds the failure a Requester reports for an error
// response. Fakes use it to mimic the backend.
func NewApplicationError(status int, msg string) *Error {
	return applicationError(status, msg)
}

// NewTransportError builds the failure a Requester reports when the backend
// could not be reached.
func NewTransportError(msg string, err error) *Error {
	return transportError(msg, err)
}
