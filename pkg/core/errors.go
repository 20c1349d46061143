package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrNotFound    = errors.New("note not found")
	ErrInvalidID   = errors.New("invalid note id")
	ErrInvalidNote = errors.New("invalid note")
	ErrReadOnly    = errors.New("repository is in read-only mode")
	ErrConfig      = errors.New("invalid configuration")
	ErrRemote      = errors.New("remote operation failed")
)

// RemoteErrorKind separates network failures from answers the client could not use.
type RemoteErrorKind int

const (
	// RemoteTransport: no response arrived (refused, timeout, DNS).
	RemoteTransport RemoteErrorKind = iota + 1
	// RemoteStatus: the server answered with a non-2xx status.
	RemoteStatus
	// RemoteResponse: the server answered 2xx with a body that does not decode.
	RemoteResponse
)

func (k RemoteErrorKind) String() string {
	switch k {
	case RemoteTransport:
		return "transport"
	case RemoteStatus:
		return "status"
	case RemoteResponse:
		return "response"
	default:
		return "unknown"
	}
}

// RemoteError describes a failed call against a remote zenus server.
// StatusCode is zero when no response arrived. Err is set for transport
// failures and for 2xx answers whose body could not be decoded.
type RemoteError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

// Kind classifies the failure.
func (e *RemoteError) Kind() RemoteErrorKind {
	switch {
	case e.StatusCode == 0:
		return RemoteTransport
	case e.Err != nil:
		return RemoteResponse
	default:
		return RemoteStatus
	}
}

func (e *RemoteError) Error() string {
	if e.Err != nil && e.StatusCode != 0 {
		return fmt.Sprintf("remote %s: %s %s: status %d: %v", e.Op, e.Method, e.URL, e.StatusCode, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("remote %s: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("remote %s: %s %s: status %d: %s", e.Op, e.Method, e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("remote %s: %s %s: status %d", e.Op, e.Method, e.URL, e.StatusCode)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is lets callers match any RemoteError with errors.Is(err, ErrRemote).
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}
