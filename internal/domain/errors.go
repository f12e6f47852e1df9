package domain

import (
	"errors"
	"fmt"
	"strings"
)

// AuthError covers a missing or rejected token: failed login, or a call the
// server refused with 401/403. The caller decides whether it means "show the
// login failure" or "force a logout".
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Reason, e.Err)
	}
	return "auth: " + e.Reason
}

func (e *AuthError) Unwrap() error { return e.Err }

// ValidationError is a client-side precondition failure: it is raised before
// any request leaves the process. Fields carries the server's field->messages
// mapping when the server rejected a registration instead.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, field+": "+strings.Join(msgs, "; "))
	}
	return strings.Join(parts, ", ")
}

// NotFoundError reports an absent resource (404). "Cart not found" on the
// initial load is the one case the callers treat as a valid empty state.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// TransportError is a network or server failure. Message carries the
// server-provided error text unchanged when one was available; StatusCode is
// zero when the request never got a response.
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("server returned %d", e.StatusCode)
	case e.Err != nil:
		return "request failed: " + e.Err.Error()
	default:
		return "request failed"
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// CartError wraps a failed cart operation: the operation name plus the
// underlying cause. A mutation that fails leaves the previously loaded cart
// snapshot untouched.
type CartError struct {
	Operation string
	Err       error
}

func (e *CartError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cart %s: %v", e.Operation, e.Err)
	}
	return "cart " + e.Operation + " failed"
}

func (e *CartError) Unwrap() error { return e.Err }

// DecodeError reports a response body whose shape the client does not
// recognize. Ambiguous payloads fail here instead of propagating upward.
type DecodeError struct {
	What string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %v", e.What, e.Err)
	}
	return "decode " + e.What + ": unrecognized shape"
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
