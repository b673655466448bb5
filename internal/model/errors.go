package model

import (
	"errors"
	"fmt"
	"strconv"
)

// Errors shared by the sso, plan, schedule and portal packages.
// Callers match them with errors.Is and errors.As.
var (
	// ErrInvalidCredentials is returned when the portal rejects the username
	// or password. It is distinct from AuthFailure: the protocol worked, the
	// account did not.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrSessionMissing is returned when an operation needs an Authenticated
	// session and the client is still Anonymous.
	ErrSessionMissing = errors.New("not logged in")

	// ErrTooManyRedirects is returned when a redirect chain reaches the depth limit.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrMalformedResponse is returned when an upstream body cannot be decoded
	// into the expected shape or lacks a required value.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrUnknownFormat is matched by every *UnknownFormatError.
	ErrUnknownFormat = errors.New("unknown response format")

	// ErrIncompleteSession is returned by NewAuthenticated for partial sessions.
	ErrIncompleteSession = errors.New("incomplete session")
)

// Reasons carried by AuthFailure.
const (
	ReasonMissingRedirect        = "missing-redirect"
	ReasonMalformedSessionCookie = "malformed-session-cookie"
	ReasonMissingSessionCookie   = "missing-session-cookie"
	ReasonMissingToken           = "missing-token"
	ReasonMissingUser            = "missing-user"
)

// HTTPStatusReason formats the reason for an unexpected status code.
func HTTPStatusReason(code int) string {
	return "http-status:" + strconv.Itoa(code)
}

// AuthFailure reports a login protocol step that did not go as expected.
type AuthFailure struct {
	// Reason is one of the Reason constants or an HTTPStatusReason value.
	Reason string

	// Err is the underlying cause, if any.
	Err error
}

// NewAuthFailure creates an AuthFailure with an optional cause.
func NewAuthFailure(reason string, err error) *AuthFailure {
	return &AuthFailure{Reason: reason, Err: err}
}

// Error implements error.
func (e *AuthFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("authentication failed (%s)", e.Reason)
}

// Unwrap returns the underlying cause.
func (e *AuthFailure) Unwrap() error {
	return e.Err
}

// UnknownFormatError reports a payload none of the known shapes could decode,
// or a server-side error message carried inside an otherwise valid envelope.
type UnknownFormatError struct {
	Message string
}

// Error implements error.
func (e *UnknownFormatError) Error() string {
	return "unknown response format: " + e.Message
}

// Is makes errors.Is(err, ErrUnknownFormat) true for any UnknownFormatError.
func (e *UnknownFormatError) Is(target error) bool {
	return target == ErrUnknownFormat
}
