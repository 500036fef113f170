package firecrawl

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes failures surfaced by the client.
type ErrorKind string

const (
	// ErrorKindValidation covers malformed request construction and
	// malformed or unexpected response payloads. Always local.
	ErrorKindValidation ErrorKind = "validation"
	// ErrorKindNotInitialized is returned for operations attempted on a
	// zero-value or closed client.
	ErrorKindNotInitialized ErrorKind = "client_not_initialized"
	// ErrorKindAuthentication maps HTTP 401.
	ErrorKindAuthentication ErrorKind = "authentication"
	// ErrorKindPaymentRequired maps HTTP 402.
	ErrorKindPaymentRequired ErrorKind = "payment_required"
	// ErrorKindRateLimit maps HTTP 429.
	ErrorKindRateLimit ErrorKind = "rate_limit"
	// ErrorKindAPI maps any other >= 400 response.
	ErrorKindAPI ErrorKind = "api"
	// ErrorKindPollTimeout is a caller-side condition: the polling loop
	// exhausted its budget without observing a terminal job status.
	ErrorKindPollTimeout ErrorKind = "poll_timeout"
)

// Error is the structured error type returned by all client operations.
type Error struct {
	Kind       ErrorKind
	StatusCode int // HTTP status for transport-reported failures, else 0
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsKind reports whether err is a client Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func newValidationError(format string, args ...any) *Error {
	return &Error{Kind: ErrorKindValidation, Message: fmt.Sprintf(format, args...)}
}

func newNotInitializedError() *Error {
	return &Error{
		Kind:    ErrorKindNotInitialized,
		Message: "client not initialized: use NewClient and call before Close",
	}
}
