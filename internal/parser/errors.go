package parser

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies an upstream failure. The HTTP layer maps kinds to status codes.
type ErrorKind string

const (
	KindAuthentication ErrorKind = "authentication"
	KindRateLimit      ErrorKind = "rate_limit"
	KindConnection     ErrorKind = "connection"
	KindInvalidRequest ErrorKind = "invalid_request"
	KindService        ErrorKind = "service"
	KindUnexpected     ErrorKind = "unexpected"
)

// UpstreamError is returned by extractors when the completion service call fails.
// It is never retried.
type UpstreamError struct {
	Kind       ErrorKind
	StatusCode int // upstream HTTP status, 0 when no response was received
	Err        error
}

// NewUpstreamError wraps err with the given kind.
func NewUpstreamError(kind ErrorKind, statusCode int, err error) *UpstreamError {
	return &UpstreamError{Kind: kind, StatusCode: statusCode, Err: err}
}

func (e *UpstreamError) Error() string {
	return e.Message()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Message renders the caller-facing error text, embedding the underlying detail.
func (e *UpstreamError) Message() string {
	detail := "<nil>"
	if e.Err != nil {
		detail = e.Err.Error()
	}
	switch e.Kind {
	case KindAuthentication:
		return fmt.Sprintf("OpenAI Authentication Error: Your API key may be invalid or revoked. Details: %s", detail)
	case KindRateLimit:
		return fmt.Sprintf("OpenAI Rate Limit Error: You have exceeded your usage quota. Details: %s", detail)
	case KindConnection:
		return fmt.Sprintf("OpenAI API Connection Error: Could not connect to OpenAI. Details: %s", detail)
	case KindInvalidRequest:
		return fmt.Sprintf("OpenAI Invalid Request Error: %s", detail)
	case KindService:
		return fmt.Sprintf("OpenAI API Error: %s", detail)
	default:
		return fmt.Sprintf("An unexpected error occurred: %s", detail)
	}
}

// KindForStatus classifies an upstream HTTP error status.
func KindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized:
		return KindAuthentication
	case http.StatusTooManyRequests:
		return KindRateLimit
	case http.StatusBadRequest, http.StatusNotFound, http.StatusUnsupportedMediaType:
		return KindInvalidRequest
	default:
		return KindService
	}
}
