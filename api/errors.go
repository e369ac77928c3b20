package api

import (
	"errors"
	"fmt"
	"time"
)

// ErrAPINotAvailable reports a call to an endpoint the platform does not
// serve (HTTP 404/405).
var ErrAPINotAvailable = errors.New("api not available")

// ErrEmptyResponse reports a 2xx response with an empty body, which the
// platform returns for some malformed requests instead of an error code.
var ErrEmptyResponse = errors.New("empty response body")

// ActionFailed reports a well-formed platform response whose business code
// was non-zero.
type ActionFailed struct {
	Code    int64
	Message string
}

func (e *ActionFailed) Error() string {
	return fmt.Sprintf("action failed: code=%d message=%q", e.Code, e.Message)
}

// UnauthorizedError reports HTTP 401/403, usually a bad or revoked token.
type UnauthorizedError struct {
	Status  int
	Message string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized: status=%d message=%q", e.Status, e.Message)
}

// RateLimitError reports HTTP 429.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
	}
	return "rate limited"
}

// NetworkError wraps a transport-level failure reaching the platform.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
