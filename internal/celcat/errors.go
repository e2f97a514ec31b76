package celcat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoToken is returned when the login page does not carry an anti-forgery token
	ErrNoToken = errors.New("celcat: verification token not found on login page")

	// ErrSessionExpired is returned when Celcat answered with its login page. The client
	// logs back in before returning it, so the call can be retried.
	ErrSessionExpired = errors.New("celcat: session expired")

	// ErrNotLoggedIn is returned by calls that need a session before Login succeeded
	ErrNotLoggedIn = errors.New("celcat: not logged in")
)

// HTTPError is a non-2xx answer from Celcat
type HTTPError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("celcat: %s %s: HTTP %d: %s", e.Method, e.Endpoint, e.StatusCode, e.Body)
}

// DecodeError is a 2xx answer whose body could not be decoded
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("celcat: failed to decode %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsRetryable classifies errors for retry decisions:
//   - context cancellation, decode errors and missing tokens are final
//   - HTTP 408, 429 and 5xx are retried, other statuses are final
//   - an expired session is retried
//   - everything else (network, io) is retried
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrSessionExpired) {
		return true
	}
	if errors.Is(err, ErrNoToken) || errors.Is(err, ErrNotLoggedIn) {
		return false
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusRequestTimeout ||
			httpErr.StatusCode == http.StatusTooManyRequests ||
			httpErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}
