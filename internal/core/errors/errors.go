package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrNoBackup is returned by cached sources when no backup file exists.
var ErrNoBackup = stderrors.New("no backup data available")

// ErrUserNotFound is returned when a username cannot be resolved to an account.
var ErrUserNotFound = stderrors.New("user not found")

// APIError is a non-2xx response from a third-party API.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// IsAuth reports whether the failure is an authentication or authorization error.
func (e *APIError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsRateLimited reports whether the API throttled the request.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// CheckResponse returns an *APIError for any non-2xx response. Up to 512
// bytes of the body are kept as the message.
func CheckResponse(resp *http.Response, endpoint string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &APIError{
		StatusCode: resp.StatusCode,
		Endpoint:   endpoint,
		Message:    strings.TrimSpace(string(body)),
	}
}

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
