package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned for any gateway response outside the 2xx range.
// The body is best-effort: gateway failures are not guaranteed to carry a
// parseable payload, so only a truncated excerpt is kept for logs.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway: %s returned %d: %s", e.Op, e.StatusCode, e.Body)
}

// UnreachableError is returned when the request never produced an HTTP
// response: DNS failure, refused connection, tunnel down, timeout.
type UnreachableError struct {
	Op  string
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("gateway: %s unreachable: %v", e.Op, e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is a gateway rejection of the
// current credentials.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// IsUnreachable reports whether err is a transport-level failure with no
// HTTP response behind it.
func IsUnreachable(err error) bool {
	var ue *UnreachableError
	return errors.As(err, &ue)
}

// IsSessionFailure reports whether err should tear down the session.
// Unreachable counts alongside unauthorized: a dead tunnel and an expired
// token look the same to front-desk staff, and re-login recovers both.
func IsSessionFailure(err error) bool {
	return IsUnauthorized(err) || IsUnreachable(err)
}
