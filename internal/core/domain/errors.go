package domain

import (
	"errors"
	"fmt"
)

var ErrUnauthorized = errors.New("session expired or invalid")
var ErrForbidden = errors.New("access forbidden")
var ErrTimeout = errors.New("upstream request timed out")
var ErrNoSession = errors.New("no active session")
var ErrDuplicateMenuPath = errors.New("duplicate menu path")
var ErrRouteNotFound = errors.New("route not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

// UpstreamError carries a non-2xx response from the data API verbatim.
// 401 and 403 are handled centrally by the request pipeline and never
// surface as UpstreamError.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Body)
}
