// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the GitHub client. Callers match them with errors.Is;
// the underlying transport error is always wrapped alongside.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("access forbidden")
	ErrRateLimited  = errors.New("rate limit exceeded")
	ErrStatsPending = errors.New("statistics are still being computed")
	ErrUpstream     = errors.New("upstream request failed")
)

// ErrInvalidLogin is returned when the configured account name is not a valid GitHub login.
type ErrInvalidLogin struct {
	Login string
}

func (e *ErrInvalidLogin) Error() string {
	return fmt.Sprintf("invalid GitHub login: %q", e.Login)
}
