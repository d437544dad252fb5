package domain

import (
	"errors"
	"fmt"
)

var ErrSessionExpired = errors.New("session expired")
var ErrUnauthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")
var ErrUserNotFound = errors.New("user not found")
var ErrRoleNotFound = errors.New("role not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrBackendUnavailable = errors.New("backend unavailable")

// ServerError is a non-2xx reply from the backend, carrying the optional
// message field of its error body.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// Is makes every 401 reply match ErrSessionExpired, so callers observe the
// global logout policy through errors.Is regardless of which endpoint
// produced the status.
func (e *ServerError) Is(target error) bool {
	return target == ErrSessionExpired && e.Status == 401
}
