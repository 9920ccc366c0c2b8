package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrSessionExpired indicates the session token is unknown or expired.
	ErrSessionExpired = errors.New("session expired")
)
