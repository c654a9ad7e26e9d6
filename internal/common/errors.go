package common

import "errors"

var (
	// Local storage errors.
	ErrorNotFound = errors.New("not found")

	// Auth errors.
	ErrNotAdmin     = errors.New("you do not have permission to access the admin dashboard")
	ErrNoToken      = errors.New("login response did not include a token")
	ErrTokenExpired = errors.New("token expired")

	// Payload errors.
	ErrInvalidPayload = errors.New("invalid payload")
)
