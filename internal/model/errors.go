package model

import "errors"

// Common errors used across the application
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrMatchNotFound = errors.New("match not found")
	ErrNotSignedIn   = errors.New("not signed in")
)
