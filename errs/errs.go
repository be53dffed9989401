// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

var (
	// ErrDuplicateUser indicates a registration attempt with an email that is already taken.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrUserNotFound indicates no user is registered under the given email.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates a password mismatch during login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPaperNotFound indicates the requested paper does not exist.
	ErrPaperNotFound = errors.New("paper not found")

	// ErrNoDocument indicates the paper has no document attached.
	ErrNoDocument = errors.New("no document attached")
)
