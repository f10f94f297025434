// Package common defines shared constants and error values used across
// client and generation-service layers of ThumbKeeper. Sentinels are matched
// with errors.Is, typed errors with errors.As.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Session errors.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")

	// Generation errors.
	ErrNoImageReturned = errors.New("No image returned")
)

// ValidationError reports malformed user input. It is shown inline and never
// retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthError is a failure reported by the auth provider. Code is the
// provider's stable error code when it offers one; Message is the
// user-facing text.
type AuthError struct {
	Code    string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// GenerationError reports a failed thumbnail generation: a transport
// failure, an error payload from the endpoint or a response without an
// image URL.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// PartialDeletionError is returned when a step of account deletion fails.
// Steps before Step have already taken effect and are not rolled back.
type PartialDeletionError struct {
	Step string
	Err  error
}

func (e *PartialDeletionError) Error() string {
	return fmt.Sprintf("account deletion failed at %s: %v", e.Step, e.Err)
}

func (e *PartialDeletionError) Unwrap() error {
	return e.Err
}
