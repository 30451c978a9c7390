package models

import "errors"

// Application-level errors shared across services and handlers.
// ErrNotFound intentionally covers both "does not exist" and "exists but
// belongs to another user" so handlers never leak existence of foreign data.
var (
	ErrNotFound     = errors.New("resource not found or unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("resource already exists")
)
