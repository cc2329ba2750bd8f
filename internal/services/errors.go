package services

import "errors"

// Sentinel errors the handler layer maps to HTTP status codes.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource already exists")
	ErrUnexpected       = errors.New("unexpected error")
)
