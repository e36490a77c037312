package domain

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when input misses required fields or has invalid values
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate is returned when a unique entity already exists, i.e. an article was already delivered
	ErrDuplicate = errors.New("already exists")
)
