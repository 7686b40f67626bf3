package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrUsernameTaken is returned when a user insert violates username uniqueness.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when a user insert violates email uniqueness.
	ErrEmailTaken = errors.New("email already exists")
)
