package store

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the given id or username.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when an insert or update collides with
	// the unique index on username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrOrderNotFound is returned when no order matches the given id.
	ErrOrderNotFound = errors.New("order not found")
)
