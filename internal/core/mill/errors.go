package mill

import "errors"

var (
	// ErrMillNotFound is returned when the mill does not exist.
	ErrMillNotFound = errors.New("mill not found")

	// ErrCodeTaken is returned when another mill already uses the code.
	ErrCodeTaken = errors.New("mill code already taken")
)
