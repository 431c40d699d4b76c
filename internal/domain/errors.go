package domain

import "errors"

// Error kinds. Every operation error wraps exactly one of them so transports can
// map failures without knowing operation details.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrFailedPrecondition = errors.New("failed precondition")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrUnavailable        = errors.New("unavailable")
)
