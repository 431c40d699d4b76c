package bookingevents

import "errors"

var (
	// ErrEncode is returned when an event cannot be serialised
	ErrEncode = errors.New("bookingevents: failed to encode event")

	// ErrWrite is returned when the broker rejects or times out a write
	ErrWrite = errors.New("bookingevents: failed to write message")
)
