package googlecalendar

import "errors"

var (
	// ErrInternal is returned when the client cannot be built or a request cannot be sent
	ErrInternal = errors.New("googlecalendar client: internal error")

	// ErrInvalidResponse is returned when Google answers with an error or an unusable body
	ErrInvalidResponse = errors.New("googlecalendar client: invalid response")

	// ErrUnknownAction is returned for a sync action other than create or delete
	ErrUnknownAction = errors.New("googlecalendar client: unknown sync action")
)
