package domain

import "time"

// AvailableSlot is a free interval for one employee
type AvailableSlot struct {
	EmployeeID string
	Start      time.Time
	End        time.Time
}
