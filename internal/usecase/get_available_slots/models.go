package get_available_slots

import "time"

// Request asks for free slots of a service on one day
type Request struct {
	Date       string // YYYY-MM-DD in the operating zone
	ServiceID  string
	EmployeeID string // optional; empty means every employee
}

// Response is the list of free slots for the requested day
type Response struct {
	Date      time.Time
	ServiceID string
	Slots     []Slot // employee enumeration order, then chronological
}

// Slot is a free interval for one employee
type Slot struct {
	EmployeeID string
	Start      time.Time
	End        time.Time
}
