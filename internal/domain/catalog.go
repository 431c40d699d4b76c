package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidCatalog = errors.New("domain: invalid catalog")

// Service is a bookable offering with a fixed duration
type Service struct {
	ID              string
	Name            string
	DurationMinutes int
	Price           float64
}

// Employee is a member of staff who can be booked
type Employee struct {
	ID   string
	Name string
}

// Catalog is the immutable set of services and employees.
// Enumeration order is the order the catalog was built with.
type Catalog struct {
	services      []Service
	employees     []Employee
	servicesByID  map[string]Service
	employeesByID map[string]Employee
}

// NewCatalog validates and indexes services and employees
func NewCatalog(services []Service, employees []Employee) (*Catalog, error) {
	if len(services) == 0 {
		return nil, fmt.Errorf("%w: no services", ErrInvalidCatalog)
	}
	if len(employees) == 0 {
		return nil, fmt.Errorf("%w: no employees", ErrInvalidCatalog)
	}

	c := &Catalog{
		services:      make([]Service, 0, len(services)),
		employees:     make([]Employee, 0, len(employees)),
		servicesByID:  make(map[string]Service, len(services)),
		employeesByID: make(map[string]Employee, len(employees)),
	}

	for _, s := range services {
		if strings.TrimSpace(s.ID) == "" {
			return nil, fmt.Errorf("%w: service with empty id", ErrInvalidCatalog)
		}
		if s.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: service %q has non-positive duration", ErrInvalidCatalog, s.ID)
		}
		if _, dup := c.servicesByID[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate service %q", ErrInvalidCatalog, s.ID)
		}
		c.servicesByID[s.ID] = s
		c.services = append(c.services, s)
	}

	for _, e := range employees {
		if strings.TrimSpace(e.ID) == "" {
			return nil, fmt.Errorf("%w: employee with empty id", ErrInvalidCatalog)
		}
		if _, dup := c.employeesByID[e.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate employee %q", ErrInvalidCatalog, e.ID)
		}
		c.employeesByID[e.ID] = e
		c.employees = append(c.employees, e)
	}

	return c, nil
}

// Service looks up a service by id
func (c *Catalog) Service(id string) (Service, bool) {
	s, ok := c.servicesByID[id]
	return s, ok
}

// Employee looks up an employee by id
func (c *Catalog) Employee(id string) (Employee, bool) {
	e, ok := c.employeesByID[id]
	return e, ok
}

// Services returns a copy of all services in catalog order
func (c *Catalog) Services() []Service {
	out := make([]Service, len(c.services))
	copy(out, c.services)
	return out
}

// Employees returns a copy of all employees in catalog order
func (c *Catalog) Employees() []Employee {
	out := make([]Employee, len(c.employees))
	copy(out, c.employees)
	return out
}

// EmployeeIDs returns employee ids in catalog order
func (c *Catalog) EmployeeIDs() []string {
	ids := make([]string, 0, len(c.employees))
	for _, e := range c.employees {
		ids = append(ids, e.ID)
	}
	return ids
}
