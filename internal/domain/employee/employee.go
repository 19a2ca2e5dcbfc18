package employee

import (
	"time"

	"github.com/google/uuid"

	"github.com/assetdesk/service-booking/pkg/domain"
)

// Employee is a booking actor referenced by bookings and history entries.
type Employee struct {
	id         uuid.UUID
	name       string
	email      string
	department string
	active     bool
	createdAt  time.Time
	updatedAt  time.Time
}

// NewEmployee creates a new active employee record.
func NewEmployee(name, email, department string) (*Employee, error) {
	if name == "" {
		return nil, domain.NewValidationError("employee name is required")
	}
	if email == "" {
		return nil, domain.NewValidationError("employee email is required")
	}

	now := time.Now().UTC()
	return &Employee{
		id:         uuid.New(),
		name:       name,
		email:      email,
		department: department,
		active:     true,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Reconstruct rebuilds an Employee from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, email, department string, active bool, createdAt, updatedAt time.Time) *Employee {
	return &Employee{
		id:         id,
		name:       name,
		email:      email,
		department: department,
		active:     active,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (e *Employee) ID() uuid.UUID        { return e.id }
func (e *Employee) Name() string         { return e.name }
func (e *Employee) Email() string        { return e.email }
func (e *Employee) Department() string   { return e.department }
func (e *Employee) Active() bool         { return e.active }
func (e *Employee) CreatedAt() time.Time { return e.createdAt }
func (e *Employee) UpdatedAt() time.Time { return e.updatedAt }

// Deactivate marks the employee as no longer able to book assets.
func (e *Employee) Deactivate() {
	e.active = false
	e.updatedAt = time.Now().UTC()
}
