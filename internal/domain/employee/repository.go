package employee

import (
	"context"

	"github.com/google/uuid"
)

// EmployeeRepository defines the persistence contract for employees.
type EmployeeRepository interface {
	// FindByID retrieves an employee by their unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)

	// Save persists a new employee.
	Save(ctx context.Context, employee *Employee) error

	// Update persists changes to an existing employee.
	Update(ctx context.Context, employee *Employee) error
}
