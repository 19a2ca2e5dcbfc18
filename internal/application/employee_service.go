package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	employeeDomain "github.com/assetdesk/service-booking/internal/domain/employee"
)

// CreateEmployeeRequest is the request DTO for registering an employee.
type CreateEmployeeRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department"`
}

// EmployeeDTO is the API response representation of an employee.
type EmployeeDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EmployeeService implements use cases for the employee registry.
type EmployeeService struct {
	repo   employeeDomain.EmployeeRepository
	logger *zap.Logger
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(repo employeeDomain.EmployeeRepository, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, logger: logger}
}

// CreateEmployee registers a new employee.
func (s *EmployeeService) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*EmployeeDTO, error) {
	emp, err := employeeDomain.NewEmployee(req.Name, req.Email, req.Department)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, emp); err != nil {
		s.logger.Error("failed to create employee", zap.Error(err))
		return nil, err
	}

	s.logger.Info("employee registered", zap.String("employee_id", emp.ID().String()))
	result := toEmployeeDTO(emp)
	return &result, nil
}

// GetEmployee retrieves a single employee by ID.
func (s *EmployeeService) GetEmployee(ctx context.Context, employeeID uuid.UUID) (*EmployeeDTO, error) {
	emp, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	result := toEmployeeDTO(emp)
	return &result, nil
}

// DeactivateEmployee marks an employee as no longer able to book assets.
// Existing bookings are left untouched.
func (s *EmployeeService) DeactivateEmployee(ctx context.Context, employeeID uuid.UUID) (*EmployeeDTO, error) {
	emp, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	emp.Deactivate()
	if err := s.repo.Update(ctx, emp); err != nil {
		return nil, err
	}

	s.logger.Info("employee deactivated", zap.String("employee_id", emp.ID().String()))
	result := toEmployeeDTO(emp)
	return &result, nil
}

func toEmployeeDTO(e *employeeDomain.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:         e.ID(),
		Name:       e.Name(),
		Email:      e.Email(),
		Department: e.Department(),
		Active:     e.Active(),
		CreatedAt:  e.CreatedAt(),
		UpdatedAt:  e.UpdatedAt(),
	}
}
