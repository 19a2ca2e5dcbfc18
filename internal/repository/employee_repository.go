package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	employeeDomain "github.com/assetdesk/service-booking/internal/domain/employee"
	"github.com/assetdesk/service-booking/pkg/domain"
)

// EmployeeModel is the GORM model for the employees table.
type EmployeeModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"not null;size:200"`
	Email      string    `gorm:"uniqueIndex;not null;size:200"`
	Department string    `gorm:"size:100"`
	Active     bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt  time.Time `gorm:"type:timestamptz;not null"`
}

func (EmployeeModel) TableName() string { return "employees" }

// GormEmployeeRepository implements EmployeeRepository using GORM.
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository.
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByID retrieves an employee by their unique identifier.
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*employeeDomain.Employee, error) {
	var model EmployeeModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Employee", id.String())
		}
		return nil, domain.NewUnavailableError("failed to find employee", err)
	}
	return employeeDomain.Reconstruct(
		model.ID, model.Name, model.Email, model.Department,
		model.Active, model.CreatedAt, model.UpdatedAt,
	), nil
}

// Save persists a new employee.
func (r *GormEmployeeRepository) Save(ctx context.Context, e *employeeDomain.Employee) error {
	model := &EmployeeModel{
		ID:         e.ID(),
		Name:       e.Name(),
		Email:      e.Email(),
		Department: e.Department(),
		Active:     e.Active(),
		CreatedAt:  e.CreatedAt(),
		UpdatedAt:  e.UpdatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return domain.NewUnavailableError("failed to save employee", err)
	}
	return nil
}

// Update persists changes to an existing employee.
func (r *GormEmployeeRepository) Update(ctx context.Context, e *employeeDomain.Employee) error {
	result := r.db.WithContext(ctx).
		Model(&EmployeeModel{}).
		Where("id = ?", e.ID()).
		Updates(map[string]interface{}{
			"name":       e.Name(),
			"department": e.Department(),
			"active":     e.Active(),
			"updated_at": e.UpdatedAt(),
		})

	if result.Error != nil {
		return domain.NewUnavailableError("failed to update employee", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Employee", e.ID().String())
	}
	return nil
}
