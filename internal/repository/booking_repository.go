package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookingDomain "github.com/assetdesk/service-booking/internal/domain/booking"
	"github.com/assetdesk/service-booking/pkg/domain"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AssetID         uuid.UUID  `gorm:"type:uuid;index;not null"`
	EmployeeID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	Status          string     `gorm:"not null;size:20;index"`
	StartAt         time.Time  `gorm:"type:timestamptz;not null;index"`
	EndAt           time.Time  `gorm:"type:timestamptz;not null"`
	Purpose         string     `gorm:"size:500"`
	ReturnCondition *string    `gorm:"size:20"`
	ReturnComments  string     `gorm:"size:500"`
	ReturnedAt      *time.Time `gorm:"type:timestamptz"`
	Version         int64      `gorm:"not null;default:1"`
	CreatedAt       time.Time  `gorm:"type:timestamptz;not null"`
	UpdatedAt       time.Time  `gorm:"type:timestamptz;not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, domain.NewUnavailableError("failed to find booking", err)
	}
	return toDomainBooking(&model)
}

// FindByAssetID retrieves all bookings for an asset, newest first.
func (r *GormBookingRepository) FindByAssetID(ctx context.Context, assetID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("start_at DESC").
		Find(&models).Error; err != nil {
		return nil, domain.NewUnavailableError("failed to find asset bookings", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}

// FindCurrentOrUpcoming retrieves the non-canceled booking whose window
// is open now or opens soonest. Ties break on earliest start.
func (r *GormBookingRepository) FindCurrentOrUpcoming(ctx context.Context, assetID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("asset_id = ? AND status <> ? AND end_at > ?", assetID, string(bookingDomain.StatusCanceled), now).
		Order("start_at ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domain.NewUnavailableError("failed to find current booking", err)
	}
	return toDomainBooking(&model)
}

// ListAll retrieves all bookings with pagination.
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, domain.NewUnavailableError("failed to count bookings", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, domain.NewUnavailableError("failed to list bookings", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = bk
	}
	return bookings, total, nil
}

// CountByStatus returns booking counts grouped by status.
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, domain.NewUnavailableError("failed to count by status", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	if err := r.db.WithContext(ctx).Create(toBookingModel(bk)).Error; err != nil {
		return domain.NewUnavailableError("failed to save booking", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)

	// Only update if the version matches (current version - 1, since
	// IncrementVersion was called before Update).
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":           model.Status,
			"purpose":          model.Purpose,
			"return_condition": model.ReturnCondition,
			"return_comments":  model.ReturnComments,
			"returned_at":      model.ReturnedAt,
			"version":          model.Version,
			"updated_at":       model.UpdatedAt,
		})

	if result.Error != nil {
		return domain.NewUnavailableError("failed to update booking", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	model := &BookingModel{
		ID:         bk.ID(),
		AssetID:    bk.AssetID(),
		EmployeeID: bk.EmployeeID(),
		Status:     string(bk.Status()),
		StartAt:    bk.StartAt(),
		EndAt:      bk.EndAt(),
		Purpose:    bk.Purpose(),
		Version:    bk.Version(),
		CreatedAt:  bk.CreatedAt(),
		UpdatedAt:  bk.UpdatedAt(),
	}

	if rr := bk.ReturnRecord(); rr != nil {
		condition := string(rr.Condition)
		returnedAt := rr.ReturnedAt
		model.ReturnCondition = &condition
		model.ReturnComments = rr.Comments
		model.ReturnedAt = &returnedAt
	}
	return model
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	var returned *bookingDomain.ReturnRecord
	if m.ReturnCondition != nil && m.ReturnedAt != nil {
		returned = &bookingDomain.ReturnRecord{
			Condition:  bookingDomain.ReturnCondition(*m.ReturnCondition),
			Comments:   m.ReturnComments,
			ReturnedAt: *m.ReturnedAt,
		}
	}

	return bookingDomain.Reconstruct(
		m.ID,
		m.AssetID,
		m.EmployeeID,
		status,
		m.StartAt,
		m.EndAt,
		m.Purpose,
		returned,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
