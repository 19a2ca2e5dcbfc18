package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/assetdesk/service-booking/pkg/domain"
)

// Booking is the aggregate root for a pool-device booking.
type Booking struct {
	id         uuid.UUID
	assetID    uuid.UUID
	employeeID uuid.UUID
	status     BookingStatus
	startAt    time.Time
	endAt      time.Time
	purpose    string
	returned   *ReturnRecord

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking for the given asset and employee.
// The initial status depends on now: active if the window has already
// opened, reserved otherwise.
func NewBooking(assetID, employeeID uuid.UUID, startAt, endAt time.Time, purpose string, now time.Time) (*Booking, error) {
	if assetID == uuid.Nil {
		return nil, domain.NewValidationError("asset ID is required")
	}
	if employeeID == uuid.Nil {
		return nil, domain.NewValidationError("employee ID is required")
	}
	if !startAt.Before(endAt) {
		return nil, ErrInvalidRange
	}

	status := StatusReserved
	if !startAt.After(now) {
		status = StatusActive
	}

	return &Booking{
		id:         uuid.New(),
		assetID:    assetID,
		employeeID: employeeID,
		status:     status,
		startAt:    startAt.UTC(),
		endAt:      endAt.UTC(),
		purpose:    purpose,
		version:    1,
		createdAt:  now.UTC(),
		updatedAt:  now.UTC(),
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, assetID, employeeID uuid.UUID,
	status BookingStatus,
	startAt, endAt time.Time,
	purpose string,
	returned *ReturnRecord,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		assetID:    assetID,
		employeeID: employeeID,
		status:     status,
		startAt:    startAt,
		endAt:      endAt,
		purpose:    purpose,
		returned:   returned,
		version:    version,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// AssetID returns the booked asset's identifier.
func (b *Booking) AssetID() uuid.UUID { return b.assetID }

// EmployeeID returns the booking employee's identifier.
func (b *Booking) EmployeeID() uuid.UUID { return b.employeeID }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// StartAt returns the start of the booking window.
func (b *Booking) StartAt() time.Time { return b.startAt }

// EndAt returns the end of the booking window.
func (b *Booking) EndAt() time.Time { return b.endAt }

// Purpose returns the free-text purpose, if any.
func (b *Booking) Purpose() string { return b.purpose }

// ReturnRecord returns the return record, or nil if the booking was never returned.
func (b *Booking) ReturnRecord() *ReturnRecord { return b.returned }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// IsReturned returns true once a return record has been set.
func (b *Booking) IsReturned() bool { return b.returned != nil }

// --- Behavior ---

// Cancel transitions the booking to canceled. Only reserved and active
// bookings can be canceled; the booking record itself is never deleted.
func (b *Booking) Cancel(now time.Time) error {
	if !b.status.CanBeCanceled() {
		return domain.NewInvalidStateError(string(b.status), string(StatusCanceled))
	}
	b.status = StatusCanceled
	b.updatedAt = now.UTC()
	return nil
}

// Return records the device hand-back and completes the booking. The
// return record is written exactly once; a second return fails without
// touching the first record.
func (b *Booking) Return(condition ReturnCondition, comments string, now time.Time) error {
	if b.IsReturned() {
		return ErrAlreadyReturned
	}
	if !condition.IsValid() {
		return domain.NewValidationError("invalid return condition: " + string(condition))
	}
	if !b.status.CanTransitionTo(StatusCompleted) {
		return domain.NewInvalidStateError(string(b.status), string(StatusCompleted))
	}
	b.returned = &ReturnRecord{
		Condition:  condition,
		Comments:   comments,
		ReturnedAt: now.UTC(),
	}
	b.status = StatusCompleted
	b.updatedAt = now.UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
}
