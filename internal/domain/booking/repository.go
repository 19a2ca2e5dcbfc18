package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByAssetID retrieves all bookings for an asset, newest first.
	FindByAssetID(ctx context.Context, assetID uuid.UUID) ([]*Booking, error)

	// FindCurrentOrUpcoming retrieves the single non-canceled booking for
	// the asset whose window is open now or opens soonest, earliest start
	// first. Returns nil when no such booking exists.
	FindCurrentOrUpcoming(ctx context.Context, assetID uuid.UUID, now time.Time) (*Booking, error)

	// ListAll retrieves all bookings with pagination.
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status.
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error
}
