package booking

import "github.com/assetdesk/service-booking/pkg/domain"

// Sentinel domain errors for the booking lifecycle. Returned un-wrapped
// so callers can match with errors.Is.
var (
	// ErrInvalidRange rejects bookings whose start is not strictly before the end.
	ErrInvalidRange = domain.NewValidationError("booking start must be before booking end")

	// ErrIneligibleAsset rejects bookings against assets that are not pool devices.
	ErrIneligibleAsset = domain.NewValidationError("asset is not a bookable pool device")

	// ErrAlreadyReturned rejects a second return of the same booking.
	ErrAlreadyReturned = domain.NewConflictError("booking has already been returned")
)
