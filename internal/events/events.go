package events

import (
	"time"

	"github.com/google/uuid"
)

// Kafka topics this service produces to and consumes from.
const (
	TopicBookingEvents = "booking.events"
	TopicAssetEvents   = "asset.events"
)

// Event types carried in CloudEvent envelopes.
const (
	BookingCreated           = "booking.created"
	BookingCanceled          = "booking.canceled"
	BookingReturned          = "booking.returned"
	AssetAvailabilityChanged = "asset.availability_changed"
	AssetRetired             = "asset.retired"
)

// BookingCreatedEvent is published when a new booking is persisted.
type BookingCreatedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	AssetID    uuid.UUID `json:"asset_id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	Status     string    `json:"status"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingCanceledEvent is published when a booking is canceled.
type BookingCanceledEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	AssetID    uuid.UUID `json:"asset_id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingReturnedEvent is published when a booked device is handed back.
type BookingReturnedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	AssetID    uuid.UUID `json:"asset_id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	Condition  string    `json:"condition"`
	Comments   string    `json:"comments,omitempty"`
	ReturnedAt time.Time `json:"returned_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AssetAvailabilityChangedEvent carries the re-derived availability
// snapshot published after every booking mutation so observers never
// render stale state.
type AssetAvailabilityChangedEvent struct {
	AssetID       uuid.UUID `json:"asset_id"`
	Availability  string    `json:"availability"`
	UpcomingCount int       `json:"upcoming_count"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// AssetRetiredEvent is consumed from the asset service when an asset is
// permanently taken out of service.
type AssetRetiredEvent struct {
	AssetID    uuid.UUID `json:"asset_id"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
