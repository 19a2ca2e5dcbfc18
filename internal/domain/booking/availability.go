package booking

import "time"

// Availability is the derived classification of a pool asset, computed
// from its booking set on every read and never persisted.
type Availability string

const (
	// AvailabilityAvailable means the asset can be taken right now.
	AvailabilityAvailable Availability = "available"
	// AvailabilityBooked means an unexpired active booking holds the asset.
	AvailabilityBooked Availability = "booked"
	// AvailabilityPartial means the asset is free now but a future
	// reservation is pending.
	AvailabilityPartial Availability = "available_partial"
)

// IsExpired reports whether the booking window has closed at now.
func (b *Booking) IsExpired(now time.Time) bool {
	return now.After(b.endAt)
}

// ClassifyAvailability derives the availability of an asset from its
// current-or-upcoming booking and its recent booking set.
//
// An active booking whose end has passed without an explicit return is
// treated as expired for classification: the stored status is not
// touched, it is only reinterpreted for display.
func ClassifyAvailability(current *Booking, recent []*Booking, now time.Time) Availability {
	hasReservation := false
	for _, b := range candidates(current, recent) {
		switch b.Status() {
		case StatusActive:
			if !b.IsExpired(now) {
				return AvailabilityBooked
			}
		case StatusReserved:
			hasReservation = true
		}
	}
	if hasReservation {
		return AvailabilityPartial
	}
	return AvailabilityAvailable
}

// CountUpcoming counts reserved or active bookings whose window has not
// yet opened at now.
func CountUpcoming(bookings []*Booking, now time.Time) int {
	count := 0
	for _, b := range bookings {
		if b.Status() != StatusReserved && b.Status() != StatusActive {
			continue
		}
		if b.StartAt().After(now) {
			count++
		}
	}
	return count
}

func candidates(current *Booking, recent []*Booking) []*Booking {
	if current == nil {
		return recent
	}
	all := make([]*Booking, 0, len(recent)+1)
	all = append(all, current)
	for _, b := range recent {
		if b.ID() != current.ID() {
			all = append(all, b)
		}
	}
	return all
}
