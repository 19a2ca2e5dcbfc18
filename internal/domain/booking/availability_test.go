package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func reconstructAt(status BookingStatus, start, end time.Time) *Booking {
	return Reconstruct(
		uuid.New(), uuid.New(), uuid.New(),
		status, start, end, "",
		nil, 1, start, start,
	)
}

func TestClassifyAvailability(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		current *Booking
		recent  []*Booking
		want    Availability
	}{
		{
			name: "no bookings",
			want: AvailabilityAvailable,
		},
		{
			name:    "active booking inside its window",
			current: reconstructAt(StatusActive, now.Add(-time.Hour), now.Add(time.Hour)),
			want:    AvailabilityBooked,
		},
		{
			name:    "active booking past its end is treated as free",
			current: reconstructAt(StatusActive, now.Add(-3*time.Hour), now.Add(-time.Hour)),
			want:    AvailabilityAvailable,
		},
		{
			name:    "pending reservation",
			current: reconstructAt(StatusReserved, now.Add(time.Hour), now.Add(3*time.Hour)),
			want:    AvailabilityPartial,
		},
		{
			name:    "unexpired active wins over a reservation",
			current: reconstructAt(StatusActive, now.Add(-time.Hour), now.Add(time.Hour)),
			recent: []*Booking{
				reconstructAt(StatusReserved, now.Add(2*time.Hour), now.Add(4*time.Hour)),
			},
			want: AvailabilityBooked,
		},
		{
			name:    "expired active with a pending reservation",
			current: reconstructAt(StatusReserved, now.Add(2*time.Hour), now.Add(4*time.Hour)),
			recent: []*Booking{
				reconstructAt(StatusActive, now.Add(-4*time.Hour), now.Add(-2*time.Hour)),
			},
			want: AvailabilityPartial,
		},
		{
			name: "completed and canceled bookings are ignored",
			recent: []*Booking{
				reconstructAt(StatusCompleted, now.Add(-2*time.Hour), now.Add(2*time.Hour)),
				reconstructAt(StatusCanceled, now.Add(time.Hour), now.Add(3*time.Hour)),
			},
			want: AvailabilityAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyAvailability(tt.current, tt.recent, now)
			assert.Equal(t, tt.want, got)

			// Same inputs, same clock, same answer.
			assert.Equal(t, got, ClassifyAvailability(tt.current, tt.recent, now))
		})
	}
}

func TestClassifyAvailability_DeduplicatesCurrent(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	current := reconstructAt(StatusReserved, now.Add(time.Hour), now.Add(3*time.Hour))

	// The current booking also appears in the recent set.
	got := ClassifyAvailability(current, []*Booking{current}, now)
	assert.Equal(t, AvailabilityPartial, got)
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	open := reconstructAt(StatusActive, now.Add(-time.Hour), now.Add(time.Hour))
	assert.False(t, open.IsExpired(now))

	closing := reconstructAt(StatusActive, now.Add(-2*time.Hour), now)
	assert.False(t, closing.IsExpired(now))

	closed := reconstructAt(StatusActive, now.Add(-2*time.Hour), now.Add(-time.Second))
	assert.True(t, closed.IsExpired(now))
}

func TestCountUpcoming(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	bookings := []*Booking{
		reconstructAt(StatusReserved, now.Add(time.Hour), now.Add(2*time.Hour)),
		reconstructAt(StatusActive, now.Add(2*time.Hour), now.Add(4*time.Hour)),
		reconstructAt(StatusActive, now.Add(-time.Hour), now.Add(time.Hour)),
		reconstructAt(StatusCanceled, now.Add(time.Hour), now.Add(2*time.Hour)),
		reconstructAt(StatusCompleted, now.Add(3*time.Hour), now.Add(5*time.Hour)),
	}

	assert.Equal(t, 2, CountUpcoming(bookings, now))
	assert.Equal(t, 0, CountUpcoming(nil, now))
}
