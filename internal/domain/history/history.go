package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Action tags recorded on history entries.
const (
	ActionBooking = "booking"
)

// Entry is a timestamped audit record correlating an asset, an optional
// employee, an action tag and free-text notes.
type Entry struct {
	ID         uuid.UUID
	AssetID    uuid.UUID
	EmployeeID *uuid.UUID
	Action     string
	Notes      string
	CreatedAt  time.Time
}

// NewEntry builds a history entry for the given asset.
func NewEntry(assetID uuid.UUID, employeeID *uuid.UUID, action, notes string, now time.Time) Entry {
	return Entry{
		ID:         uuid.New(),
		AssetID:    assetID,
		EmployeeID: employeeID,
		Action:     action,
		Notes:      notes,
		CreatedAt:  now.UTC(),
	}
}

// Recorder appends entries to the asset history trail. Writes are
// best-effort: a failed write never rolls back the mutation it trails.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}
