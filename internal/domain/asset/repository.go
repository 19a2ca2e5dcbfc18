package asset

import (
	"context"

	"github.com/google/uuid"
)

// AssetRepository defines the persistence contract for assets.
type AssetRepository interface {
	// FindByID retrieves an asset by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Asset, error)

	// ListPool retrieves all bookable pool assets with pagination.
	ListPool(ctx context.Context, page, limit int) ([]*Asset, int64, error)

	// Save persists a new asset.
	Save(ctx context.Context, asset *Asset) error

	// Update persists changes to an existing asset with optimistic locking.
	Update(ctx context.Context, asset *Asset) error
}
