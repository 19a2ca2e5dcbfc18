package asset

import (
	"time"

	"github.com/google/uuid"

	"github.com/assetdesk/service-booking/pkg/domain"
)

// AssetStatus represents the lifecycle state of an asset.
type AssetStatus string

const (
	AssetStatusInStock  AssetStatus = "in_stock"
	AssetStatusAssigned AssetStatus = "assigned"
	AssetStatusPool     AssetStatus = "pool"
	AssetStatusRepair   AssetStatus = "repair"
	AssetStatusRetired  AssetStatus = "retired"
)

// IsValid returns true if the status is recognized.
func (s AssetStatus) IsValid() bool {
	switch s {
	case AssetStatusInStock, AssetStatusAssigned, AssetStatusPool, AssetStatusRepair, AssetStatusRetired:
		return true
	}
	return false
}

// Asset is the aggregate root for a tracked IT asset.
type Asset struct {
	id         uuid.UUID
	assetTag   string
	name       string
	category   string
	status     AssetStatus
	poolDevice bool
	version    int64
	createdAt  time.Time
	updatedAt  time.Time
}

// NewAsset creates a new asset record with validated fields.
func NewAsset(assetTag, name, category string, status AssetStatus, poolDevice bool) (*Asset, error) {
	if assetTag == "" {
		return nil, domain.NewValidationError("asset tag is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("asset name is required")
	}
	if !status.IsValid() {
		return nil, domain.NewValidationError("invalid asset status: " + string(status))
	}

	now := time.Now().UTC()
	return &Asset{
		id:         uuid.New(),
		assetTag:   assetTag,
		name:       name,
		category:   category,
		status:     status,
		poolDevice: poolDevice,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Reconstruct rebuilds an Asset from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	assetTag, name, category string,
	status AssetStatus,
	poolDevice bool,
	version int64,
	createdAt, updatedAt time.Time,
) *Asset {
	return &Asset{
		id:         id,
		assetTag:   assetTag,
		name:       name,
		category:   category,
		status:     status,
		poolDevice: poolDevice,
		version:    version,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// --- Getters ---

func (a *Asset) ID() uuid.UUID        { return a.id }
func (a *Asset) AssetTag() string     { return a.assetTag }
func (a *Asset) Name() string         { return a.name }
func (a *Asset) Category() string     { return a.category }
func (a *Asset) Status() AssetStatus  { return a.status }
func (a *Asset) PoolDevice() bool     { return a.poolDevice }
func (a *Asset) Version() int64       { return a.version }
func (a *Asset) CreatedAt() time.Time { return a.createdAt }
func (a *Asset) UpdatedAt() time.Time { return a.updatedAt }

// --- Behavior ---

// IsBookable reports whether the asset is a pool device employees may
// book. The pool flag and a pool status both qualify; retired assets
// never do.
func (a *Asset) IsBookable() bool {
	if a.status == AssetStatusRetired {
		return false
	}
	return a.poolDevice || a.status == AssetStatusPool
}

// Retire marks the asset as permanently out of service.
func (a *Asset) Retire() {
	a.status = AssetStatusRetired
	a.version++
	a.updatedAt = time.Now().UTC()
}
