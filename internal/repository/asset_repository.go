package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	assetDomain "github.com/assetdesk/service-booking/internal/domain/asset"
	"github.com/assetdesk/service-booking/pkg/domain"
)

// AssetModel is the GORM model for the assets table.
type AssetModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssetTag   string    `gorm:"uniqueIndex;not null;size:50"`
	Name       string    `gorm:"not null;size:200"`
	Category   string    `gorm:"size:100;index"`
	Status     string    `gorm:"not null;size:20;index"`
	PoolDevice bool      `gorm:"not null;default:false;index"`
	Version    int64     `gorm:"not null;default:1"`
	CreatedAt  time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt  time.Time `gorm:"type:timestamptz;not null"`
}

func (AssetModel) TableName() string { return "assets" }

// GormAssetRepository implements AssetRepository using GORM.
type GormAssetRepository struct {
	db *gorm.DB
}

// NewGormAssetRepository creates a new GormAssetRepository.
func NewGormAssetRepository(db *gorm.DB) *GormAssetRepository {
	return &GormAssetRepository{db: db}
}

// FindByID retrieves an asset by its unique identifier.
func (r *GormAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*assetDomain.Asset, error) {
	var model AssetModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Asset", id.String())
		}
		return nil, domain.NewUnavailableError("failed to find asset", err)
	}
	return toDomainAsset(&model), nil
}

// ListPool retrieves bookable pool assets with pagination.
func (r *GormAssetRepository) ListPool(ctx context.Context, page, limit int) ([]*assetDomain.Asset, int64, error) {
	poolFilter := r.db.WithContext(ctx).Model(&AssetModel{}).
		Where("(pool_device = ? OR status = ?) AND status <> ?",
			true, string(assetDomain.AssetStatusPool), string(assetDomain.AssetStatusRetired))

	var total int64
	if err := poolFilter.Count(&total).Error; err != nil {
		return nil, 0, domain.NewUnavailableError("failed to count pool assets", err)
	}

	var models []AssetModel
	offset := (page - 1) * limit
	if err := poolFilter.
		Order("asset_tag ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, domain.NewUnavailableError("failed to list pool assets", err)
	}

	assets := make([]*assetDomain.Asset, len(models))
	for i, m := range models {
		assets[i] = toDomainAsset(&m)
	}
	return assets, total, nil
}

// Save persists a new asset.
func (r *GormAssetRepository) Save(ctx context.Context, a *assetDomain.Asset) error {
	if err := r.db.WithContext(ctx).Create(toAssetModel(a)).Error; err != nil {
		return domain.NewUnavailableError("failed to save asset", err)
	}
	return nil
}

// Update persists changes to an existing asset with optimistic locking.
func (r *GormAssetRepository) Update(ctx context.Context, a *assetDomain.Asset) error {
	model := toAssetModel(a)

	expectedVersion := a.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&AssetModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"category":    model.Category,
			"status":      model.Status,
			"pool_device": model.PoolDevice,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})

	if result.Error != nil {
		return domain.NewUnavailableError("failed to update asset", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("asset was modified by another transaction")
	}
	return nil
}

func toAssetModel(a *assetDomain.Asset) *AssetModel {
	return &AssetModel{
		ID:         a.ID(),
		AssetTag:   a.AssetTag(),
		Name:       a.Name(),
		Category:   a.Category(),
		Status:     string(a.Status()),
		PoolDevice: a.PoolDevice(),
		Version:    a.Version(),
		CreatedAt:  a.CreatedAt(),
		UpdatedAt:  a.UpdatedAt(),
	}
}

func toDomainAsset(m *AssetModel) *assetDomain.Asset {
	return assetDomain.Reconstruct(
		m.ID,
		m.AssetTag,
		m.Name,
		m.Category,
		assetDomain.AssetStatus(m.Status),
		m.PoolDevice,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
