package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	assetDomain "github.com/assetdesk/service-booking/internal/domain/asset"
	"github.com/assetdesk/service-booking/internal/events"
	"github.com/assetdesk/service-booking/pkg/domain"
	"github.com/assetdesk/service-booking/pkg/kafka"
)

// CreateAssetRequest is the request DTO for registering an asset.
type CreateAssetRequest struct {
	AssetTag   string `json:"asset_tag" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Category   string `json:"category"`
	Status     string `json:"status"`
	PoolDevice bool   `json:"pool_device"`
}

// AssetDTO is the API response representation of an asset.
type AssetDTO struct {
	ID         uuid.UUID `json:"id"`
	AssetTag   string    `json:"asset_tag"`
	Name       string    `json:"name"`
	Category   string    `json:"category,omitempty"`
	Status     string    `json:"status"`
	PoolDevice bool      `json:"pool_device"`
	Bookable   bool      `json:"bookable"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AssetService implements use cases for asset registry management.
type AssetService struct {
	repo     assetDomain.AssetRepository
	producer EventPublisher
	logger   *zap.Logger
}

// NewAssetService creates a new AssetService.
func NewAssetService(repo assetDomain.AssetRepository, producer EventPublisher, logger *zap.Logger) *AssetService {
	return &AssetService{repo: repo, producer: producer, logger: logger}
}

// CreateAsset registers a new asset.
func (s *AssetService) CreateAsset(ctx context.Context, req CreateAssetRequest) (*AssetDTO, error) {
	status := assetDomain.AssetStatus(req.Status)
	if req.Status == "" {
		status = assetDomain.AssetStatusInStock
	}

	a, err := assetDomain.NewAsset(req.AssetTag, req.Name, req.Category, status, req.PoolDevice)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, a); err != nil {
		s.logger.Error("failed to create asset", zap.Error(err))
		return nil, err
	}

	s.logger.Info("asset registered",
		zap.String("asset_id", a.ID().String()),
		zap.String("asset_tag", a.AssetTag()),
	)
	result := toAssetDTO(a)
	return &result, nil
}

// GetAsset retrieves a single asset by ID.
func (s *AssetService) GetAsset(ctx context.Context, assetID uuid.UUID) (*AssetDTO, error) {
	a, err := s.repo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	result := toAssetDTO(a)
	return &result, nil
}

// ListPoolAssets retrieves paginated bookable pool assets.
func (s *AssetService) ListPoolAssets(ctx context.Context, page, limit int) (*domain.PaginatedResult[AssetDTO], error) {
	assets, total, err := s.repo.ListPool(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]AssetDTO, len(assets))
	for i, a := range assets {
		dtos[i] = toAssetDTO(a)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// RetireAsset takes an asset permanently out of service and announces
// the retirement so open bookings get canceled.
func (s *AssetService) RetireAsset(ctx context.Context, assetID uuid.UUID, reason string) (*AssetDTO, error) {
	a, err := s.repo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if a.Status() == assetDomain.AssetStatusRetired {
		return nil, domain.NewInvalidStateError(string(a.Status()), string(assetDomain.AssetStatusRetired))
	}

	a.Retire()
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	evt := events.AssetRetiredEvent{
		AssetID:    a.ID(),
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicAssetEvents, events.AssetRetired, evt)

	result := toAssetDTO(a)
	return &result, nil
}

func (s *AssetService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent("service-booking", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event", zap.String("event_type", eventType), zap.Error(err))
		return
	}
	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toAssetDTO(a *assetDomain.Asset) AssetDTO {
	return AssetDTO{
		ID:         a.ID(),
		AssetTag:   a.AssetTag(),
		Name:       a.Name(),
		Category:   a.Category(),
		Status:     string(a.Status()),
		PoolDevice: a.PoolDevice(),
		Bookable:   a.IsBookable(),
		CreatedAt:  a.CreatedAt(),
		UpdatedAt:  a.UpdatedAt(),
	}
}
