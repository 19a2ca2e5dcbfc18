package events

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/assetdesk/service-booking/pkg/kafka"
)

// AssetEventConsumer listens to asset events and cancels open bookings
// when an asset is retired.
type AssetEventConsumer struct {
	consumer *kafka.Consumer
	logger   *zap.Logger
	handle   func(ctx context.Context, evt AssetRetiredEvent) error
}

// NewAssetEventConsumer creates a new AssetEventConsumer.
func NewAssetEventConsumer(
	brokers []string,
	groupID string,
	onRetired func(ctx context.Context, evt AssetRetiredEvent) error,
	logger *zap.Logger,
) *AssetEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicAssetEvents, logger)
	return &AssetEventConsumer{
		consumer: consumer,
		logger:   logger,
		handle:   onRetired,
	}
}

// Start begins consuming asset events. This blocks until the context is cancelled.
func (c *AssetEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *AssetEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *AssetEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from asset topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case AssetRetired:
		return c.handleAssetRetired(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled asset event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *AssetEventConsumer) handleAssetRetired(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt AssetRetiredEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse AssetRetiredEvent data", zap.Error(err))
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing asset retired event",
		zap.String("asset_id", evt.AssetID.String()),
	)

	if err := c.handle(ctx, evt); err != nil {
		c.logger.Error("failed to cancel bookings for retired asset",
			zap.String("asset_id", evt.AssetID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}
