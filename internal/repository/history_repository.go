package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/assetdesk/service-booking/internal/domain/history"
	"github.com/assetdesk/service-booking/pkg/domain"
)

// HistoryEntryModel is the GORM model for the history_entries table.
type HistoryEntryModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AssetID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	EmployeeID *uuid.UUID `gorm:"type:uuid;index"`
	Action     string     `gorm:"not null;size:50;index"`
	Notes      string     `gorm:"size:1000"`
	CreatedAt  time.Time  `gorm:"type:timestamptz;not null"`
}

func (HistoryEntryModel) TableName() string { return "history_entries" }

// GormHistoryRecorder implements history.Recorder using GORM.
type GormHistoryRecorder struct {
	db *gorm.DB
}

// NewGormHistoryRecorder creates a new GormHistoryRecorder.
func NewGormHistoryRecorder(db *gorm.DB) *GormHistoryRecorder {
	return &GormHistoryRecorder{db: db}
}

// Record appends an entry to the asset history trail.
func (r *GormHistoryRecorder) Record(ctx context.Context, entry history.Entry) error {
	model := &HistoryEntryModel{
		ID:         entry.ID,
		AssetID:    entry.AssetID,
		EmployeeID: entry.EmployeeID,
		Action:     entry.Action,
		Notes:      entry.Notes,
		CreatedAt:  entry.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return domain.NewUnavailableError("failed to record history entry", err)
	}
	return nil
}
