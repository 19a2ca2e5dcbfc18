package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	assetDomain "github.com/assetdesk/service-booking/internal/domain/asset"
	bookingDomain "github.com/assetdesk/service-booking/internal/domain/booking"
	employeeDomain "github.com/assetdesk/service-booking/internal/domain/employee"
	"github.com/assetdesk/service-booking/internal/domain/history"
	"github.com/assetdesk/service-booking/internal/events"
	"github.com/assetdesk/service-booking/pkg/domain"
	"github.com/assetdesk/service-booking/pkg/kafka"
)

// EventPublisher publishes CloudEvents to a topic.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// CreateBookingRequest holds the data needed to book a pool asset.
type CreateBookingRequest struct {
	AssetID uuid.UUID `json:"asset_id" binding:"required"`
	StartAt time.Time `json:"start_at" binding:"required"`
	EndAt   time.Time `json:"end_at" binding:"required"`
	Purpose string    `json:"purpose"`
}

// ReturnAssetRequest holds the data recorded when a device is handed back.
type ReturnAssetRequest struct {
	Condition string `json:"condition" binding:"required"`
	Comments  string `json:"comments"`
}

// ReturnRecordDTO is the response representation of a return record.
type ReturnRecordDTO struct {
	Condition  string    `json:"condition"`
	Comments   string    `json:"comments,omitempty"`
	ReturnedAt time.Time `json:"returned_at"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID         uuid.UUID        `json:"id"`
	AssetID    uuid.UUID        `json:"asset_id"`
	EmployeeID uuid.UUID        `json:"employee_id"`
	Status     string           `json:"status"`
	StartAt    time.Time        `json:"start_at"`
	EndAt      time.Time        `json:"end_at"`
	Purpose    string           `json:"purpose,omitempty"`
	Return     *ReturnRecordDTO `json:"return,omitempty"`
	Version    int64            `json:"version"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// AssetBookingStateDTO is the derived per-asset view consumed by the
// presentation layer: current booking, recent bookings and the
// availability classification, recomputed on every read.
type AssetBookingStateDTO struct {
	AssetID        uuid.UUID    `json:"asset_id"`
	CurrentBooking *BookingDTO  `json:"current_booking,omitempty"`
	RecentBookings []BookingDTO `json:"recent_bookings"`
	Availability   string       `json:"availability"`
	UpcomingCount  int          `json:"upcoming_count"`
}

// BookingStatsDTO holds fleet-wide booking statistics.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// BookingService orchestrates the booking lifecycle: create, cancel,
// return, and the availability refresh that follows every mutation.
type BookingService struct {
	bookings  bookingDomain.BookingRepository
	assets    assetDomain.AssetRepository
	employees employeeDomain.EmployeeRepository
	history   history.Recorder
	producer  EventPublisher
	logger    *zap.Logger
	clock     func() time.Time
}

// NewBookingService creates a new BookingService using the wall clock.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	assets assetDomain.AssetRepository,
	employees employeeDomain.EmployeeRepository,
	recorder history.Recorder,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		assets:    assets,
		employees: employees,
		history:   recorder,
		producer:  producer,
		logger:    logger,
		clock:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the service clock. Used by tests to pin "now".
func (s *BookingService) WithClock(clock func() time.Time) *BookingService {
	s.clock = clock
	return s
}

// BookAsset creates a booking for a pool asset on behalf of an employee.
// Eligibility and range validation happen before any booking-store
// mutation; on failure nothing is persisted.
func (s *BookingService) BookAsset(ctx context.Context, employeeID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	a, err := s.assets.FindByID(ctx, req.AssetID)
	if err != nil {
		return nil, err
	}
	if !a.IsBookable() {
		return nil, bookingDomain.ErrIneligibleAsset
	}

	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !emp.Active() {
		return nil, domain.NewValidationError("employee is not active")
	}

	now := s.clock()
	bk, err := bookingDomain.NewBooking(req.AssetID, employeeID, req.StartAt, req.EndAt, req.Purpose, now)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, err
	}

	s.recordHistory(ctx, bk.AssetID(), bk.EmployeeID(),
		fmt.Sprintf("booked by %s until %s", emp.Name(), bk.EndAt().Format(time.RFC3339)))

	evt := events.BookingCreatedEvent{
		BookingID:  bk.ID(),
		AssetID:    bk.AssetID(),
		EmployeeID: bk.EmployeeID(),
		Status:     string(bk.Status()),
		StartAt:    bk.StartAt(),
		EndAt:      bk.EndAt(),
		OccurredAt: now,
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCreated, evt)
	s.refreshAvailability(ctx, bk.AssetID())

	result := toBookingDTO(bk)
	return &result, nil
}

// CancelBooking cancels a reserved or active booking. The record stays
// in the store with status canceled.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	if err := bk.Cancel(now); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.recordHistory(ctx, bk.AssetID(), bk.EmployeeID(), "booking canceled")

	evt := events.BookingCanceledEvent{
		BookingID:  bk.ID(),
		AssetID:    bk.AssetID(),
		EmployeeID: bk.EmployeeID(),
		OccurredAt: now,
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCanceled, evt)
	s.refreshAvailability(ctx, bk.AssetID())

	result := toBookingDTO(bk)
	return &result, nil
}

// ReturnAsset records the device hand-back and completes the booking.
func (s *BookingService) ReturnAsset(ctx context.Context, bookingID uuid.UUID, req ReturnAssetRequest) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	if err := bk.Return(bookingDomain.ReturnCondition(req.Condition), req.Comments, now); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.recordHistory(ctx, bk.AssetID(), bk.EmployeeID(),
		fmt.Sprintf("returned in condition %s", req.Condition))

	rr := bk.ReturnRecord()
	evt := events.BookingReturnedEvent{
		BookingID:  bk.ID(),
		AssetID:    bk.AssetID(),
		EmployeeID: bk.EmployeeID(),
		Condition:  string(rr.Condition),
		Comments:   rr.Comments,
		ReturnedAt: rr.ReturnedAt,
		OccurredAt: now,
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingReturned, evt)
	s.refreshAvailability(ctx, bk.AssetID())

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a single booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetAssetBookingState re-fetches an asset's bookings and re-derives its
// availability. Nothing derived here is ever cached or persisted.
func (s *BookingService) GetAssetBookingState(ctx context.Context, assetID uuid.UUID) (*AssetBookingStateDTO, error) {
	if _, err := s.assets.FindByID(ctx, assetID); err != nil {
		return nil, err
	}

	now := s.clock()
	current, err := s.bookings.FindCurrentOrUpcoming(ctx, assetID, now)
	if err != nil {
		return nil, err
	}
	recent, err := s.bookings.FindByAssetID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	state := &AssetBookingStateDTO{
		AssetID:        assetID,
		RecentBookings: make([]BookingDTO, len(recent)),
		Availability:   string(bookingDomain.ClassifyAvailability(current, recent, now)),
		UpcomingCount:  bookingDomain.CountUpcoming(recent, now),
	}
	if current != nil {
		dto := toBookingDTO(current)
		state.CurrentBooking = &dto
	}
	for i, bk := range recent {
		state.RecentBookings[i] = toBookingDTO(bk)
	}
	return state, nil
}

// CancelOpenBookingsForAsset cancels every reserved or active booking
// for the asset. Invoked when an asset is retired.
func (s *BookingService) CancelOpenBookingsForAsset(ctx context.Context, assetID uuid.UUID) (int, error) {
	all, err := s.bookings.FindByAssetID(ctx, assetID)
	if err != nil {
		return 0, err
	}

	now := s.clock()
	canceled := 0
	for _, bk := range all {
		if !bk.Status().CanBeCanceled() {
			continue
		}
		if err := bk.Cancel(now); err != nil {
			continue
		}
		bk.IncrementVersion()
		if err := s.bookings.Update(ctx, bk); err != nil {
			s.logger.Error("failed to cancel booking for retired asset",
				zap.String("booking_id", bk.ID().String()),
				zap.Error(err),
			)
			continue
		}
		canceled++
	}

	if canceled > 0 {
		s.recordHistory(ctx, assetID, uuid.Nil,
			fmt.Sprintf("canceled %d open bookings on asset retirement", canceled))
		s.refreshAvailability(ctx, assetID)
	}
	return canceled, nil
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.bookings.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos, total, nil
}

// GetBookingStats returns fleet-wide booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      counts,
	}, nil
}

// --- Helpers ---

// refreshAvailability re-derives the asset's availability and publishes
// the snapshot. Refresh follows an already-committed mutation, so
// failures here are logged and never unwind the mutation.
func (s *BookingService) refreshAvailability(ctx context.Context, assetID uuid.UUID) {
	now := s.clock()
	current, err := s.bookings.FindCurrentOrUpcoming(ctx, assetID, now)
	if err != nil {
		s.logger.Error("availability refresh failed", zap.String("asset_id", assetID.String()), zap.Error(err))
		return
	}
	recent, err := s.bookings.FindByAssetID(ctx, assetID)
	if err != nil {
		s.logger.Error("availability refresh failed", zap.String("asset_id", assetID.String()), zap.Error(err))
		return
	}

	evt := events.AssetAvailabilityChangedEvent{
		AssetID:       assetID,
		Availability:  string(bookingDomain.ClassifyAvailability(current, recent, now)),
		UpcomingCount: bookingDomain.CountUpcoming(recent, now),
		OccurredAt:    now,
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.AssetAvailabilityChanged, evt)
}

// recordHistory appends to the asset history trail best-effort; a
// failed write is logged and never rolls back the booking mutation.
func (s *BookingService) recordHistory(ctx context.Context, assetID, employeeID uuid.UUID, notes string) {
	var empRef *uuid.UUID
	if employeeID != uuid.Nil {
		empRef = &employeeID
	}
	entry := history.NewEntry(assetID, empRef, history.ActionBooking, notes, s.clock())
	if err := s.history.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record history entry",
			zap.String("asset_id", assetID.String()),
			zap.Error(err),
		)
	}
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent("service-booking", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
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

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	dto := BookingDTO{
		ID:         bk.ID(),
		AssetID:    bk.AssetID(),
		EmployeeID: bk.EmployeeID(),
		Status:     string(bk.Status()),
		StartAt:    bk.StartAt(),
		EndAt:      bk.EndAt(),
		Purpose:    bk.Purpose(),
		Version:    bk.Version(),
		CreatedAt:  bk.CreatedAt(),
		UpdatedAt:  bk.UpdatedAt(),
	}
	if rr := bk.ReturnRecord(); rr != nil {
		dto.Return = &ReturnRecordDTO{
			Condition:  string(rr.Condition),
			Comments:   rr.Comments,
			ReturnedAt: rr.ReturnedAt,
		}
	}
	return dto
}
