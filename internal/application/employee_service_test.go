package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingDomain "github.com/assetdesk/service-booking/internal/domain/booking"
	"github.com/assetdesk/service-booking/pkg/domain"
)

func TestCreateEmployee(t *testing.T) {
	t.Run("new employees start active", func(t *testing.T) {
		svc := NewEmployeeService(newFakeEmployeeRepo(), zap.NewNop())

		dto, err := svc.CreateEmployee(context.Background(), CreateEmployeeRequest{
			Name:       "Dana Reyes",
			Email:      "dana.reyes@example.com",
			Department: "QA",
		})
		require.NoError(t, err)
		assert.True(t, dto.Active)
	})

	t.Run("missing email is rejected", func(t *testing.T) {
		svc := NewEmployeeService(newFakeEmployeeRepo(), zap.NewNop())

		_, err := svc.CreateEmployee(context.Background(), CreateEmployeeRequest{Name: "Dana Reyes"})
		assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))
	})
}

func TestDeactivateEmployee(t *testing.T) {
	t.Run("deactivated employee can no longer book", func(t *testing.T) {
		f := newServiceFixture(t)
		a := f.addPoolAsset(t)
		e := f.addEmployee(t)
		empSvc := NewEmployeeService(f.employees, zap.NewNop())

		dto, err := empSvc.DeactivateEmployee(context.Background(), e.ID())
		require.NoError(t, err)
		assert.False(t, dto.Active)

		stored, err := empSvc.GetEmployee(context.Background(), e.ID())
		require.NoError(t, err)
		assert.False(t, stored.Active)

		_, err = f.svc.BookAsset(context.Background(), e.ID(), CreateBookingRequest{
			AssetID: a.ID(),
			StartAt: f.now,
			EndAt:   f.now.Add(time.Hour),
		})
		assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))
	})

	t.Run("existing bookings are untouched", func(t *testing.T) {
		f := newServiceFixture(t)
		a := f.addPoolAsset(t)
		e := f.addEmployee(t)
		empSvc := NewEmployeeService(f.employees, zap.NewNop())

		dto := f.book(t, a.ID(), e.ID(), f.now.Add(-time.Hour), f.now.Add(3*time.Hour))

		_, err := empSvc.DeactivateEmployee(context.Background(), e.ID())
		require.NoError(t, err)

		current, err := f.svc.GetBooking(context.Background(), dto.ID)
		require.NoError(t, err)
		assert.Equal(t, string(bookingDomain.StatusActive), current.Status)
	})

	t.Run("unknown employee yields not found", func(t *testing.T) {
		svc := NewEmployeeService(newFakeEmployeeRepo(), zap.NewNop())

		_, err := svc.DeactivateEmployee(context.Background(), uuid.New())
		assert.Equal(t, domain.ErrCodeNotFound, domain.CodeOf(err))
	})
}
