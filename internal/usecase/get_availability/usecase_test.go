package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoworkingService/internal/admission"
	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	spaceClient "github.com/m04kA/SMC-CoworkingService/internal/integrations/spaceservice"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) CountActive(ctx context.Context, areaID int64, start, end time.Time, excludeID *int64) (int, error) {
	args := m.Called(ctx, areaID, start, end, excludeID)
	return args.Int(0), args.Error(1)
}

type mockAreaProvider struct {
	mock.Mock
}

func (m *mockAreaProvider) GetAreaConfig(ctx context.Context, areaID int64) (*domain.AreaConfig, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AreaConfig), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func intPtr(v int) *int { return &v }

var (
	windowStart = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	windowEnd   = windowStart.Add(4 * time.Hour)
)

func TestExecute(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		cfg           *domain.AreaConfig
		active        int
		guests        int
		wantRemaining *int
		wantDecision  *admission.Decision
	}{
		{
			name:          "room left",
			cfg:           &domain.AreaConfig{MaxCapacity: intPtr(10), AutomaticBookingEnabled: true},
			active:        6,
			guests:        4,
			wantRemaining: intPtr(4),
			wantDecision:  decisionPtr(admission.DecisionAccept),
		},
		{
			name:          "full",
			cfg:           &domain.AreaConfig{MaxCapacity: intPtr(10), AutomaticBookingEnabled: true},
			active:        10,
			guests:        1,
			wantRemaining: intPtr(0),
			wantDecision:  decisionPtr(admission.DecisionRejectFull),
		},
		{
			name:         "unlimited without guests",
			cfg:          &domain.AreaConfig{AutomaticBookingEnabled: true},
			active:       25,
			wantDecision: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := new(mockBookingRepo)
			areas := new(mockAreaProvider)
			areas.On("GetAreaConfig", ctx, int64(3)).Return(tt.cfg, nil)
			bookings.On("CountActive", ctx, int64(3), windowStart, windowEnd, (*int64)(nil)).Return(tt.active, nil)

			resp, err := NewUseCase(bookings, areas, nopLogger{}).Execute(ctx, &Request{
				AreaID: 3, StartAt: windowStart, EndAt: windowEnd, GuestCount: tt.guests,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.active, resp.Availability.ActiveCount)
			assert.Equal(t, tt.wantRemaining, resp.Availability.RemainingSpots())
			assert.Equal(t, tt.wantDecision, resp.Decision)
		})
	}
}

func decisionPtr(d admission.Decision) *admission.Decision { return &d }

func TestExecute_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid window", func(t *testing.T) {
		_, err := NewUseCase(new(mockBookingRepo), new(mockAreaProvider), nopLogger{}).Execute(ctx, &Request{
			AreaID: 3, StartAt: windowEnd, EndAt: windowStart,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("area not found", func(t *testing.T) {
		areas := new(mockAreaProvider)
		areas.On("GetAreaConfig", ctx, int64(3)).Return(nil, spaceClient.ErrAreaNotFound)

		_, err := NewUseCase(new(mockBookingRepo), areas, nopLogger{}).Execute(ctx, &Request{
			AreaID: 3, StartAt: windowStart, EndAt: windowEnd,
		})
		assert.ErrorIs(t, err, ErrAreaNotFound)
	})

	t.Run("count fails", func(t *testing.T) {
		areas := new(mockAreaProvider)
		bookings := new(mockBookingRepo)
		areas.On("GetAreaConfig", ctx, int64(3)).Return(&domain.AreaConfig{}, nil)
		bookings.On("CountActive", ctx, int64(3), windowStart, windowEnd, (*int64)(nil)).Return(0, errors.New("timeout"))

		_, err := NewUseCase(bookings, areas, nopLogger{}).Execute(ctx, &Request{
			AreaID: 3, StartAt: windowStart, EndAt: windowEnd,
		})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
