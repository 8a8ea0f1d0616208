package create_checkout

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
	ruleRepo "github.com/m04kA/SMC-CoworkingService/internal/infra/storage/pricingrule"
	spaceClient "github.com/m04kA/SMC-CoworkingService/internal/integrations/spaceservice"
	"github.com/m04kA/SMC-CoworkingService/internal/pricing"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) CountActive(ctx context.Context, areaID int64, start, end time.Time, excludeID *int64) (int, error) {
	args := m.Called(ctx, areaID, start, end, excludeID)
	return args.Int(0), args.Error(1)
}

type mockRuleRepo struct {
	mock.Mock
}

func (m *mockRuleRepo) GetCurrentByAreaID(ctx context.Context, areaID int64) (*domain.PricingRule, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingRule), args.Error(1)
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

type passThroughTx struct{}

func (passThroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingMetrics struct {
	decisions []string
	branches  []string
}

func (m *recordingMetrics) RecordCheckoutDecision(decision string) {
	m.decisions = append(m.decisions, decision)
}

func (m *recordingMetrics) RecordPricingEvaluation(branch string, _ bool) {
	m.branches = append(m.branches, branch)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	testNow   = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	testStart = time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
)

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

// hourlyRule 100 за час при длинных бронированиях, 50 за час иначе
func hourlyRule() *domain.PricingRule {
	return &domain.PricingRule{
		ID:     42,
		AreaID: 1,
		Active: true,
		Definition: domain.RuleDefinition{
			Name: "hourly",
			Conditions: []domain.Condition{{
				ID:         "long",
				Comparator: domain.CmpGreaterOrEq,
				Type:       domain.TypeNumber,
				Left:       domain.VariableOperand(domain.VarBookingHours),
				Right:      domain.LiteralOperand("8", domain.TypeNumber),
			}},
			Formula: "booking_hours * 100 ELSE booking_hours * 50",
		},
	}
}

type fixture struct {
	bookings *mockBookingRepo
	rules    *mockRuleRepo
	areas    *mockAreaProvider
	metrics  *recordingMetrics
	uc       *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		bookings: new(mockBookingRepo),
		rules:    new(mockRuleRepo),
		areas:    new(mockAreaProvider),
		metrics:  &recordingMetrics{},
	}
	f.uc = NewUseCase(f.bookings, f.rules, f.areas, pricing.NewEvaluator(pricing.DefaultLimits()), passThroughTx{}, f.metrics, nopLogger{})
	f.uc.timeProvider = fixedTime{now: testNow}
	return f
}

func request(hours, guests int) *Request {
	return &Request{
		UserID:     7,
		AreaID:     1,
		StartAt:    testStart,
		EndAt:      testStart.Add(time.Duration(hours) * time.Hour),
		GuestCount: guests,
		Notes:      strPtr("window seat"),
	}
}

func TestExecute_Accept(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := request(2, 3)

	f.areas.On("GetAreaConfig", ctx, int64(1)).Return(&domain.AreaConfig{
		AreaID: 1, MaxCapacity: intPtr(10), AutomaticBookingEnabled: true,
	}, nil)
	f.rules.On("GetCurrentByAreaID", ctx, int64(1)).Return(hourlyRule(), nil)
	f.bookings.On("CountActive", ctx, int64(1), req.StartAt, req.EndAt, (*int64)(nil)).Return(4, nil)
	f.bookings.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.StatusConfirmed &&
			b.UnitPrice.String() == "100" &&
			b.TotalPrice.String() == "300" &&
			b.PricingBranch == string(pricing.BranchElse) &&
			b.PricingRuleID == 42 &&
			b.GuestCount == 3
	})).Return(&domain.Booking{ID: 99, Status: domain.StatusConfirmed}, nil)

	resp, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, int64(99), resp.Booking.ID)
	assert.Equal(t, admission.DecisionAccept, resp.Decision)
	assert.False(t, resp.RequiresApproval)
	assert.Equal(t, pricing.BranchElse, resp.Branch)
	assert.Equal(t, "300.00", resp.TotalPrice.StringFixed(2))
	assert.Equal(t, []string{"accept"}, f.metrics.decisions)
	assert.Equal(t, []string{"else"}, f.metrics.branches)
	f.bookings.AssertExpectations(t)
}

func TestExecute_PendingWhenManualApproval(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := request(8, 1)

	f.areas.On("GetAreaConfig", ctx, int64(1)).Return(&domain.AreaConfig{AreaID: 1}, nil)
	f.rules.On("GetCurrentByAreaID", ctx, int64(1)).Return(hourlyRule(), nil)
	f.bookings.On("CountActive", ctx, int64(1), req.StartAt, req.EndAt, (*int64)(nil)).Return(0, nil)
	f.bookings.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.StatusPending && b.TotalPrice.String() == "800"
	})).Return(&domain.Booking{ID: 1, Status: domain.StatusPending}, nil)

	resp, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, admission.DecisionPending, resp.Decision)
	assert.True(t, resp.RequiresApproval)
	assert.Equal(t, pricing.BranchThen, resp.Branch)
}

func TestExecute_PendingAtCapacity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := request(2, 2)

	f.areas.On("GetAreaConfig", ctx, int64(1)).Return(&domain.AreaConfig{
		AreaID: 1, MaxCapacity: intPtr(5), AutomaticBookingEnabled: true, RequestApprovalAtCapacity: true,
	}, nil)
	f.rules.On("GetCurrentByAreaID", ctx, int64(1)).Return(hourlyRule(), nil)
	f.bookings.On("CountActive", ctx, int64(1), req.StartAt, req.EndAt, (*int64)(nil)).Return(4, nil)
	f.bookings.On("Create", ctx, mock.Anything).Return(&domain.Booking{ID: 2, Status: domain.StatusPending}, nil)

	resp, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, admission.DecisionPending, resp.Decision)
}

func TestExecute_CapacityRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := request(2, 2)

	f.areas.On("GetAreaConfig", ctx, int64(1)).Return(&domain.AreaConfig{
		AreaID: 1, MaxCapacity: intPtr(5), AutomaticBookingEnabled: true,
	}, nil)
	f.rules.On("GetCurrentByAreaID", ctx, int64(1)).Return(hourlyRule(), nil)
	f.bookings.On("CountActive", ctx, int64(1), req.StartAt, req.EndAt, (*int64)(nil)).Return(4, nil)

	_, err := f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrCapacityRejected)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Equal(t, []string{"reject_full"}, f.metrics.decisions)
}

func TestExecute_GuestCountNotMultipliedTwice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := request(2, 4)

	rule := &domain.PricingRule{
		ID:     5,
		Active: true,
		Definition: domain.RuleDefinition{
			Name:      "per guest",
			Variables: []domain.Variable{{Key: pricing.GuestCountVariable, Type: domain.TypeNumber}},
			Formula:   "guest_count * 25",
		},
	}

	f.areas.On("GetAreaConfig", ctx, int64(1)).Return(&domain.AreaConfig{AreaID: 1, AutomaticBookingEnabled: true}, nil)
	f.rules.On("GetCurrentByAreaID", ctx, int64(1)).Return(rule, nil)
	f.bookings.On("CountActive", ctx, int64(1), req.StartAt, req.EndAt, (*int64)(nil)).Return(0, nil)
	f.bookings.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.TotalPrice.String() == "100" && b.UnitPrice.String() == "100"
	})).Return(&domain.Booking{ID: 3}, nil)

	resp, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, pricing.BranchUnconditional, resp.Branch)
	assert.Equal(t, []string{pricing.GuestCountVariable}, resp.UsedVariables)
}

// rateRule booking_hours * rate, ставку задает хост; desks может указать клиент
func rateRule() *domain.PricingRule {
	return &domain.PricingRule{
		ID:     8,
		AreaID: 1,
		Active: true,
		Definition: domain.RuleDefinition{
			Name: "desk rate",
			Variables: []domain.Variable{
				{Key: "rate", Type: domain.TypeNumber, InitialValue: strPtr("100")},
				{Key: "desks", Type: domain.TypeNumber, InitialValue: strPtr("1"), ClientEditable: true},
			},
			Formula: "booking_hours * rate * desks",
		},
	}
}

func TestExecute_HostVariablesIgnoreClientValues(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := request(2, 1)
	req.VariableOverrides = map[string]string{"rate": "-100", "desks": "2"}

	f.areas.On("GetAreaConfig", ctx, int64(1)).Return(&domain.AreaConfig{AreaID: 1, AutomaticBookingEnabled: true}, nil)
	f.rules.On("GetCurrentByAreaID", ctx, int64(1)).Return(rateRule(), nil)
	f.bookings.On("CountActive", ctx, int64(1), req.StartAt, req.EndAt, (*int64)(nil)).Return(0, nil)
	f.bookings.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.UnitPrice.String() == "400" && b.TotalPrice.String() == "400"
	})).Return(&domain.Booking{ID: 12, Status: domain.StatusConfirmed}, nil)

	resp, err := f.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "400.00", resp.TotalPrice.StringFixed(2))
	f.bookings.AssertExpectations(t)
}

func TestExecute_NegativePriceUnavailable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := request(2, 1)
	req.VariableOverrides = map[string]string{"desks": "-3"}

	f.areas.On("GetAreaConfig", ctx, int64(1)).Return(&domain.AreaConfig{AreaID: 1, AutomaticBookingEnabled: true}, nil)
	f.rules.On("GetCurrentByAreaID", ctx, int64(1)).Return(rateRule(), nil)

	resp, err := f.uc.Execute(ctx, req)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrPricingUnavailable)
	f.bookings.AssertNotCalled(t, "CountActive", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_Errors(t *testing.T) {
	ctx := context.Background()
	accepting := &domain.AreaConfig{AreaID: 1, MaxCapacity: intPtr(4), AutomaticBookingEnabled: true}

	tests := []struct {
		name    string
		req     *Request
		setup   func(f *fixture)
		wantErr error
	}{
		{
			name:    "invalid user",
			req:     &Request{AreaID: 1, StartAt: testStart, EndAt: testStart.Add(time.Hour), GuestCount: 1},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "end before start",
			req:     &Request{UserID: 1, AreaID: 1, StartAt: testStart, EndAt: testStart, GuestCount: 1},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "no guests",
			req:     request(1, 0),
			wantErr: ErrInvalidInput,
		},
		{
			name: "start in past",
			req: &Request{
				UserID: 1, AreaID: 1, GuestCount: 1,
				StartAt: testNow.Add(-time.Hour), EndAt: testNow.Add(time.Hour),
			},
			wantErr: ErrStartInPast,
		},
		{
			name: "area not found",
			req:  request(1, 1),
			setup: func(f *fixture) {
				f.areas.On("GetAreaConfig", ctx, int64(1)).Return(nil, spaceClient.ErrAreaNotFound)
			},
			wantErr: ErrAreaNotFound,
		},
		{
			name: "space service down",
			req:  request(1, 1),
			setup: func(f *fixture) {
				f.areas.On("GetAreaConfig", ctx, int64(1)).Return(nil, spaceClient.ErrServiceUnavailable)
			},
			wantErr: ErrInternal,
		},
		{
			name: "guests over capacity",
			req:  request(1, 5),
			setup: func(f *fixture) {
				f.areas.On("GetAreaConfig", ctx, int64(1)).Return(accepting, nil)
			},
			wantErr: ErrGuestCountExceedsCapacity,
		},
		{
			name: "lead time not met",
			req:  request(1, 1),
			setup: func(f *fixture) {
				f.areas.On("GetAreaConfig", ctx, int64(1)).Return(&domain.AreaConfig{
					AreaID: 1, AutomaticBookingEnabled: true,
					LeadTime: &domain.LeadTime{Amount: 1, Unit: domain.LeadTimeWeeks},
				}, nil)
			},
			wantErr: ErrLeadTimeNotMet,
		},
		{
			name: "rule not found",
			req:  request(1, 1),
			setup: func(f *fixture) {
				f.areas.On("GetAreaConfig", ctx, int64(1)).Return(accepting, nil)
				f.rules.On("GetCurrentByAreaID", ctx, int64(1)).Return(nil, ruleRepo.ErrRuleNotFound)
			},
			wantErr: ErrPricingRuleNotFound,
		},
		{
			name: "rule inactive",
			req:  request(1, 1),
			setup: func(f *fixture) {
				rule := hourlyRule()
				rule.Active = false
				f.areas.On("GetAreaConfig", ctx, int64(1)).Return(accepting, nil)
				f.rules.On("GetCurrentByAreaID", ctx, int64(1)).Return(rule, nil)
			},
			wantErr: ErrPricingRuleInactive,
		},
		{
			name: "price unavailable",
			req:  request(1, 1),
			setup: func(f *fixture) {
				rule := hourlyRule()
				rule.Definition.Formula = "booking_hours / 0"
				rule.Definition.Conditions = nil
				f.areas.On("GetAreaConfig", ctx, int64(1)).Return(accepting, nil)
				f.rules.On("GetCurrentByAreaID", ctx, int64(1)).Return(rule, nil)
			},
			wantErr: ErrPricingUnavailable,
		},
		{
			name: "count fails",
			req:  request(1, 1),
			setup: func(f *fixture) {
				f.areas.On("GetAreaConfig", ctx, int64(1)).Return(accepting, nil)
				f.rules.On("GetCurrentByAreaID", ctx, int64(1)).Return(hourlyRule(), nil)
				f.bookings.On("CountActive", ctx, int64(1), mock.Anything, mock.Anything, (*int64)(nil)).
					Return(0, errors.New("connection reset"))
			},
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.setup != nil {
				tt.setup(f)
			}

			resp, err := f.uc.Execute(ctx, tt.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}
