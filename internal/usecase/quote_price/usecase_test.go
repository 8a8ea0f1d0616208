package quote_price

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	ruleRepo "github.com/m04kA/SMC-CoworkingService/internal/infra/storage/pricingrule"
	"github.com/m04kA/SMC-CoworkingService/internal/pricing"
)

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

type nopMetrics struct{}

func (nopMetrics) RecordPricingEvaluation(string, bool) {}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var start = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC) // понедельник

func weekendRule() *domain.PricingRule {
	rate := "20"
	return &domain.PricingRule{
		ID:      3,
		AreaID:  1,
		Version: 2,
		Active:  true,
		Definition: domain.RuleDefinition{
			Name:      "weekend surcharge",
			Variables: []domain.Variable{{Key: "rate", Type: domain.TypeNumber, InitialValue: &rate}},
			Conditions: []domain.Condition{{
				ID:         "weekend",
				Comparator: domain.CmpGreaterOrEq,
				Type:       domain.TypeNumber,
				Left:       domain.VariableOperand(domain.VarDayOfWeek),
				Right:      domain.LiteralOperand("5", domain.TypeNumber),
			}},
			Formula: "booking_hours * rate * 1.5 ELSE booking_hours * rate",
		},
	}
}

func newUseCase(repo *mockRuleRepo) *UseCase {
	return NewUseCase(repo, pricing.NewEvaluator(pricing.DefaultLimits()), nopMetrics{}, nopLogger{})
}

func TestExecute_Weekday(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRuleRepo)
	repo.On("GetCurrentByAreaID", ctx, int64(1)).Return(weekendRule(), nil)

	resp, err := newUseCase(repo).Execute(ctx, &Request{
		AreaID:     1,
		StartAt:    start,
		EndAt:      start.Add(90 * time.Minute),
		GuestCount: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.BookingHours)
	assert.Equal(t, pricing.BranchElse, resp.Branch)
	assert.Equal(t, "40.00", resp.UnitPrice.StringFixed(2))
	assert.Equal(t, "80.00", resp.TotalPrice.StringFixed(2))
	assert.Equal(t, 2, resp.RuleVersion)
	assert.ElementsMatch(t, []string{"booking_hours", "rate"}, resp.UsedVariables)
}

func TestExecute_WeekendWithOverride(t *testing.T) {
	ctx := context.Background()
	rule := weekendRule()
	rule.Definition.Variables[0].ClientEditable = true

	repo := new(mockRuleRepo)
	repo.On("GetCurrentByAreaID", ctx, int64(1)).Return(rule, nil)

	saturday := start.AddDate(0, 0, 5)
	resp, err := newUseCase(repo).Execute(ctx, &Request{
		AreaID:            1,
		StartAt:           saturday,
		EndAt:             saturday.Add(2 * time.Hour),
		GuestCount:        1,
		VariableOverrides: map[string]string{"rate": "10"},
	})
	require.NoError(t, err)

	assert.Equal(t, pricing.BranchThen, resp.Branch)
	assert.Equal(t, "30.00", resp.TotalPrice.StringFixed(2))
}

func TestExecute_HostVariableNotOverridden(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRuleRepo)
	repo.On("GetCurrentByAreaID", ctx, int64(1)).Return(weekendRule(), nil)

	resp, err := newUseCase(repo).Execute(ctx, &Request{
		AreaID:            1,
		StartAt:           start,
		EndAt:             start.Add(2 * time.Hour),
		GuestCount:        1,
		VariableOverrides: map[string]string{"rate": "-20"},
	})
	require.NoError(t, err)

	assert.Equal(t, "40.00", resp.TotalPrice.StringFixed(2))
}

func TestExecute_Errors(t *testing.T) {
	ctx := context.Background()

	inactive := weekendRule()
	inactive.Active = false

	broken := weekendRule()
	broken.Definition.Variables = nil

	tests := []struct {
		name    string
		rule    *domain.PricingRule
		repoErr error
		req     *Request
		wantErr error
	}{
		{
			name:    "no guests",
			req:     &Request{AreaID: 1, StartAt: start, EndAt: start.Add(time.Hour)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty window",
			req:     &Request{AreaID: 1, StartAt: start, EndAt: start, GuestCount: 1},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "no rule",
			repoErr: ruleRepo.ErrRuleNotFound,
			wantErr: ErrPricingRuleNotFound,
		},
		{
			name:    "storage failure",
			repoErr: errors.New("db is down"),
			wantErr: ErrInternal,
		},
		{
			name:    "inactive rule",
			rule:    inactive,
			wantErr: ErrPricingRuleInactive,
		},
		{
			name:    "undeclared variable in formula",
			rule:    broken,
			wantErr: ErrPricingUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRuleRepo)
			if tt.rule != nil || tt.repoErr != nil {
				repo.On("GetCurrentByAreaID", ctx, int64(1)).Return(tt.rule, tt.repoErr)
			}

			req := tt.req
			if req == nil {
				req = &Request{AreaID: 1, StartAt: start, EndAt: start.Add(time.Hour), GuestCount: 1}
			}

			_, err := newUseCase(repo).Execute(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
