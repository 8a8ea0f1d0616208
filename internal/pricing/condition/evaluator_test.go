package condition

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

func numberCond(key string, cmp domain.Comparator, value string) domain.Condition {
	return domain.Condition{
		Comparator: cmp,
		Type:       domain.TypeNumber,
		Left:       domain.VariableOperand(key),
		Right:      domain.LiteralOperand(value, domain.TypeNumber),
	}
}

func withConnector(c domain.Condition, connector domain.Connector) domain.Condition {
	c.Connector = connector
	return c
}

func testBindings() map[string]domain.Value {
	return map[string]domain.Value{
		domain.VarBookingHours: domain.NumberValue(6),
		domain.VarDayOfWeek:    domain.NumberValue(5),
		domain.VarTime:         {Type: domain.TypeTime, Text: "18:30:00"},
		domain.VarDate:         {Type: domain.TypeDate, Text: "2026-03-14"},
		domain.VarDateTime:     {Type: domain.TypeDateTime, Text: "2026-03-14T18:30:00Z"},
		"discount":             domain.NumberValue(0),
	}
}

func TestEvaluate_Empty(t *testing.T) {
	ok, err := Evaluate(nil, testBindings(), DefaultMaxConditions)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEvaluate_Comparators(t *testing.T) {
	tests := []struct {
		cmp  domain.Comparator
		rhs  string
		want bool
	}{
		{domain.CmpGreater, "5", true},
		{domain.CmpGreater, "6", false},
		{domain.CmpGreaterOrEq, "6", true},
		{domain.CmpLess, "6", false},
		{domain.CmpLessOrEq, "6", true},
		{domain.CmpEqual, "6.0", true},
		{domain.CmpNotEqual, "6", false},
		{domain.CmpNotEqual, "7", true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("hours %s %s", tt.cmp, tt.rhs), func(t *testing.T) {
			ok, err := Evaluate([]domain.Condition{numberCond(domain.VarBookingHours, tt.cmp, tt.rhs)}, testBindings(), DefaultMaxConditions)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestEvaluate_SequentialFold(t *testing.T) {
	truthy := numberCond(domain.VarBookingHours, domain.CmpGreater, "1")
	falsy := numberCond(domain.VarBookingHours, domain.CmpGreater, "100")

	tests := []struct {
		name       string
		conditions []domain.Condition
		want       bool
	}{
		{
			name:       "first connector ignored",
			conditions: []domain.Condition{withConnector(truthy, domain.ConnectorAnd)},
			want:       true,
		},
		{
			name:       "and",
			conditions: []domain.Condition{truthy, withConnector(falsy, domain.ConnectorAnd)},
			want:       false,
		},
		{
			name:       "or",
			conditions: []domain.Condition{falsy, withConnector(truthy, domain.ConnectorOr)},
			want:       true,
		},
		{
			// (true OR x) AND false = false; with precedence it would be true
			name: "no precedence grouping",
			conditions: []domain.Condition{
				truthy,
				withConnector(truthy, domain.ConnectorOr),
				withConnector(falsy, domain.ConnectorAnd),
			},
			want: false,
		},
		{
			// (false AND x) OR true = true
			name: "left associative",
			conditions: []domain.Condition{
				falsy,
				withConnector(truthy, domain.ConnectorAnd),
				withConnector(truthy, domain.ConnectorOr),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := Evaluate(tt.conditions, testBindings(), DefaultMaxConditions)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestEvaluate_Negated(t *testing.T) {
	c := numberCond(domain.VarBookingHours, domain.CmpGreater, "5")
	c.Negated = true

	ok, err := Evaluate([]domain.Condition{c}, testBindings(), DefaultMaxConditions)
	require.NoError(t, err)
	assert.False(t, ok)

	// negated применяется до объединения: false OR !(6 > 5) = false
	c.Connector = domain.ConnectorOr
	falsy := numberCond(domain.VarBookingHours, domain.CmpLess, "1")
	ok, err = Evaluate([]domain.Condition{falsy, c}, testBindings(), DefaultMaxConditions)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluate_TimeDateTypes(t *testing.T) {
	tests := []struct {
		name string
		cond domain.Condition
		want bool
	}{
		{
			name: "evening time",
			cond: domain.Condition{Comparator: domain.CmpGreaterOrEq, Type: domain.TypeTime,
				Left: domain.VariableOperand(domain.VarTime), Right: domain.LiteralOperand("18:00", domain.TypeTime)},
			want: true,
		},
		{
			name: "12-hour literal with meridiem",
			cond: domain.Condition{Comparator: domain.CmpLess, Type: domain.TypeTime,
				Left: domain.VariableOperand(domain.VarTime),
				Right: domain.Operand{Kind: domain.OperandLiteral, Value: "7:00", Type: domain.TypeTime, Meridiem: "PM"}},
			want: true,
		},
		{
			name: "single digit hour is zero padded",
			cond: domain.Condition{Comparator: domain.CmpGreater, Type: domain.TypeTime,
				Left: domain.VariableOperand(domain.VarTime), Right: domain.LiteralOperand("9:00", domain.TypeTime)},
			want: true,
		},
		{
			name: "date equality",
			cond: domain.Condition{Comparator: domain.CmpEqual, Type: domain.TypeDate,
				Left: domain.VariableOperand(domain.VarDate), Right: domain.LiteralOperand("2026-03-14", domain.TypeDate)},
			want: true,
		},
		{
			name: "datetime with offset normalized to utc",
			cond: domain.Condition{Comparator: domain.CmpEqual, Type: domain.TypeDateTime,
				Left: domain.VariableOperand(domain.VarDateTime), Right: domain.LiteralOperand("2026-03-14T21:30:00+03:00", domain.TypeDateTime)},
			want: true,
		},
		{
			name: "datetime narrowed to date",
			cond: domain.Condition{Comparator: domain.CmpEqual, Type: domain.TypeDate,
				Left: domain.VariableOperand(domain.VarDateTime), Right: domain.LiteralOperand("2026-03-14", domain.TypeDate)},
			want: true,
		},
		{
			name: "weekend",
			cond: numberCond(domain.VarDayOfWeek, domain.CmpGreaterOrEq, "5"),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := Evaluate([]domain.Condition{tt.cond}, testBindings(), DefaultMaxConditions)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cond    domain.Condition
		wantErr error
	}{
		{
			name:    "unknown variable",
			cond:    numberCond("missing", domain.CmpGreater, "1"),
			wantErr: ErrUnknownVariable,
		},
		{
			name: "number compared as time",
			cond: domain.Condition{Comparator: domain.CmpGreater, Type: domain.TypeTime,
				Left: domain.VariableOperand("discount"), Right: domain.LiteralOperand("10:00", domain.TypeTime)},
			wantErr: ErrTypeMismatch,
		},
		{
			name:    "invalid literal",
			cond:    numberCond(domain.VarBookingHours, domain.CmpGreater, "ten"),
			wantErr: ErrInvalidCondition,
		},
		{
			name:    "invalid comparator",
			cond:    numberCond(domain.VarBookingHours, "~", "1"),
			wantErr: ErrInvalidCondition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate([]domain.Condition{tt.cond}, testBindings(), DefaultMaxConditions)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEvaluate_InvalidConnector(t *testing.T) {
	c := numberCond(domain.VarBookingHours, domain.CmpGreater, "1")
	_, err := Evaluate([]domain.Condition{c, c}, testBindings(), DefaultMaxConditions)
	assert.ErrorIs(t, err, ErrInvalidCondition)
}

func TestEvaluate_LimitCheckedBeforeEvaluation(t *testing.T) {
	// второе условие с неизвестной переменной не должно вычисляться
	conditions := []domain.Condition{
		numberCond(domain.VarBookingHours, domain.CmpGreater, "1"),
		withConnector(numberCond("missing", domain.CmpGreater, "1"), domain.ConnectorAnd),
		withConnector(numberCond(domain.VarBookingHours, domain.CmpGreater, "1"), domain.ConnectorAnd),
	}

	_, err := Evaluate(conditions, testBindings(), 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLimitExceeded)
	assert.Contains(t, err.Error(), "exceeds maximum of 2 conditions")
}
