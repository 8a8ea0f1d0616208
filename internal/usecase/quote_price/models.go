package quote_price

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CoworkingService/internal/pricing"
)

// Request модель запроса предварительного расчета цены
type Request struct {
	AreaID            int64
	StartAt           time.Time
	EndAt             time.Time
	GuestCount        int
	VariableOverrides map[string]string
}

// Response модель ответа с расчетом цены
type Response struct {
	AreaID        int64
	RuleID        int64
	RuleVersion   int
	BookingHours  int
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal
	Branch        pricing.Branch
	UsedVariables []string
}
