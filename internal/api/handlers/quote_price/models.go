package quote_price

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CoworkingService/internal/api/handlers"
	quotePrice "github.com/m04kA/SMC-CoworkingService/internal/usecase/quote_price"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	StartAt    string            `json:"startAt"`
	EndAt      string            `json:"endAt"`
	GuestCount int               `json:"guestCount"`
	Variables  map[string]string `json:"variables,omitempty"` // только переменные clientEditable
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	AreaID        int64           `json:"areaId"`
	RuleID        int64           `json:"ruleId"`
	RuleVersion   int             `json:"ruleVersion"`
	BookingHours  int             `json:"bookingHours"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	Branch        string          `json:"branch"`
	UsedVariables []string        `json:"usedVariables"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteRequest) ToUseCaseRequest(areaID int64) (*quotePrice.Request, error) {
	startAt, err := handlers.ParseDateTime(r.StartAt)
	if err != nil {
		return nil, err
	}

	endAt, err := handlers.ParseDateTime(r.EndAt)
	if err != nil {
		return nil, err
	}

	return &quotePrice.Request{
		AreaID:            areaID,
		StartAt:           startAt,
		EndAt:             endAt,
		GuestCount:        r.GuestCount,
		VariableOverrides: r.Variables,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quotePrice.Response) *QuoteResponse {
	return &QuoteResponse{
		AreaID:        resp.AreaID,
		RuleID:        resp.RuleID,
		RuleVersion:   resp.RuleVersion,
		BookingHours:  resp.BookingHours,
		UnitPrice:     resp.UnitPrice,
		TotalPrice:    resp.TotalPrice,
		Branch:        string(resp.Branch),
		UsedVariables: resp.UsedVariables,
	}
}
