package create_checkout

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CoworkingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoworkingService/internal/service/bookings/models"
	createCheckout "github.com/m04kA/SMC-CoworkingService/internal/usecase/create_checkout"
)

// CheckoutRequest HTTP request model
type CheckoutRequest struct {
	StartAt    string            `json:"startAt"` // "2026-03-14T18:30:00Z"
	EndAt      string            `json:"endAt"`
	GuestCount int               `json:"guestCount"`
	Variables  map[string]string `json:"variables,omitempty"` // только переменные clientEditable
	Notes      *string           `json:"notes,omitempty"`
}

// CheckoutResponse HTTP response model
type CheckoutResponse struct {
	Booking          *models.BookingResponse `json:"booking"`
	UnitPrice        decimal.Decimal         `json:"unitPrice"`
	TotalPrice       decimal.Decimal         `json:"totalPrice"`
	Branch           string                  `json:"branch"`
	UsedVariables    []string                `json:"usedVariables"`
	Decision         string                  `json:"decision"`
	RequiresApproval bool                    `json:"requiresApproval"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckoutRequest) ToUseCaseRequest(userID, areaID int64) (*createCheckout.Request, error) {
	startAt, err := handlers.ParseDateTime(r.StartAt)
	if err != nil {
		return nil, err
	}

	endAt, err := handlers.ParseDateTime(r.EndAt)
	if err != nil {
		return nil, err
	}

	return &createCheckout.Request{
		UserID:            userID,
		AreaID:            areaID,
		StartAt:           startAt,
		EndAt:             endAt,
		GuestCount:        r.GuestCount,
		VariableOverrides: r.Variables,
		Notes:             r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createCheckout.Response) *CheckoutResponse {
	return &CheckoutResponse{
		Booking:          models.FromDomainBooking(resp.Booking),
		UnitPrice:        resp.UnitPrice,
		TotalPrice:       resp.TotalPrice,
		Branch:           string(resp.Branch),
		UsedVariables:    resp.UsedVariables,
		Decision:         string(resp.Decision),
		RequiresApproval: resp.RequiresApproval,
	}
}
