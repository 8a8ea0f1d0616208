package review_booking

import (
	"github.com/m04kA/SMC-CoworkingService/internal/service/bookings/models"
	reviewBooking "github.com/m04kA/SMC-CoworkingService/internal/usecase/review_booking"
)

// ReviewRequest HTTP request model
type ReviewRequest struct {
	Action string `json:"action"` // "approve" | "reject"
}

// ReviewResponse HTTP response model
type ReviewResponse struct {
	Booking     *models.BookingResponse `json:"booking"`
	ActiveCount int                     `json:"activeCount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReviewRequest) ToUseCaseRequest(bookingID, hostID int64) *reviewBooking.Request {
	return &reviewBooking.Request{
		BookingID: bookingID,
		HostID:    hostID,
		Action:    reviewBooking.Action(r.Action),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reviewBooking.Response) *ReviewResponse {
	return &ReviewResponse{
		Booking:     models.FromDomainBooking(resp.Booking),
		ActiveCount: resp.ActiveCount,
	}
}
