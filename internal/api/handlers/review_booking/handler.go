package review_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CoworkingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoworkingService/internal/api/middleware"
	reviewBooking "github.com/m04kA/SMC-CoworkingService/internal/usecase/review_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidAction      = "action должен быть approve или reject"
	msgNotFound           = "бронирование не найдено"
	msgAreaNotFound       = "зона не найдена"
	msgForbidden          = "рассматривать бронирования может только хост зоны"
	msgNotPending         = "бронирование не ожидает подтверждения"
	msgCapacityRejected   = "одобрение превысит вместимость зоны"
)

type Handler struct {
	useCase ReviewBookingUseCase
	logger  Logger
}

func NewHandler(useCase ReviewBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/review
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	hostID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/review - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, hostID))
	if err != nil {
		switch {
		case errors.Is(err, reviewBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidAction)

		case errors.Is(err, reviewBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reviewBooking.ErrAreaNotFound):
			handlers.RespondNotFound(w, msgAreaNotFound)

		case errors.Is(err, reviewBooking.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reviewBooking.ErrNotPending):
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, reviewBooking.ErrCapacityRejected):
			handlers.RespondConflict(w, msgCapacityRejected)

		default:
			h.logger.Error("PATCH /bookings/{id}/review - Failed to review booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/review - Booking reviewed: booking_id=%d, status=%s",
		bookingID, result.Booking.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
