package create_checkout

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CoworkingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoworkingService/internal/api/middleware"
	createCheckout "github.com/m04kA/SMC-CoworkingService/internal/usecase/create_checkout"
)

const (
	msgInvalidAreaID      = "некорректный ID зоны"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат времени, ожидается RFC 3339 (2026-03-14T18:30:00Z)"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные параметры бронирования"
	msgStartInPast        = "время начала бронирования уже прошло"
	msgAreaNotFound       = "зона не найдена"
	msgGuestsOverCapacity = "число гостей превышает вместимость зоны"
	msgLeadTimeNotMet     = "бронирование нужно оформить заранее"
	msgRuleNotFound       = "для зоны не задано правило ценообразования"
	msgRuleInactive       = "правило ценообразования зоны отключено"
	msgPricingUnavailable = "не удалось рассчитать цену для выбранного времени"
	msgCapacityRejected   = "на выбранное время свободных мест нет"
)

type Handler struct {
	useCase CreateCheckoutUseCase
	logger  Logger
}

func NewHandler(useCase CreateCheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/areas/{areaId}/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	areaID, err := handlers.PathInt64(r, "areaId")
	if err != nil {
		h.logger.Warn("POST /areas/{id}/checkout - Invalid area ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAreaID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /areas/{id}/checkout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, areaID)
	if err != nil {
		h.logger.Warn("POST /areas/{id}/checkout - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createCheckout.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createCheckout.ErrStartInPast):
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createCheckout.ErrGuestCountExceedsCapacity):
			handlers.RespondBadRequest(w, msgGuestsOverCapacity)

		case errors.Is(err, createCheckout.ErrLeadTimeNotMet):
			handlers.RespondBadRequest(w, msgLeadTimeNotMet)

		case errors.Is(err, createCheckout.ErrAreaNotFound):
			handlers.RespondNotFound(w, msgAreaNotFound)

		case errors.Is(err, createCheckout.ErrPricingRuleNotFound):
			handlers.RespondNotFound(w, msgRuleNotFound)

		case errors.Is(err, createCheckout.ErrPricingRuleInactive):
			handlers.RespondUnprocessable(w, msgRuleInactive)

		case errors.Is(err, createCheckout.ErrPricingUnavailable):
			handlers.RespondUnprocessable(w, msgPricingUnavailable)

		case errors.Is(err, createCheckout.ErrCapacityRejected):
			h.logger.Warn("POST /areas/{id}/checkout - Area is full: area_id=%d, user_id=%d", areaID, userID)
			handlers.RespondConflict(w, msgCapacityRejected)

		default:
			h.logger.Error("POST /areas/{id}/checkout - Failed to checkout: area_id=%d, user_id=%d, error=%v",
				areaID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /areas/{id}/checkout - Booking created: booking_id=%d, decision=%s",
		result.Booking.ID, result.Decision)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
