package quote_price

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CoworkingService/internal/api/handlers"
	quotePrice "github.com/m04kA/SMC-CoworkingService/internal/usecase/quote_price"
)

const (
	msgInvalidAreaID      = "некорректный ID зоны"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат времени, ожидается RFC 3339 (2026-03-14T18:30:00Z)"
	msgInvalidInput       = "некорректные параметры расчета"
	msgRuleNotFound       = "для зоны не задано правило ценообразования"
	msgRuleInactive       = "правило ценообразования зоны отключено"
	msgPricingUnavailable = "не удалось рассчитать цену для выбранного времени"
)

type Handler struct {
	useCase QuotePriceUseCase
	logger  Logger
}

func NewHandler(useCase QuotePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/areas/{areaId}/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	areaID, err := handlers.PathInt64(r, "areaId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAreaID)
		return
	}

	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /areas/{id}/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(areaID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, quotePrice.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, quotePrice.ErrPricingRuleNotFound):
			handlers.RespondNotFound(w, msgRuleNotFound)

		case errors.Is(err, quotePrice.ErrPricingRuleInactive):
			handlers.RespondUnprocessable(w, msgRuleInactive)

		case errors.Is(err, quotePrice.ErrPricingUnavailable):
			handlers.RespondUnprocessable(w, msgPricingUnavailable)

		default:
			h.logger.Error("POST /areas/{id}/quote - Failed to quote: area_id=%d, error=%v", areaID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
