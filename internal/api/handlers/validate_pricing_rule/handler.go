package validate_pricing_rule

import (
	"net/http"

	"github.com/m04kA/SMC-CoworkingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	service PricingRuleService
	logger  Logger
}

func NewHandler(service PricingRuleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/pricing-rules/validate
// Всегда отвечает 200: результат проверки в теле ответа
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var def domain.RuleDefinition
	if err := handlers.DecodeJSON(r, &def); err != nil {
		h.logger.Warn("POST /pricing-rules/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.service.Validate(def))
}
