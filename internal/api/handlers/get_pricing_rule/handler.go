package get_pricing_rule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CoworkingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoworkingService/internal/service/pricingrules"
)

const (
	msgInvalidAreaID = "некорректный ID зоны"
	msgNotFound      = "для зоны не задано правило ценообразования"
)

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

// Handle GET /api/v1/areas/{areaId}/pricing-rule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	areaID, err := handlers.PathInt64(r, "areaId")
	if err != nil {
		h.logger.Warn("GET /areas/{id}/pricing-rule - Invalid area ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAreaID)
		return
	}

	rule, err := h.service.GetActive(r.Context(), areaID)
	if err != nil {
		switch {
		case errors.Is(err, pricingrules.ErrRuleNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /areas/{id}/pricing-rule - Failed to get rule: area_id=%d, error=%v", areaID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rule)
}
