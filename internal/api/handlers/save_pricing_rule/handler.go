package save_pricing_rule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CoworkingService/internal/api/handlers"
	"github.com/m04kA/SMC-CoworkingService/internal/api/middleware"
	"github.com/m04kA/SMC-CoworkingService/internal/service/pricingrules"
	"github.com/m04kA/SMC-CoworkingService/internal/service/pricingrules/models"
)

const (
	msgInvalidAreaID      = "некорректный ID зоны"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные параметры запроса"
	msgAreaNotFound       = "зона не найдена"
	msgForbidden          = "изменять правило может только хост зоны"
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

// Handle PUT /api/v1/areas/{areaId}/pricing-rule
// Невалидное правило возвращается с кодом 422 и списком ошибок по полям
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	areaID, err := handlers.PathInt64(r, "areaId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAreaID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.SaveRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /areas/{id}/pricing-rule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.AreaID = areaID
	req.UserID = userID

	rule, err := h.service.Save(r.Context(), &req)
	if err != nil {
		var validationErr *pricingrules.ValidationFailedError
		switch {
		case errors.As(err, &validationErr):
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, models.FromValidationResult(validationErr.Result))

		case errors.Is(err, pricingrules.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, pricingrules.ErrAreaNotFound):
			handlers.RespondNotFound(w, msgAreaNotFound)

		case errors.Is(err, pricingrules.ErrAccessDenied):
			h.logger.Warn("PUT /areas/{id}/pricing-rule - Access denied: area_id=%d, user_id=%d", areaID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /areas/{id}/pricing-rule - Failed to save rule: area_id=%d, error=%v", areaID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /areas/{id}/pricing-rule - Rule saved: area_id=%d, rule_id=%d, version=%d",
		areaID, rule.ID, rule.Version)
	handlers.RespondJSON(w, http.StatusOK, rule)
}
