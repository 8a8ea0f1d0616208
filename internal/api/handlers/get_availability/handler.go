package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CoworkingService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-CoworkingService/internal/usecase/get_availability"
)

const (
	msgInvalidAreaID   = "некорректный ID зоны"
	msgMissingWindow   = "параметры start и end обязательны"
	msgInvalidDateTime = "некорректный формат времени, ожидается RFC 3339 (2026-03-14T18:30:00Z)"
	msgInvalidGuests   = "некорректное число гостей"
	msgInvalidInput    = "некорректный интервал"
	msgAreaNotFound    = "зона не найдена"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/areas/{areaId}/availability
// Query params: start, end (required, RFC 3339), guests (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	areaID, err := handlers.PathInt64(r, "areaId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAreaID)
		return
	}

	query := r.URL.Query()
	if query.Get("start") == "" || query.Get("end") == "" {
		handlers.RespondBadRequest(w, msgMissingWindow)
		return
	}

	startAt, err := handlers.ParseDateTime(query.Get("start"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}
	endAt, err := handlers.ParseDateTime(query.Get("end"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	guests := 0
	if raw := query.Get("guests"); raw != "" {
		guests, err = strconv.Atoi(raw)
		if err != nil || guests < 0 {
			handlers.RespondBadRequest(w, msgInvalidGuests)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		AreaID:     areaID,
		StartAt:    startAt,
		EndAt:      endAt,
		GuestCount: guests,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailability.ErrAreaNotFound):
			handlers.RespondNotFound(w, msgAreaNotFound)

		default:
			h.logger.Error("GET /areas/{id}/availability - Failed to get availability: area_id=%d, error=%v", areaID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
