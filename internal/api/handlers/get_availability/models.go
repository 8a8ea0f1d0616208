package get_availability

import (
	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-CoworkingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	AreaID         int64   `json:"areaId"`
	StartAt        string  `json:"startAt"`
	EndAt          string  `json:"endAt"`
	ActiveCount    int     `json:"activeCount"`
	MaxCapacity    *int    `json:"maxCapacity"`    // null = без ограничений
	RemainingSpots *int    `json:"remainingSpots"` // null = без ограничений
	OccupancyRate  float64 `json:"occupancyRate"`
	Decision       *string `json:"decision,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	a := resp.Availability
	result := &AvailabilityResponse{
		AreaID:         a.AreaID,
		StartAt:        domain.FormatDateTime(a.StartAt),
		EndAt:          domain.FormatDateTime(a.EndAt),
		ActiveCount:    a.ActiveCount,
		MaxCapacity:    a.MaxCapacity,
		RemainingSpots: a.RemainingSpots(),
		OccupancyRate:  a.OccupancyRate(),
	}

	if resp.Decision != nil {
		decision := string(*resp.Decision)
		result.Decision = &decision
	}

	return result
}
