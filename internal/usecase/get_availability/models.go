package get_availability

import (
	"time"

	"github.com/m04kA/SMC-CoworkingService/internal/admission"
	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// Request модель запроса занятости зоны
type Request struct {
	AreaID     int64
	StartAt    time.Time
	EndAt      time.Time
	GuestCount int // 0 = без прогноза решения
}

// Response модель ответа с занятостью зоны
// Decision носит справочный характер: окончательное решение принимается при оформлении под блокировкой
type Response struct {
	Availability domain.Availability
	Decision     *admission.Decision
}
