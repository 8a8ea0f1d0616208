package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountActive(ctx context.Context, areaID int64, start, end time.Time, excludeID *int64) (int, error)
}

// AreaConfigProvider источник конфигурации вместимости зоны
type AreaConfigProvider interface {
	GetAreaConfig(ctx context.Context, areaID int64) (*domain.AreaConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
