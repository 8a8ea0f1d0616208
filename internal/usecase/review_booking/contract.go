package review_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	CountActive(ctx context.Context, areaID int64, start, end time.Time, excludeID *int64) (int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// AreaConfigProvider источник конфигурации вместимости зоны
type AreaConfigProvider interface {
	GetAreaConfig(ctx context.Context, areaID int64) (*domain.AreaConfig, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
