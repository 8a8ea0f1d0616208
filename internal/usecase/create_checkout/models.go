package create_checkout

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CoworkingService/internal/admission"
	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	"github.com/m04kA/SMC-CoworkingService/internal/pricing"
)

// Request модель запроса на оформление бронирования
type Request struct {
	UserID            int64             // ID пользователя
	AreaID            int64             // ID зоны коворкинга
	StartAt           time.Time         // Начало бронирования
	EndAt             time.Time         // Окончание бронирования (не включительно)
	GuestCount        int               // Количество гостей
	VariableOverrides map[string]string // Значения переменных, заданные клиентом (учитываются только clientEditable)
	Notes             *string           // Дополнительные заметки (опционально)
}

// Response результат оформления бронирования
type Response struct {
	Booking          *domain.Booking
	UnitPrice        decimal.Decimal
	TotalPrice       decimal.Decimal
	Branch           pricing.Branch
	UsedVariables    []string
	Decision         admission.Decision
	RequiresApproval bool // true - бронирование ждет подтверждения хоста
}
