package admission

import (
	"time"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// Overlaps проверяет пересечение бронирования с окном [windowStart, windowEnd)
// Объединение трех условий: начинается внутри окна, заканчивается внутри окна, покрывает окно целиком
func Overlaps(startAt, endAt, windowStart, windowEnd time.Time) bool {
	startsInside := !startAt.Before(windowStart) && startAt.Before(windowEnd)
	endsInside := endAt.After(windowStart) && !endAt.After(windowEnd)
	spans := !startAt.After(windowStart) && !endAt.Before(windowEnd)
	return startsInside || endsInside || spans
}

// CountOverlapping считает активные бронирования, пересекающиеся с окном
// excludeID исключает бронирование, которое проверяется повторно
func CountOverlapping(bookings []domain.Booking, windowStart, windowEnd time.Time, excludeID *int64) int {
	count := 0
	for i := range bookings {
		b := &bookings[i]
		if !b.IsActive() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if Overlaps(b.StartAt, b.EndAt, windowStart, windowEnd) {
			count++
		}
	}
	return count
}
