package review_booking

import "github.com/m04kA/SMC-CoworkingService/internal/domain"

// Action решение хоста по бронированию
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Request модель запроса на рассмотрение бронирования
type Request struct {
	BookingID int64
	HostID    int64 // пользователь, принимающий решение
	Action    Action
}

// Response модель ответа после рассмотрения
type Response struct {
	Booking     *domain.Booking
	ActiveCount int // занятость без учета рассматриваемого бронирования
}
