package review_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("review_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("review_booking: booking not found")

	// ErrAreaNotFound возвращается, когда зона бронирования не найдена
	ErrAreaNotFound = errors.New("review_booking: area not found")

	// ErrAccessDenied возвращается, когда пользователь не является хостом зоны
	ErrAccessDenied = errors.New("review_booking: access denied")

	// ErrNotPending возвращается, когда бронирование уже рассмотрено или отменено
	ErrNotPending = errors.New("review_booking: booking is not awaiting approval")

	// ErrCapacityRejected возвращается, когда одобрение превысило бы вместимость зоны
	ErrCapacityRejected = errors.New("review_booking: approving would exceed area capacity")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("review_booking: internal error")
)
