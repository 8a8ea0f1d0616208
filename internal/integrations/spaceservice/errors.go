package spaceservice

import "errors"

var (
	// ErrAreaNotFound возвращается, когда зона не найдена в SpaceService
	ErrAreaNotFound = errors.New("spaceservice client: area not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("spaceservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("spaceservice client: invalid response")

	// ErrServiceUnavailable возвращается, когда SpaceService недоступен
	ErrServiceUnavailable = errors.New("spaceservice client: service unavailable")
)
