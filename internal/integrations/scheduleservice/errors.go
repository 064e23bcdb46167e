package scheduleservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("scheduleservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("scheduleservice client: invalid response")

	// ErrUnavailable возвращается, когда сервис не ответил (timeout, 5xx)
	ErrUnavailable = errors.New("scheduleservice client: service unavailable")
)
