package availability

import "errors"

var (
	// ErrInvalidInterval возвращается, когда в расписании дня есть интервал с start >= end.
	// Отклоняется весь день целиком.
	ErrInvalidInterval = errors.New("availability: invalid booked interval")

	// ErrScheduleFetchFailed возвращается, когда внешнее хранилище не смогло отдать расписание
	ErrScheduleFetchFailed = errors.New("availability: schedule fetch failed")

	// ErrCoverageDataUnavailable возвращается, когда список команд пуст или недоступен
	ErrCoverageDataUnavailable = errors.New("availability: coverage data unavailable")
)
