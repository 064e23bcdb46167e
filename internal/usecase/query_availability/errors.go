package query_availability

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("query_availability: invalid input data")

	// ErrInvalidDate возвращается, когда дата раньше завтрашнего дня
	ErrInvalidDate = errors.New("query_availability: date must not be earlier than tomorrow")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("query_availability: date is too far in the future")

	// ErrNotServiceable возвращается, когда ни одна команда не может доехать до точки
	ErrNotServiceable = errors.New("query_availability: location is out of service range")

	// ErrCoverageDataUnavailable возвращается, когда нет данных о командах
	ErrCoverageDataUnavailable = errors.New("query_availability: coverage data unavailable")

	// ErrScheduleUnavailable возвращается, когда расписание не удалось получить (можно повторить)
	ErrScheduleUnavailable = errors.New("query_availability: schedule fetch failed")

	// ErrInvalidScheduleData возвращается, когда хранилище вернуло некорректный интервал
	ErrInvalidScheduleData = errors.New("query_availability: invalid schedule data")
)

// NotServiceableError точка вне зоны обслуживания, содержит расстояние до ближайшей команды
type NotServiceableError struct {
	NearestDistanceKm float64
}

func (e *NotServiceableError) Error() string {
	return fmt.Sprintf("%s: nearest team is %.1f km away", ErrNotServiceable, e.NearestDistanceKm)
}

func (e *NotServiceableError) Unwrap() error {
	return ErrNotServiceable
}
