package query_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if !req.Location.IsValid() {
		return fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}

	if !req.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}

	if req.Date != nil && req.Date.IsZero() {
		return fmt.Errorf("%w: date is empty", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не раньше завтрашнего дня и укладывается в advanceBookingDays.
// Бронирования на текущий день не принимаются.
func validateDate(date, today time.Time, calendar domain.WorkingCalendar) error {
	tomorrow := today.AddDate(0, 0, 1)
	if date.Before(tomorrow) {
		return fmt.Errorf("%w: got %s, earliest is %s", ErrInvalidDate,
			date.Format(domain.DateFormat), tomorrow.Format(domain.DateFormat))
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if !calendar.HasAdvanceBookingLimit() {
		return nil
	}

	maxDate := today.AddDate(0, 0, calendar.AdvanceBookingDays)
	if date.After(maxDate) {
		return fmt.Errorf("%w: can only query %d days in advance", ErrDateTooFarInFuture, calendar.AdvanceBookingDays)
	}

	return nil
}
