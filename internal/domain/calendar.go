package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// ErrInvalidCalendar возвращается при некорректной конфигурации рабочего календаря
var ErrInvalidCalendar = errors.New("domain: invalid working calendar")

// WorkingCalendar часы работы и горизонт поиска.
// Создаётся один раз при старте и не изменяется.
type WorkingCalendar struct {
	OpenTime                types.TimeString
	CloseTime               types.TimeString
	SalonGranularityMinutes int
	HorizonDays             int
	AdvanceBookingDays      int // 0 = unlimited
	Location                *time.Location
}

// DefaultWorkingCalendar календарь 08:00-18:00, шаг 30 минут, горизонт 30 дней, UTC
func DefaultWorkingCalendar() WorkingCalendar {
	return WorkingCalendar{
		OpenTime:                types.MustTimeString(DefaultOpenTime),
		CloseTime:               types.MustTimeString(DefaultCloseTime),
		SalonGranularityMinutes: DefaultSalonGranularityMinutes,
		HorizonDays:             DefaultHorizonDays,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		Location:                time.UTC,
	}
}

// Validate проверяет инварианты календаря
func (c WorkingCalendar) Validate() error {
	if !c.OpenTime.IsBefore(c.CloseTime) {
		return fmt.Errorf("%w: open time %s must be before close time %s", ErrInvalidCalendar, c.OpenTime, c.CloseTime)
	}
	if c.SalonGranularityMinutes <= 0 {
		return fmt.Errorf("%w: salon granularity must be positive", ErrInvalidCalendar)
	}
	if c.HorizonDays <= 0 {
		return fmt.Errorf("%w: horizon must be positive", ErrInvalidCalendar)
	}
	if c.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: advance booking days must not be negative", ErrInvalidCalendar)
	}
	return nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance a date can be requested
func (c WorkingCalendar) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// SearchDays число дней, которые просматривает поиск ближайшего слота начиная с завтра.
// Ограничение advanceBookingDays сужает горизонт, чтобы поиск не предлагал дату,
// которую запрос на конкретный день отклонит.
func (c WorkingCalendar) SearchDays() int {
	if c.HasAdvanceBookingLimit() && c.AdvanceBookingDays < c.HorizonDays {
		return c.AdvanceBookingDays
	}
	return c.HorizonDays
}

// Today возвращает начало текущих суток в часовом поясе календаря
func (c WorkingCalendar) Today(now time.Time) time.Time {
	return StartOfDay(now.In(c.location()))
}

// CalendarDate переносит календарную дату t (год, месяц, день) в часовой пояс календаря
func (c WorkingCalendar) CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.location())
}

func (c WorkingCalendar) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// StartOfDay отбрасывает время, сохраняя часовой пояс
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
