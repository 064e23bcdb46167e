package availability

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// BlockedSlots возвращает кандидатов, занятых хотя бы одним бронированием.
//
// Автомобили: слот занят, если его собственный блок [slot, slot+120) пересекается
// с любым занятым интервалом (slot < bookedEnd && slot+120 > bookedStart).
// Граничащие интервалы не пересекаются: бронирование 10:00-12:00 не блокирует слот 08:00.
//
// Салон: слот занят, если он попадает внутрь [bookedStart, bookedEnd).
//
// Интервалы должны быть проверены через ValidateDaySchedule заранее.
func BlockedSlots(category domain.ServiceCategory, candidates []types.TimeString, booked []domain.BookedInterval) map[types.TimeString]struct{} {
	blocked := make(map[types.TimeString]struct{})

	for _, slot := range candidates {
		for _, interval := range booked {
			if conflicts(category, slot, interval) {
				blocked[slot] = struct{}{}
				break
			}
		}
	}

	return blocked
}

// AvailableSlots кандидаты без занятых, порядок кандидатов сохраняется
func AvailableSlots(category domain.ServiceCategory, candidates []types.TimeString, booked []domain.BookedInterval) []types.TimeString {
	blocked := BlockedSlots(category, candidates, booked)

	available := make([]types.TimeString, 0, len(candidates))
	for _, slot := range candidates {
		if _, ok := blocked[slot]; !ok {
			available = append(available, slot)
		}
	}

	return available
}

// ValidateDaySchedule проверяет все интервалы дня. Один некорректный интервал
// делает некорректным весь день.
func ValidateDaySchedule(schedule *domain.DaySchedule) error {
	if schedule == nil {
		return nil
	}

	for i, interval := range schedule.BookedIntervals {
		if !interval.IsValid() {
			return fmt.Errorf("%w: interval #%d %s-%s on %s", ErrInvalidInterval,
				i, interval.StartTime, interval.EndTime, schedule.Date.Format(domain.DateFormat))
		}
	}

	return nil
}

// DayAvailableSlots проверяет расписание дня, генерирует кандидатов и вычитает занятые
func DayAvailableSlots(category domain.ServiceCategory, calendar domain.WorkingCalendar, schedule *domain.DaySchedule) ([]types.TimeString, error) {
	if err := ValidateDaySchedule(schedule); err != nil {
		return nil, err
	}

	var booked []domain.BookedInterval
	if schedule != nil {
		booked = schedule.BookedIntervals
	}

	return AvailableSlots(category, GenerateSlots(category, calendar), booked), nil
}

func conflicts(category domain.ServiceCategory, slot types.TimeString, interval domain.BookedInterval) bool {
	if category.IsVehicle() {
		slotStart := slot.Minutes()
		slotEnd := slotStart + domain.VehicleServiceDurationMinutes
		return slotStart < interval.EndTime.Minutes() && slotEnd > interval.StartTime.Minutes()
	}

	return !slot.IsBefore(interval.StartTime) && slot.IsBefore(interval.EndTime)
}
