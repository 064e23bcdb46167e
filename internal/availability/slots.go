package availability

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// GenerateSlots возвращает упорядоченный список возможных времён начала на один день.
//
// Автомобили: фиксированные 08:00, 11:00, 14:00 вне зависимости от часов работы.
// Салон: от открытия (включительно) до закрытия (не включительно) с шагом SalonGranularityMinutes.
func GenerateSlots(category domain.ServiceCategory, calendar domain.WorkingCalendar) []types.TimeString {
	switch {
	case category.IsVehicle():
		slots := make([]types.TimeString, len(domain.VehicleAnchorTimes))
		copy(slots, domain.VehicleAnchorTimes)
		return slots
	case category.IsSalon():
		return generateSalonSlots(calendar)
	default:
		return []types.TimeString{}
	}
}

func generateSalonSlots(calendar domain.WorkingCalendar) []types.TimeString {
	step := calendar.SalonGranularityMinutes
	if step <= 0 {
		return []types.TimeString{}
	}

	slots := make([]types.TimeString, 0, (calendar.CloseTime.Minutes()-calendar.OpenTime.Minutes())/step+1)
	current := calendar.OpenTime

	for current.IsBefore(calendar.CloseTime) {
		slots = append(slots, current)

		next, err := current.AddMinutes(step)
		if err != nil {
			break
		}
		current = next
	}

	return slots
}
