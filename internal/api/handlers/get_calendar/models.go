package get_calendar

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	OpenTime                string         `json:"openTime"`
	CloseTime               string         `json:"closeTime"`
	SalonGranularityMinutes int            `json:"salonGranularityMinutes"`
	HorizonDays             int            `json:"horizonDays"`
	AdvanceBookingDays      int            `json:"advanceBookingDays"` // 0 = без ограничений
	SearchDays              int            `json:"searchDays"`         // сколько дней просматривает поиск ближайшего слота
	Timezone                string         `json:"timezone"`
	Categories              []CategoryGrid `json:"categories"`
}

// CategoryGrid сетка слотов категории без учёта бронирований
type CategoryGrid struct {
	Category        string   `json:"category"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"` // только для выездных категорий
	Slots           []string `json:"slots"`
}

// FromCalendar формирует ответ из рабочего календаря
func FromCalendar(calendar domain.WorkingCalendar) *CalendarResponse {
	resp := &CalendarResponse{
		OpenTime:                calendar.OpenTime.String(),
		CloseTime:               calendar.CloseTime.String(),
		SalonGranularityMinutes: calendar.SalonGranularityMinutes,
		HorizonDays:             calendar.HorizonDays,
		AdvanceBookingDays:      calendar.AdvanceBookingDays,
		SearchDays:              calendar.SearchDays(),
		Timezone:                calendar.Location.String(),
		Categories:              make([]CategoryGrid, 0, len(domain.AllCategories)),
	}

	for _, category := range domain.AllCategories {
		candidates := availability.GenerateSlots(category, calendar)
		slots := make([]string, len(candidates))
		for i, slot := range candidates {
			slots[i] = slot.String()
		}

		grid := CategoryGrid{
			Category: category.String(),
			Slots:    slots,
		}
		if category.IsVehicle() {
			duration := domain.VehicleServiceDurationMinutes
			grid.DurationMinutes = &duration
		}
		resp.Categories = append(resp.Categories, grid)
	}

	return resp
}
