package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// BookedInterval занятый интервал [StartTime, EndTime) одного бронирования
type BookedInterval struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// IsValid returns true if the interval is non-empty and both ends lie in [00:00, 24:00)
func (i BookedInterval) IsValid() bool {
	return i.StartTime.IsBefore(i.EndTime) && i.EndTime.Minutes() < 24*60
}

// DaySchedule все бронирования в точке обслуживания за один день.
// Принадлежит внешнему хранилищу бронирований, движок только читает.
type DaySchedule struct {
	Date            time.Time
	BookedIntervals []BookedInterval
}

// Location координаты точки обслуживания
type Location struct {
	Latitude  float64
	Longitude float64
}

// IsValid returns true if coordinates are within WGS84 ranges
func (l Location) IsValid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 && l.Longitude >= -180 && l.Longitude <= 180
}
