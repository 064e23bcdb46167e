package domain

import "github.com/m04kA/SMC-AvailabilityService/pkg/types"

// Default calendar values
const (
	DefaultOpenTime                = "08:00"
	DefaultCloseTime               = "18:00"
	DefaultSalonGranularityMinutes = 30
	DefaultHorizonDays             = 30
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
)

// VehicleServiceDurationMinutes каждая услуга для автомобиля занимает фиксированный блок
const VehicleServiceDurationMinutes = 120

// EarthRadiusKm радиус Земли для формулы гаверсинусов
const EarthRadiusKm = 6371.0

// VehicleAnchorTimes время начала услуг для автомобилей. Не зависит от часов работы.
var VehicleAnchorTimes = []types.TimeString{
	types.MustTimeString("08:00"),
	types.MustTimeString("11:00"),
	types.MustTimeString("14:00"),
}

// DateFormat формат даты в API и при обмене с хранилищами
const DateFormat = "2006-01-02" // YYYY-MM-DD
