package check_coverage

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// Request модель запроса проверки покрытия
type Request struct {
	Location domain.Location
}

// Response модель ответа.
// NearestDistanceKm заполняется только если точка вне зоны обслуживания.
type Response struct {
	IsServiceable     bool
	NearestDistanceKm *float64
	TeamCount         int
}
