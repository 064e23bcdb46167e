package query_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// CoverageSource источник вердикта о покрытии
type CoverageSource interface {
	EvaluateCoverage(ctx context.Context, location domain.Location) (domain.CoverageVerdict, error)
}

// ScheduleProvider внешнее хранилище бронирований
type ScheduleProvider interface {
	GetDaySchedule(ctx context.Context, location domain.Location, date time.Time) (*domain.DaySchedule, error)
}

// NearestSlotFinder поиск ближайшего свободного слота
type NearestSlotFinder interface {
	FindNearest(ctx context.Context, category domain.ServiceCategory, location domain.Location, firstDay time.Time) (domain.NearestSlot, error)
}

// MetricsRecorder интерфейс для метрик запросов доступности
type MetricsRecorder interface {
	ObserveAvailabilityQuery(mode, outcome string)
	ObserveSearch(outcome string, daysScanned int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type nopMetrics struct{}

func (nopMetrics) ObserveAvailabilityQuery(string, string) {}
func (nopMetrics) ObserveSearch(string, int)               {}
