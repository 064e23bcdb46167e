package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ScheduleProvider внешнее хранилище бронирований.
// Возвращает занятые интервалы в точке обслуживания за один день.
type ScheduleProvider interface {
	GetDaySchedule(ctx context.Context, location domain.Location, date time.Time) (*domain.DaySchedule, error)
}

// TeamRoster список выездных команд с зонами обслуживания
type TeamRoster interface {
	GetOperationalTeams(ctx context.Context) ([]domain.TeamCoverage, error)
}

// CoverageSource источник вердикта о покрытии: локальный расчёт по списку команд
// или готовая сводка от внешнего сервиса
type CoverageSource interface {
	EvaluateCoverage(ctx context.Context, location domain.Location) (domain.CoverageVerdict, error)
}
