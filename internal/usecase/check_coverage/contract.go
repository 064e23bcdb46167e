package check_coverage

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// CoverageSource источник вердикта о покрытии
type CoverageSource interface {
	EvaluateCoverage(ctx context.Context, location domain.Location) (domain.CoverageVerdict, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
