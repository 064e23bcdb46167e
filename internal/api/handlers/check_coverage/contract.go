package check_coverage

import (
	"context"

	checkCoverage "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_coverage"
)

type CheckCoverageUseCase interface {
	Execute(ctx context.Context, req *checkCoverage.Request) (*checkCoverage.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
