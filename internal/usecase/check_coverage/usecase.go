package check_coverage

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

// UseCase проверка, доезжает ли хотя бы одна команда до точки.
// Используется до выбора категории, чтобы сразу показать "слишком далеко".
type UseCase struct {
	coverage CoverageSource
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(coverage CoverageSource, logger Logger) *UseCase {
	return &UseCase{
		coverage: coverage,
		logger:   logger,
	}
}

// Execute выполняет проверку покрытия
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || !req.Location.IsValid() {
		uc.logger.Warn("CheckCoverage: invalid coordinates")
		return nil, fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}

	verdict, err := uc.coverage.EvaluateCoverage(ctx, req.Location)
	if err != nil {
		uc.logger.Error("CheckCoverage: failed to evaluate coverage: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrCoverageDataUnavailable, err)
	}

	if !verdict.HasCoverageData() {
		uc.logger.Warn("CheckCoverage: team roster is empty")
		return nil, fmt.Errorf("%w: no operational teams", ErrCoverageDataUnavailable)
	}

	resp := &Response{
		IsServiceable: verdict.IsServiceable,
		TeamCount:     verdict.TeamCount,
	}
	if !verdict.IsServiceable {
		resp.NearestDistanceKm = ptr.Ptr(verdict.NearestDistanceKm)
	}

	uc.logger.Info("CheckCoverage: lat=%.6f, lng=%.6f, serviceable=%t, teams=%d",
		req.Location.Latitude, req.Location.Longitude, verdict.IsServiceable, verdict.TeamCount)

	return resp, nil
}
