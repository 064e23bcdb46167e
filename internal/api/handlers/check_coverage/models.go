package check_coverage

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	checkCoverage "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_coverage"
)

// CoverageResponse HTTP response model
type CoverageResponse struct {
	IsServiceable     bool     `json:"isServiceable"`
	NearestDistanceKm *float64 `json:"nearestDistanceKm,omitempty"`
	TeamCount         int      `json:"teamCount"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkCoverage.Response) *CoverageResponse {
	return &CoverageResponse{
		IsServiceable:     resp.IsServiceable,
		NearestDistanceKm: resp.NearestDistanceKm,
		TeamCount:         resp.TeamCount,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(latStr, lngStr string) (*checkCoverage.Request, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lat: %w", err)
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid lng: %w", err)
	}

	return &checkCoverage.Request{
		Location: domain.Location{Latitude: lat, Longitude: lng},
	}, nil
}
