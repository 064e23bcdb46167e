package availability

import (
	"context"
	"fmt"
	"math"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// EvaluateCoverage проверяет, может ли хотя бы одна команда обслужить точку.
// Граница радиуса включается. Для пустого списка команд возвращает
// IsServiceable=false, NearestDistanceKm=+Inf, TeamCount=0.
func EvaluateCoverage(location domain.Location, teams []domain.TeamCoverage) domain.CoverageVerdict {
	if len(teams) == 0 {
		return domain.NoCoverageData()
	}

	verdict := domain.CoverageVerdict{NearestDistanceKm: math.Inf(1), TeamCount: len(teams)}
	for _, team := range teams {
		distance := HaversineKm(location, team.Coordinates)
		if distance <= team.RadiusKm {
			verdict.IsServiceable = true
		}
		if distance < verdict.NearestDistanceKm {
			verdict.NearestDistanceKm = distance
		}
	}

	return verdict
}

// HaversineKm расстояние по дуге большого круга в километрах
func HaversineKm(a, b domain.Location) float64 {
	toRad := math.Pi / 180

	dLat := (b.Latitude - a.Latitude) * toRad
	dLon := (b.Longitude - a.Longitude) * toRad
	lat1 := a.Latitude * toRad
	lat2 := b.Latitude * toRad

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * domain.EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// RosterCoverage считает покрытие локально по списку команд
type RosterCoverage struct {
	roster TeamRoster
}

// NewRosterCoverage создает источник покрытия поверх списка команд
func NewRosterCoverage(roster TeamRoster) *RosterCoverage {
	return &RosterCoverage{roster: roster}
}

// EvaluateCoverage загружает команды и считает вердикт
func (c *RosterCoverage) EvaluateCoverage(ctx context.Context, location domain.Location) (domain.CoverageVerdict, error) {
	teams, err := c.roster.GetOperationalTeams(ctx)
	if err != nil {
		return domain.CoverageVerdict{}, fmt.Errorf("%w: failed to load team roster: %v", ErrCoverageDataUnavailable, err)
	}

	return EvaluateCoverage(location, teams), nil
}
