package domain

import "math"

// TeamCoverage зона обслуживания одной выездной команды
type TeamCoverage struct {
	TeamID      int64
	Coordinates Location
	RadiusKm    float64
}

// CoverageVerdict результат проверки покрытия.
// NearestDistanceKm имеет смысл только при IsServiceable == false.
type CoverageVerdict struct {
	IsServiceable     bool
	NearestDistanceKm float64
	TeamCount         int
}

// HasCoverageData returns false when there were no teams to evaluate against
func (v CoverageVerdict) HasCoverageData() bool {
	return v.TeamCount > 0
}

// NoCoverageData вердикт для пустого списка команд
func NoCoverageData() CoverageVerdict {
	return CoverageVerdict{IsServiceable: false, NearestDistanceKm: math.Inf(1), TeamCount: 0}
}
