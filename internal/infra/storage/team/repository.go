package team

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository читает зоны обслуживания выездных команд
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория команд
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOperationalTeams возвращает работающие команды с положительным радиусом
func (r *Repository) GetOperationalTeams(ctx context.Context) ([]domain.TeamCoverage, error) {
	ctx = dbmetrics.WithOperation(ctx, "team.GetOperationalTeams")

	query, args, err := psqlbuilder.Select(
		"id",
		"latitude",
		"longitude",
		"radius_km",
	).
		From("teams").
		Where(squirrel.Eq{"is_operational": true}).
		Where(squirrel.Gt{"radius_km": 0}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOperationalTeams - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOperationalTeams - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	teams := make([]domain.TeamCoverage, 0)
	for rows.Next() {
		var t domain.TeamCoverage
		if err := rows.Scan(&t.TeamID, &t.Coordinates.Latitude, &t.Coordinates.Longitude, &t.RadiusKm); err != nil {
			return nil, fmt.Errorf("%w: GetOperationalTeams - scan row: %v", ErrScanRow, err)
		}
		teams = append(teams, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOperationalTeams - rows error: %v", ErrScanRow, err)
	}

	return teams, nil
}
