package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// DefaultLocationToleranceDeg допуск совпадения координат (~50 м по широте)
const DefaultLocationToleranceDeg = 0.0005

// inactiveStatuses бронирования в этих статусах не занимают время
var inactiveStatuses = []string{
	"cancelled_by_user",
	"cancelled_by_company",
	"no_show",
}

// Repository читает занятые интервалы из таблицы bookings.
// Бронирования создаются и изменяются другим сервисом, здесь только чтение.
type Repository struct {
	db           DBExecutor
	toleranceDeg float64
}

// NewRepository создает новый экземпляр репозитория бронирований.
// toleranceDeg <= 0 заменяется на DefaultLocationToleranceDeg.
func NewRepository(db DBExecutor, toleranceDeg float64) *Repository {
	if toleranceDeg <= 0 {
		toleranceDeg = DefaultLocationToleranceDeg
	}
	return &Repository{db: db, toleranceDeg: toleranceDeg}
}

// GetDaySchedule получает активные бронирования в точке на указанную дату,
// отсортированные по времени начала.
// Точка ищется по координатам с допуском toleranceDeg.
func (r *Repository) GetDaySchedule(ctx context.Context, location domain.Location, date time.Time) (*domain.DaySchedule, error) {
	ctx = dbmetrics.WithOperation(ctx, "booking.GetDaySchedule")

	query, args, err := psqlbuilder.Select(
		"start_time",
		"end_time",
	).
		From("bookings").
		Where(squirrel.Eq{"booking_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Expr("latitude BETWEEN ? AND ?", location.Latitude-r.toleranceDeg, location.Latitude+r.toleranceDeg)).
		Where(squirrel.Expr("longitude BETWEEN ? AND ?", location.Longitude-r.toleranceDeg, location.Longitude+r.toleranceDeg)).
		Where(squirrel.NotEq{"status": inactiveStatuses}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDaySchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDaySchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals, err := r.scanIntervals(rows)
	if err != nil {
		return nil, err
	}

	return &domain.DaySchedule{
		Date:            domain.StartOfDay(date),
		BookedIntervals: intervals,
	}, nil
}

// scanIntervals сканирует результаты запроса в слайс интервалов
func (r *Repository) scanIntervals(rows *sql.Rows) ([]domain.BookedInterval, error) {
	intervals := make([]domain.BookedInterval, 0)

	for rows.Next() {
		var interval domain.BookedInterval
		if err := rows.Scan(&interval.StartTime, &interval.EndTime); err != nil {
			return nil, fmt.Errorf("%w: scanIntervals - scan row: %v", ErrScanRow, err)
		}
		intervals = append(intervals, interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanIntervals - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}
