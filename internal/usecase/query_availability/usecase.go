package query_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const (
	outcomeOK             = "ok"
	outcomeInvalid        = "invalid"
	outcomeNotServiceable = "not_serviceable"
	outcomeNoCoverage     = "coverage_unavailable"
	outcomeFetchFailed    = "fetch_failed"
	outcomeInvalidData    = "invalid_schedule"

	searchFound    = "found"
	searchNotFound = "not_found"
	searchFailed   = "failed"
)

// UseCase use case запроса доступных слотов.
// Не хранит состояния между запросами: смена категории - это новый запрос.
type UseCase struct {
	coverage     CoverageSource
	schedule     ScheduleProvider
	searcher     NearestSlotFinder
	calendar     domain.WorkingCalendar
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	coverage CoverageSource,
	schedule ScheduleProvider,
	searcher NearestSlotFinder,
	calendar domain.WorkingCalendar,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &UseCase{
		coverage:     coverage,
		schedule:     schedule,
		searcher:     searcher,
		calendar:     calendar,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет запрос доступности.
// С датой - слоты на этот день, без даты - ближайший свободный слот начиная с завтрашнего дня.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	mode := ModeNearest
	if req != nil && req.Date != nil {
		mode = ModeDay
	}

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QueryAvailability: validation failed: %v", err)
		uc.metrics.ObserveAvailabilityQuery(string(mode), outcomeInvalid)
		return nil, err
	}

	uc.logger.Info("QueryAvailability: mode=%s, category=%s, lat=%.6f, lng=%.6f",
		mode, req.Category, req.Location.Latitude, req.Location.Longitude)

	// 2. Текущая дата в часовом поясе календаря
	today := uc.calendar.Today(uc.timeProvider.Now())

	// 3. Валидация даты до обращения к внешним источникам
	var date time.Time
	if req.Date != nil {
		date = uc.calendar.CalendarDate(*req.Date)
		if err := validateDate(date, today, uc.calendar); err != nil {
			uc.logger.Warn("QueryAvailability: date validation failed: %v", err)
			uc.metrics.ObserveAvailabilityQuery(string(mode), outcomeInvalid)
			return nil, err
		}
	}

	// 4. Проверяем покрытие (в обоих режимах)
	verdict, err := uc.checkCoverage(ctx, req.Location)
	if err != nil {
		uc.metrics.ObserveAvailabilityQuery(string(mode), coverageOutcome(err))
		return nil, err
	}

	resp := &Response{
		Mode:     mode,
		Category: req.Category,
		Coverage: verdict,
	}

	// 5a. Слоты на конкретный день
	if mode == ModeDay {
		day, err := uc.dayAvailability(ctx, req, date)
		if err != nil {
			uc.metrics.ObserveAvailabilityQuery(string(mode), scheduleOutcome(err))
			return nil, err
		}
		resp.Day = day
		uc.metrics.ObserveAvailabilityQuery(string(mode), outcomeOK)
		uc.logger.Info("QueryAvailability: %d slots available on %s", len(day.AvailableSlots), date.Format(domain.DateFormat))
		return resp, nil
	}

	// 5b. Поиск ближайшего слота начиная с завтрашнего дня
	nearest, err := uc.searcher.FindNearest(ctx, req.Category, req.Location, today.AddDate(0, 0, 1))
	if err != nil {
		mapped := uc.mapSearchError(err)
		uc.metrics.ObserveSearch(searchFailed, nearest.DaysScanned)
		uc.metrics.ObserveAvailabilityQuery(string(mode), scheduleOutcome(mapped))
		return nil, mapped
	}

	resp.Nearest = &nearest
	if nearest.Found {
		uc.metrics.ObserveSearch(searchFound, nearest.DaysScanned)
		uc.logger.Info("QueryAvailability: nearest slot %s %s", nearest.Date.Format(domain.DateFormat), nearest.Time)
	} else {
		uc.metrics.ObserveSearch(searchNotFound, nearest.DaysScanned)
		uc.logger.Info("QueryAvailability: no free slots within %d days", nearest.DaysScanned)
	}
	uc.metrics.ObserveAvailabilityQuery(string(mode), outcomeOK)

	return resp, nil
}

func (uc *UseCase) checkCoverage(ctx context.Context, location domain.Location) (domain.CoverageVerdict, error) {
	verdict, err := uc.coverage.EvaluateCoverage(ctx, location)
	if err != nil {
		uc.logger.Error("QueryAvailability: failed to evaluate coverage: %v", err)
		return domain.CoverageVerdict{}, fmt.Errorf("%w: %v", ErrCoverageDataUnavailable, err)
	}

	if !verdict.HasCoverageData() {
		uc.logger.Warn("QueryAvailability: team roster is empty")
		return domain.CoverageVerdict{}, fmt.Errorf("%w: no operational teams", ErrCoverageDataUnavailable)
	}

	if !verdict.IsServiceable {
		uc.logger.Info("QueryAvailability: location is not serviceable, nearest team %.1f km", verdict.NearestDistanceKm)
		return domain.CoverageVerdict{}, &NotServiceableError{NearestDistanceKm: verdict.NearestDistanceKm}
	}

	return verdict, nil
}

func (uc *UseCase) dayAvailability(ctx context.Context, req *Request, date time.Time) (*domain.DayAvailability, error) {
	schedule, err := uc.schedule.GetDaySchedule(ctx, req.Location, date)
	if err != nil {
		uc.logger.Error("QueryAvailability: failed to get schedule for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrScheduleUnavailable, err)
	}
	if schedule == nil {
		schedule = &domain.DaySchedule{Date: date}
	}

	slots, err := availability.DayAvailableSlots(req.Category, uc.calendar, schedule)
	if err != nil {
		uc.logger.Error("QueryAvailability: invalid schedule for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidScheduleData, err)
	}

	return &domain.DayAvailability{
		Date:           date,
		AvailableSlots: slots,
	}, nil
}

func (uc *UseCase) mapSearchError(err error) error {
	if errors.Is(err, availability.ErrInvalidInterval) {
		uc.logger.Error("QueryAvailability: invalid schedule data: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidScheduleData, err)
	}
	uc.logger.Error("QueryAvailability: search failed: %v", err)
	return fmt.Errorf("%w: %v", ErrScheduleUnavailable, err)
}

// scheduleOutcome разделяет недоступность хранилища и некорректные данные в нём
func scheduleOutcome(err error) string {
	if errors.Is(err, ErrInvalidScheduleData) {
		return outcomeInvalidData
	}
	return outcomeFetchFailed
}

func coverageOutcome(err error) string {
	if errors.Is(err, ErrNotServiceable) {
		return outcomeNotServiceable
	}
	return outcomeNoCoverage
}
