package availability

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Searcher ищет ближайший свободный слот в ограниченном горизонте
type Searcher struct {
	provider         ScheduleProvider
	calendar         domain.WorkingCalendar
	fetchConcurrency int
}

// NewSearcher создает поиск ближайшего слота.
// fetchConcurrency - сколько дней запрашивать параллельно (<= 1 - последовательно).
func NewSearcher(provider ScheduleProvider, calendar domain.WorkingCalendar, fetchConcurrency int) *Searcher {
	if fetchConcurrency < 1 {
		fetchConcurrency = 1
	}
	return &Searcher{
		provider:         provider,
		calendar:         calendar,
		fetchConcurrency: fetchConcurrency,
	}
}

// FindNearest просматривает дни начиная с firstDay (обычно завтра) в пределах
// calendar.SearchDays() и возвращает самое раннее время в самый ранний день со свободными слотами.
//
// Дни запрашиваются окнами по fetchConcurrency, но разбираются строго по порядку дат:
// ошибка загрузки дня возвращается только если ни один более ранний день не дал слот.
// Результат совпадает с последовательным просмотром.
func (s *Searcher) FindNearest(ctx context.Context, category domain.ServiceCategory, location domain.Location, firstDay time.Time) (domain.NearestSlot, error) {
	start := domain.StartOfDay(firstDay)
	horizon := s.calendar.SearchDays()

	for offset := 0; offset < horizon; offset += s.fetchConcurrency {
		if err := ctx.Err(); err != nil {
			return domain.NearestSlot{}, fmt.Errorf("%w: %v", ErrScheduleFetchFailed, err)
		}

		size := s.fetchConcurrency
		if offset+size > horizon {
			size = horizon - offset
		}

		schedules, fetchErrs := s.fetchWindow(ctx, location, start, offset, size)

		for i := 0; i < size; i++ {
			date := start.AddDate(0, 0, offset+i)

			if fetchErrs[i] != nil {
				return domain.NearestSlot{}, fetchErrs[i]
			}

			available, err := DayAvailableSlots(category, s.calendar, schedules[i])
			if err != nil {
				return domain.NearestSlot{}, err
			}

			if len(available) > 0 {
				return domain.NearestSlot{
					Found:       true,
					Date:        date,
					Time:        available[0],
					DaysScanned: offset + i + 1,
				}, nil
			}
		}
	}

	return domain.NearestSlot{Found: false, DaysScanned: horizon}, nil
}

// fetchWindow загружает расписания дней [offset, offset+size) параллельно.
// Ошибки сохраняются по индексам, чтобы вызывающий разбирал их в порядке дат.
func (s *Searcher) fetchWindow(ctx context.Context, location domain.Location, start time.Time, offset, size int) ([]*domain.DaySchedule, []error) {
	schedules := make([]*domain.DaySchedule, size)
	errs := make([]error, size)

	if size == 1 {
		schedules[0], errs[0] = s.fetchDay(ctx, location, start.AddDate(0, 0, offset))
		return schedules, errs
	}

	var g errgroup.Group
	g.SetLimit(size)

	for i := 0; i < size; i++ {
		i := i
		date := start.AddDate(0, 0, offset+i)
		g.Go(func() error {
			schedules[i], errs[i] = s.fetchDay(ctx, location, date)
			return nil
		})
	}
	_ = g.Wait()

	return schedules, errs
}

func (s *Searcher) fetchDay(ctx context.Context, location domain.Location, date time.Time) (*domain.DaySchedule, error) {
	schedule, err := s.provider.GetDaySchedule(ctx, location, date)
	if err != nil {
		return nil, fmt.Errorf("%w: date=%s: %v", ErrScheduleFetchFailed, date.Format(domain.DateFormat), err)
	}
	return schedule, nil
}
