package query_availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubRoster struct {
	teams []domain.TeamCoverage
	err   error
}

func (s stubRoster) GetOperationalTeams(context.Context) ([]domain.TeamCoverage, error) {
	return s.teams, s.err
}

type stubSchedule struct {
	mu       sync.Mutex
	byDate   map[string][]domain.BookedInterval
	errDate  string
	err      error
	requests []string
}

func (s *stubSchedule) GetDaySchedule(_ context.Context, _ domain.Location, date time.Time) (*domain.DaySchedule, error) {
	key := date.Format(domain.DateFormat)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, key)
	if s.err != nil && (s.errDate == "" || s.errDate == key) {
		return nil, s.err
	}
	return &domain.DaySchedule{Date: date, BookedIntervals: s.byDate[key]}, nil
}

type recordedMetrics struct {
	queries  []string
	searches []string
}

func (r *recordedMetrics) ObserveAvailabilityQuery(mode, outcome string) {
	r.queries = append(r.queries, mode+":"+outcome)
}

func (r *recordedMetrics) ObserveSearch(outcome string, _ int) {
	r.searches = append(r.searches, outcome)
}

var (
	// 2026-10-18 15:00 UTC: "сегодня" - 18 октября, завтра - 19 октября
	now        = time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)
	moscow     = domain.Location{Latitude: 55.7558, Longitude: 37.6173}
	moscowCrew = domain.TeamCoverage{TeamID: 1, Coordinates: moscow, RadiusKm: 30}
)

func interval(start, end string) domain.BookedInterval {
	return domain.BookedInterval{StartTime: types.MustTimeString(start), EndTime: types.MustTimeString(end)}
}

func slots(values ...string) []types.TimeString {
	out := make([]types.TimeString, 0, len(values))
	for _, v := range values {
		out = append(out, types.MustTimeString(v))
	}
	return out
}

func date(s string) *time.Time {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return &d
}

func newUseCase(roster stubRoster, schedule *stubSchedule, calendar domain.WorkingCalendar, metrics MetricsRecorder) *UseCase {
	searcher := availability.NewSearcher(schedule, calendar, 3)
	return NewUseCase(availability.NewRosterCoverage(roster), schedule, searcher, calendar, metrics, nopLogger{}).
		WithTimeProvider(fixedTime{now: now})
}

func TestUseCase_Execute_NearestSlot(t *testing.T) {
	t.Run("tomorrow partially booked returns first free anchor", func(t *testing.T) {
		schedule := &stubSchedule{byDate: map[string][]domain.BookedInterval{
			"2026-10-19": {interval("08:00", "10:00")},
		}}
		uc := newUseCase(stubRoster{teams: []domain.TeamCoverage{moscowCrew}}, schedule, domain.DefaultWorkingCalendar(), nil)

		resp, err := uc.Execute(context.Background(), &Request{Location: moscow, Category: domain.CategoryCompactVehicle})
		require.NoError(t, err)

		assert.Equal(t, ModeNearest, resp.Mode)
		require.NotNil(t, resp.Nearest)
		assert.True(t, resp.Nearest.Found)
		assert.Equal(t, "2026-10-19", resp.Nearest.Date.Format(domain.DateFormat))
		assert.Equal(t, "11:00", resp.Nearest.Time.String())
		assert.NotContains(t, schedule.requests, "2026-10-18", "search must never start today")
	})

	t.Run("fully booked tomorrow moves to the next day", func(t *testing.T) {
		schedule := &stubSchedule{byDate: map[string][]domain.BookedInterval{
			"2026-10-19": {interval("08:00", "18:00")},
		}}
		uc := newUseCase(stubRoster{teams: []domain.TeamCoverage{moscowCrew}}, schedule, domain.DefaultWorkingCalendar(), nil)

		resp, err := uc.Execute(context.Background(), &Request{Location: moscow, Category: domain.CategorySalonVisit})
		require.NoError(t, err)

		require.True(t, resp.Nearest.Found)
		assert.Equal(t, "2026-10-20", resp.Nearest.Date.Format(domain.DateFormat))
		assert.Equal(t, "08:00", resp.Nearest.Time.String())
	})

	t.Run("nothing free within the horizon is a result, not an error", func(t *testing.T) {
		schedule := &stubSchedule{byDate: map[string][]domain.BookedInterval{}}
		calendar := domain.DefaultWorkingCalendar()
		calendar.HorizonDays = 3
		for d := 19; d <= 21; d++ {
			schedule.byDate[time.Date(2026, 10, d, 0, 0, 0, 0, time.UTC).Format(domain.DateFormat)] =
				[]domain.BookedInterval{interval("08:00", "16:00")}
		}
		metrics := &recordedMetrics{}
		uc := newUseCase(stubRoster{teams: []domain.TeamCoverage{moscowCrew}}, schedule, calendar, metrics)

		resp, err := uc.Execute(context.Background(), &Request{Location: moscow, Category: domain.CategoryLargeVehicle})
		require.NoError(t, err)

		assert.False(t, resp.Nearest.Found)
		assert.Equal(t, []string{"not_found"}, metrics.searches)
		assert.Equal(t, []string{"nearest:ok"}, metrics.queries)
	})

	t.Run("advance booking limit bounds the search", func(t *testing.T) {
		schedule := &stubSchedule{byDate: map[string][]domain.BookedInterval{
			"2026-10-19": {interval("08:00", "16:00")},
			"2026-10-20": {interval("08:00", "16:00")},
			"2026-10-21": {interval("08:00", "16:00")},
		}}
		calendar := domain.DefaultWorkingCalendar()
		calendar.AdvanceBookingDays = 3
		uc := newUseCase(stubRoster{teams: []domain.TeamCoverage{moscowCrew}}, schedule, calendar, nil)

		resp, err := uc.Execute(context.Background(), &Request{Location: moscow, Category: domain.CategoryCompactVehicle})
		require.NoError(t, err)

		assert.False(t, resp.Nearest.Found)
		assert.NotContains(t, schedule.requests, "2026-10-22")

		// Первый свободный день за пределами лимита не предлагается, и запрос на него отклоняется
		_, err = uc.Execute(context.Background(), &Request{
			Location: moscow,
			Category: domain.CategoryCompactVehicle,
			Date:     date("2026-10-22"),
		})
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("fetch failure is surfaced as retryable error", func(t *testing.T) {
		schedule := &stubSchedule{err: errors.New("connection refused")}
		metrics := &recordedMetrics{}
		uc := newUseCase(stubRoster{teams: []domain.TeamCoverage{moscowCrew}}, schedule, domain.DefaultWorkingCalendar(), metrics)

		resp, err := uc.Execute(context.Background(), &Request{Location: moscow, Category: domain.CategorySalonVisit})
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrScheduleUnavailable)
		assert.Equal(t, []string{"nearest:fetch_failed"}, metrics.queries)
	})

	t.Run("invalid interval rejects the search", func(t *testing.T) {
		schedule := &stubSchedule{byDate: map[string][]domain.BookedInterval{
			"2026-10-19": {interval("12:00", "10:00")},
		}}
		metrics := &recordedMetrics{}
		uc := newUseCase(stubRoster{teams: []domain.TeamCoverage{moscowCrew}}, schedule, domain.DefaultWorkingCalendar(), metrics)

		_, err := uc.Execute(context.Background(), &Request{Location: moscow, Category: domain.CategorySalonVisit})
		assert.ErrorIs(t, err, ErrInvalidScheduleData)
		assert.Equal(t, []string{"nearest:invalid_schedule"}, metrics.queries)
		assert.Equal(t, []string{"failed"}, metrics.searches)
	})
}

func TestUseCase_Execute_Day(t *testing.T) {
	t.Run("salon slots on a given date", func(t *testing.T) {
		schedule := &stubSchedule{byDate: map[string][]domain.BookedInterval{
			"2026-10-25": {interval("09:00", "10:00"), interval("17:00", "18:00")},
		}}
		uc := newUseCase(stubRoster{teams: []domain.TeamCoverage{moscowCrew}}, schedule, domain.DefaultWorkingCalendar(), nil)

		resp, err := uc.Execute(context.Background(), &Request{
			Location: moscow,
			Category: domain.CategorySalonVisit,
			Date:     date("2026-10-25"),
		})
		require.NoError(t, err)

		assert.Equal(t, ModeDay, resp.Mode)
		require.NotNil(t, resp.Day)
		assert.Len(t, resp.Day.AvailableSlots, 16)
		assert.NotContains(t, resp.Day.AvailableSlots, types.MustTimeString("09:00"))
		assert.NotContains(t, resp.Day.AvailableSlots, types.MustTimeString("09:30"))
		assert.Contains(t, resp.Day.AvailableSlots, types.MustTimeString("10:00"))
		assert.Equal(t, []string{"2026-10-25"}, schedule.requests)
	})

	t.Run("fully booked day returns empty list", func(t *testing.T) {
		schedule := &stubSchedule{byDate: map[string][]domain.BookedInterval{
			"2026-10-25": {interval("07:00", "17:00")},
		}}
		uc := newUseCase(stubRoster{teams: []domain.TeamCoverage{moscowCrew}}, schedule, domain.DefaultWorkingCalendar(), nil)

		resp, err := uc.Execute(context.Background(), &Request{
			Location: moscow,
			Category: domain.CategoryPickupVehicle,
			Date:     date("2026-10-25"),
		})
		require.NoError(t, err)
		assert.True(t, resp.Day.IsEmpty())
	})

	t.Run("vehicle anchors with one overlap", func(t *testing.T) {
		schedule := &stubSchedule{byDate: map[string][]domain.BookedInterval{
			"2026-10-25": {interval("12:00", "13:00")},
		}}
		uc := newUseCase(stubRoster{teams: []domain.TeamCoverage{moscowCrew}}, schedule, domain.DefaultWorkingCalendar(), nil)

		resp, err := uc.Execute(context.Background(), &Request{
			Location: moscow,
			Category: domain.CategoryCompactVehicle,
			Date:     date("2026-10-25"),
		})
		require.NoError(t, err)
		assert.Equal(t, slots("08:00", "14:00"), resp.Day.AvailableSlots)
	})

	t.Run("today is rejected", func(t *testing.T) {
		schedule := &stubSchedule{}
		uc := newUseCase(stubRoster{teams: []domain.TeamCoverage{moscowCrew}}, schedule, domain.DefaultWorkingCalendar(), nil)

		_, err := uc.Execute(context.Background(), &Request{
			Location: moscow,
			Category: domain.CategorySalonVisit,
			Date:     date("2026-10-18"),
		})
		assert.ErrorIs(t, err, ErrInvalidDate)
		assert.Empty(t, schedule.requests)
	})

	t.Run("advance booking limit", func(t *testing.T) {
		calendar := domain.DefaultWorkingCalendar()
		calendar.AdvanceBookingDays = 7

		uc := newUseCase(stubRoster{teams: []domain.TeamCoverage{moscowCrew}}, &stubSchedule{}, calendar, nil)

		_, err := uc.Execute(context.Background(), &Request{
			Location: moscow,
			Category: domain.CategorySalonVisit,
			Date:     date("2026-10-25"),
		})
		assert.NoError(t, err)

		_, err = uc.Execute(context.Background(), &Request{
			Location: moscow,
			Category: domain.CategorySalonVisit,
			Date:     date("2026-10-26"),
		})
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("invalid interval on the requested day", func(t *testing.T) {
		schedule := &stubSchedule{byDate: map[string][]domain.BookedInterval{
			"2026-10-25": {interval("09:00", "10:00"), interval("15:00", "15:00")},
		}}
		metrics := &recordedMetrics{}
		uc := newUseCase(stubRoster{teams: []domain.TeamCoverage{moscowCrew}}, schedule, domain.DefaultWorkingCalendar(), metrics)

		_, err := uc.Execute(context.Background(), &Request{
			Location: moscow,
			Category: domain.CategorySalonVisit,
			Date:     date("2026-10-25"),
		})
		assert.ErrorIs(t, err, ErrInvalidScheduleData)
		assert.Equal(t, []string{"day:invalid_schedule"}, metrics.queries)
	})

	t.Run("schedule fetch error", func(t *testing.T) {
		schedule := &stubSchedule{err: errors.New("timeout")}
		uc := newUseCase(stubRoster{teams: []domain.TeamCoverage{moscowCrew}}, schedule, domain.DefaultWorkingCalendar(), nil)

		_, err := uc.Execute(context.Background(), &Request{
			Location: moscow,
			Category: domain.CategorySalonVisit,
			Date:     date("2026-10-25"),
		})
		assert.ErrorIs(t, err, ErrScheduleUnavailable)
	})
}

func TestUseCase_Execute_Coverage(t *testing.T) {
	// Санкт-Петербург примерно в 634 км от Москвы
	spb := domain.Location{Latitude: 59.9343, Longitude: 30.3351}

	t.Run("not serviceable in nearest mode", func(t *testing.T) {
		schedule := &stubSchedule{}
		metrics := &recordedMetrics{}
		uc := newUseCase(stubRoster{teams: []domain.TeamCoverage{moscowCrew}}, schedule, domain.DefaultWorkingCalendar(), metrics)

		_, err := uc.Execute(context.Background(), &Request{Location: spb, Category: domain.CategoryCompactVehicle})
		require.ErrorIs(t, err, ErrNotServiceable)

		var nsErr *NotServiceableError
		require.True(t, errors.As(err, &nsErr))
		assert.InDelta(t, 634, nsErr.NearestDistanceKm, 5)
		assert.Empty(t, schedule.requests, "search must not run for unreachable location")
		assert.Equal(t, []string{"nearest:not_serviceable"}, metrics.queries)
	})

	t.Run("not serviceable in day mode", func(t *testing.T) {
		schedule := &stubSchedule{}
		uc := newUseCase(stubRoster{teams: []domain.TeamCoverage{moscowCrew}}, schedule, domain.DefaultWorkingCalendar(), nil)

		_, err := uc.Execute(context.Background(), &Request{
			Location: spb,
			Category: domain.CategorySalonVisit,
			Date:     date("2026-10-25"),
		})
		assert.ErrorIs(t, err, ErrNotServiceable)
		assert.Empty(t, schedule.requests)
	})

	t.Run("empty roster", func(t *testing.T) {
		uc := newUseCase(stubRoster{}, &stubSchedule{}, domain.DefaultWorkingCalendar(), nil)

		_, err := uc.Execute(context.Background(), &Request{Location: moscow, Category: domain.CategorySalonVisit})
		assert.ErrorIs(t, err, ErrCoverageDataUnavailable)
	})

	t.Run("roster failure", func(t *testing.T) {
		uc := newUseCase(stubRoster{err: errors.New("db down")}, &stubSchedule{}, domain.DefaultWorkingCalendar(), nil)

		_, err := uc.Execute(context.Background(), &Request{Location: moscow, Category: domain.CategorySalonVisit})
		assert.ErrorIs(t, err, ErrCoverageDataUnavailable)
	})
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newUseCase(stubRoster{teams: []domain.TeamCoverage{moscowCrew}}, &stubSchedule{}, domain.DefaultWorkingCalendar(), nil)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "nil request", req: nil},
		{name: "latitude out of range", req: &Request{Location: domain.Location{Latitude: 91, Longitude: 0}, Category: domain.CategorySalonVisit}},
		{name: "unknown category", req: &Request{Location: moscow, Category: domain.ServiceCategory("boat")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_CalendarTimezone(t *testing.T) {
	calendar := domain.DefaultWorkingCalendar()
	calendar.Location = time.FixedZone("UTC+10", 10*60*60)

	// 18 октября 15:00 UTC = 19 октября 01:00 по UTC+10, завтра - 20 октября
	schedule := &stubSchedule{}
	uc := newUseCase(stubRoster{teams: []domain.TeamCoverage{moscowCrew}}, schedule, calendar, nil)

	resp, err := uc.Execute(context.Background(), &Request{Location: moscow, Category: domain.CategorySalonVisit})
	require.NoError(t, err)

	assert.Equal(t, "2026-10-20", resp.Nearest.Date.Format(domain.DateFormat))
	assert.Equal(t, "08:00", resp.Nearest.Time.String())
}
