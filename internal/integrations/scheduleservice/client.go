package scheduleservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент внешнего сервиса расписаний.
// Бронирования и сводка покрытия запрашиваются по координатам точки.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса расписаний
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// WithRateLimit ограничивает частоту исходящих запросов (rps <= 0 - без ограничения).
// Параллельный поиск ближайшего слота иначе может разом запросить много дней.
func (c *Client) WithRateLimit(rps float64, burst int) *Client {
	if rps <= 0 {
		c.limiter = nil
		return c
	}
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return c
}

// GetDaySchedule получает занятые интервалы в точке на указанную дату
func (c *Client) GetDaySchedule(ctx context.Context, location domain.Location, date time.Time) (*domain.DaySchedule, error) {
	query := locationQuery(location)
	query.Set("date", date.Format(domain.DateFormat))

	var resp DayScheduleResponse
	if err := c.get(ctx, "/internal/schedules", query, &resp); err != nil {
		return nil, err
	}

	intervals := make([]domain.BookedInterval, 0, len(resp.BookedIntervals))
	for i, item := range resp.BookedIntervals {
		start, err := types.NewTimeStringFromString(item.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: interval #%d start: %v", ErrInvalidResponse, i, err)
		}
		end, err := types.NewTimeStringFromString(item.End)
		if err != nil {
			return nil, fmt.Errorf("%w: interval #%d end: %v", ErrInvalidResponse, i, err)
		}
		intervals = append(intervals, domain.BookedInterval{StartTime: start, EndTime: end})
	}

	return &domain.DaySchedule{
		Date:            domain.StartOfDay(date),
		BookedIntervals: intervals,
	}, nil
}

// EvaluateCoverage возвращает сводку покрытия, посчитанную сервисом
func (c *Client) EvaluateCoverage(ctx context.Context, location domain.Location) (domain.CoverageVerdict, error) {
	var resp CoverageResponse
	if err := c.get(ctx, "/internal/coverage", locationQuery(location), &resp); err != nil {
		return domain.CoverageVerdict{}, err
	}

	if resp.TeamCount == 0 {
		return domain.NoCoverageData(), nil
	}

	verdict := domain.CoverageVerdict{
		IsServiceable:     resp.IsServiceable,
		NearestDistanceKm: math.Inf(1),
		TeamCount:         resp.TeamCount,
	}
	if resp.NearestDistanceKm != nil {
		verdict.NearestDistanceKm = *resp.NearestDistanceKm
	} else if !resp.IsServiceable {
		return domain.CoverageVerdict{}, fmt.Errorf("%w: nearest distance is missing for unserviceable location", ErrInvalidResponse)
	}

	c.log.Info("ScheduleService: coverage for lat=%f lng=%f: serviceable=%t teams=%d",
		location.Latitude, location.Longitude, verdict.IsServiceable, verdict.TeamCount)

	return verdict, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limiter: %v", ErrUnavailable, err)
		}
	}

	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("ScheduleService: request %s failed: %v", path, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, errorMessage(resp.Body))
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, errorMessage(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// errorMessage достает message из ErrorResponse, иначе возвращает тело как есть
func errorMessage(body io.Reader) string {
	raw, _ := io.ReadAll(body)

	var errResp ErrorResponse
	if err := json.Unmarshal(raw, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return string(raw)
}

func locationQuery(location domain.Location) url.Values {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(location.Latitude, 'f', -1, 64))
	query.Set("lng", strconv.FormatFloat(location.Longitude, 'f', -1, 64))
	return query
}
