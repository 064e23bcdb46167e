package scheduleservice

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

var (
	location = domain.Location{Latitude: 55.7558, Longitude: 37.6173}
	date     = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, time.Second, logger.NewNop())
}

func TestClient_GetDaySchedule(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/schedules", r.URL.Path)
		assert.Equal(t, "55.7558", r.URL.Query().Get("lat"))
		assert.Equal(t, "37.6173", r.URL.Query().Get("lng"))
		assert.Equal(t, "2026-10-20", r.URL.Query().Get("date"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"date":"2026-10-20","booked_intervals":[{"start":"08:00","end":"10:00"},{"start":"14:30","end":"16:30"}]}`))
	})

	schedule, err := client.GetDaySchedule(context.Background(), location, date)
	require.NoError(t, err)

	require.Len(t, schedule.BookedIntervals, 2)
	assert.Equal(t, "14:30", schedule.BookedIntervals[1].StartTime.String())
	assert.Equal(t, "16:30", schedule.BookedIntervals[1].EndTime.String())
	assert.Equal(t, date, schedule.Date)
}

func TestClient_GetDaySchedule_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusBadGateway, body: "upstream", wantErr: ErrUnavailable},
		{name: "bad request", status: http.StatusBadRequest, body: `{"code":400}`, wantErr: ErrInvalidResponse},
		{name: "broken json", status: http.StatusOK, body: `{"booked_intervals":`, wantErr: ErrInvalidResponse},
		{name: "bad time", status: http.StatusOK, body: `{"booked_intervals":[{"start":"8am","end":"10:00"}]}`, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GetDaySchedule(context.Background(), location, date)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_ErrorMessage(t *testing.T) {
	t.Run("message from error body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":400,"message":"lat is out of range"}`))
		})

		_, err := client.GetDaySchedule(context.Background(), location, date)
		require.ErrorIs(t, err, ErrInvalidResponse)
		assert.Contains(t, err.Error(), "lat is out of range")
		assert.NotContains(t, err.Error(), `"code"`)
	})

	t.Run("plain text body kept as is", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("maintenance"))
		})

		_, err := client.GetDaySchedule(context.Background(), location, date)
		require.ErrorIs(t, err, ErrUnavailable)
		assert.Contains(t, err.Error(), "maintenance")
	})
}

func TestClient_GetDaySchedule_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(200 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, 20*time.Millisecond, logger.NewNop())
	_, err := client.GetDaySchedule(context.Background(), location, date)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_EvaluateCoverage(t *testing.T) {
	t.Run("out of range", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/internal/coverage", r.URL.Path)
			_, _ = w.Write([]byte(`{"team_count":3,"is_serviceable":false,"nearest_distance_km":42.5}`))
		})

		verdict, err := client.EvaluateCoverage(context.Background(), location)
		require.NoError(t, err)
		assert.False(t, verdict.IsServiceable)
		assert.Equal(t, 42.5, verdict.NearestDistanceKm)
		assert.Equal(t, 3, verdict.TeamCount)
	})

	t.Run("no teams", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"team_count":0,"is_serviceable":false}`))
		})

		verdict, err := client.EvaluateCoverage(context.Background(), location)
		require.NoError(t, err)
		assert.False(t, verdict.HasCoverageData())
		assert.True(t, math.IsInf(verdict.NearestDistanceKm, 1))
	})

	t.Run("missing distance", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"team_count":2,"is_serviceable":false}`))
		})

		_, err := client.EvaluateCoverage(context.Background(), location)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}

func TestClient_RateLimit(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"date":"2026-10-20","booked_intervals":[]}`))
	}).WithRateLimit(0.01, 1)

	_, err := client.GetDaySchedule(context.Background(), location, date)
	require.NoError(t, err)

	// Следующий токен появится через 100 секунд, дедлайн истечёт раньше
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.GetDaySchedule(ctx, location, date)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
