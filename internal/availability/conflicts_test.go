package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func interval(start, end string) domain.BookedInterval {
	return domain.BookedInterval{StartTime: types.MustTimeString(start), EndTime: types.MustTimeString(end)}
}

func TestBlockedSlots_VehicleSpanOverlap(t *testing.T) {
	candidates := GenerateSlots(domain.CategoryCompactVehicle, domain.DefaultWorkingCalendar())

	tests := []struct {
		name    string
		booked  []domain.BookedInterval
		blocked []string
	}{
		{
			name:    "09:00-10:30 blocks 08:00 only",
			booked:  []domain.BookedInterval{interval("09:00", "10:30")},
			blocked: []string{"08:00"},
		},
		{
			name:    "booking ending at 11:00 does not touch 11:00",
			booked:  []domain.BookedInterval{interval("09:00", "11:00")},
			blocked: []string{"08:00"},
		},
		{
			name:    "booking starting at slot end does not block",
			booked:  []domain.BookedInterval{interval("10:00", "10:30")},
			blocked: []string{},
		},
		{
			name:    "short offset booking bumps the slot",
			booked:  []domain.BookedInterval{interval("12:45", "13:15")},
			blocked: []string{"11:00"},
		},
		{
			name:    "long booking spans two anchors",
			booked:  []domain.BookedInterval{interval("09:30", "14:30")},
			blocked: []string{"08:00", "11:00", "14:00"},
		},
		{
			name:    "no bookings",
			booked:  nil,
			blocked: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocked := BlockedSlots(domain.CategoryCompactVehicle, candidates, tt.booked)

			got := make([]string, 0, len(blocked))
			for _, c := range candidates {
				if _, ok := blocked[c]; ok {
					got = append(got, c.String())
				}
			}
			assert.Equal(t, tt.blocked, got)
		})
	}
}

func TestBlockedSlots_SalonPointContainment(t *testing.T) {
	candidates := GenerateSlots(domain.CategorySalonVisit, domain.DefaultWorkingCalendar())
	blocked := BlockedSlots(domain.CategorySalonVisit, candidates, []domain.BookedInterval{interval("09:00", "10:00")})

	assert.Contains(t, blocked, types.MustTimeString("09:00"))
	assert.Contains(t, blocked, types.MustTimeString("09:30"))
	assert.NotContains(t, blocked, types.MustTimeString("10:00"))
	assert.NotContains(t, blocked, types.MustTimeString("08:30"))
	assert.Len(t, blocked, 2)
}

func TestBlockedSlots_SalonIgnoresVehicleSpan(t *testing.T) {
	// 08:00 + 120min would overlap 09:00-10:00, but salon slots only check containment
	candidates := []types.TimeString{types.MustTimeString("08:00")}
	blocked := BlockedSlots(domain.CategorySalonVisit, candidates, []domain.BookedInterval{interval("09:00", "10:00")})

	assert.Empty(t, blocked)
}

func TestBlockedSlots_Idempotent(t *testing.T) {
	candidates := GenerateSlots(domain.CategorySalonVisit, domain.DefaultWorkingCalendar())
	booked := []domain.BookedInterval{interval("08:00", "09:30"), interval("13:00", "14:00")}

	first := BlockedSlots(domain.CategorySalonVisit, candidates, booked)
	second := BlockedSlots(domain.CategorySalonVisit, candidates, booked)

	assert.Equal(t, first, second)
}

func TestAvailableSlots_CompactVehicleScenario(t *testing.T) {
	candidates := GenerateSlots(domain.CategoryCompactVehicle, domain.DefaultWorkingCalendar())
	available := AvailableSlots(domain.CategoryCompactVehicle, candidates, []domain.BookedInterval{interval("08:00", "10:00")})

	assert.Equal(t, []string{"11:00", "14:00"}, slotStrings(available))
}

func TestAvailableSlots_SalonScenario(t *testing.T) {
	candidates := GenerateSlots(domain.CategorySalonVisit, domain.DefaultWorkingCalendar())
	available := AvailableSlots(domain.CategorySalonVisit, candidates, []domain.BookedInterval{interval("08:00", "09:30")})

	require.Len(t, available, 17)
	assert.Equal(t, "09:30", available[0].String())
	assert.Equal(t, "17:30", available[len(available)-1].String())
}

func TestAvailableSlots_EmptyBookings(t *testing.T) {
	candidates := GenerateSlots(domain.CategoryLargeVehicle, domain.DefaultWorkingCalendar())
	assert.Equal(t, candidates, AvailableSlots(domain.CategoryLargeVehicle, candidates, nil))
}

func TestValidateDaySchedule(t *testing.T) {
	date := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	valid := &domain.DaySchedule{Date: date, BookedIntervals: []domain.BookedInterval{interval("08:00", "10:00")}}
	assert.NoError(t, ValidateDaySchedule(valid))
	assert.NoError(t, ValidateDaySchedule(nil))

	invalid := &domain.DaySchedule{Date: date, BookedIntervals: []domain.BookedInterval{
		interval("08:00", "10:00"),
		interval("12:00", "11:00"),
	}}
	err := ValidateDaySchedule(invalid)
	assert.ErrorIs(t, err, ErrInvalidInterval)
	assert.Contains(t, err.Error(), "2026-10-19")
}

func TestDayAvailableSlots_RejectsWholeDay(t *testing.T) {
	schedule := &domain.DaySchedule{BookedIntervals: []domain.BookedInterval{
		interval("08:00", "09:00"),
		interval("15:00", "15:00"),
	}}

	slots, err := DayAvailableSlots(domain.CategorySalonVisit, domain.DefaultWorkingCalendar(), schedule)
	assert.ErrorIs(t, err, ErrInvalidInterval)
	assert.Nil(t, slots)
}
