package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// DayAvailability свободные слоты на выбранный день
type DayAvailability struct {
	Date           time.Time
	AvailableSlots []types.TimeString
}

// IsEmpty returns true when the day has no free slots
func (d DayAvailability) IsEmpty() bool {
	return len(d.AvailableSlots) == 0
}

// NearestSlot результат поиска ближайшего слота.
// Found == false означает, что в горизонте поиска свободных слотов нет.
type NearestSlot struct {
	Found       bool
	Date        time.Time
	Time        types.TimeString
	DaysScanned int
}

// StartsAt возвращает момент начала найденного слота
func (s NearestSlot) StartsAt() time.Time {
	return s.Time.OnDate(s.Date)
}
