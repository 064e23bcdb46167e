package query_availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Mode режим ответа
type Mode string

const (
	// ModeDay слоты на выбранную дату (редактирование бронирования)
	ModeDay Mode = "day"
	// ModeNearest ближайший свободный слот (новое бронирование)
	ModeNearest Mode = "nearest"
)

// Request модель запроса доступности.
// Date == nil - поиск ближайшего слота, иначе слоты на конкретный день.
type Request struct {
	Location domain.Location
	Category domain.ServiceCategory
	Date     *time.Time
}

// Response модель ответа.
// Для ModeDay заполнен Day, для ModeNearest - Nearest.
type Response struct {
	Mode     Mode
	Category domain.ServiceCategory
	Coverage domain.CoverageVerdict
	Day      *domain.DayAvailability
	Nearest  *domain.NearestSlot
}
