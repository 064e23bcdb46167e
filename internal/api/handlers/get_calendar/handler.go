package get_calendar

import (
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

type Handler struct {
	response *CalendarResponse
	logger   Logger
}

// NewHandler календарь неизменен после старта, поэтому ответ собирается один раз
func NewHandler(calendar domain.WorkingCalendar, logger Logger) *Handler {
	return &Handler{
		response: FromCalendar(calendar),
		logger:   logger,
	}
}

// Handle GET /api/v1/calendar
// Публичный endpoint: часы работы, горизонт и сетки слотов по категориям
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("GET /calendar - Calendar retrieved")
	handlers.RespondJSON(w, http.StatusOK, h.response)
}
