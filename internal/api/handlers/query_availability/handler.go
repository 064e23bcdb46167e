package query_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	queryAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/query_availability"
)

const (
	msgMissingCoordinates = "координаты lat и lng обязательны"
	msgMissingCategory    = "категория услуги обязательна"
	msgInvalidParams      = "некорректные параметры запроса"
	msgInvalidDate        = "дата должна быть не раньше завтрашнего дня"
	msgDateTooFar         = "дата слишком далеко в будущем"
	msgNotServiceable     = "адрес вне зоны обслуживания"
	msgScheduleFailed     = "не удалось получить расписание, повторите запрос"
)

type Handler struct {
	useCase QueryAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase QueryAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: lat, lng, category (required), date (optional, YYYY-MM-DD)
// Без даты - ближайший свободный слот, с датой - все свободные слоты дня
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	latStr, lngStr := query.Get("lat"), query.Get("lng")
	if latStr == "" || lngStr == "" {
		h.logger.Warn("GET /availability - Missing coordinates")
		handlers.RespondBadRequest(w, msgMissingCoordinates)
		return
	}

	categoryStr := query.Get("category")
	if categoryStr == "" {
		h.logger.Warn("GET /availability - Missing category")
		handlers.RespondBadRequest(w, msgMissingCategory)
		return
	}

	// Формируем запрос к use case (с парсингом координат, категории и даты)
	useCaseReq, err := ToUseCaseRequest(latStr, lngStr, categoryStr, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var notServiceable *queryAvailability.NotServiceableError

		switch {
		case errors.Is(err, queryAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, queryAvailability.ErrInvalidDate):
			h.logger.Warn("GET /availability - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, queryAvailability.ErrDateTooFarInFuture):
			h.logger.Warn("GET /availability - Date too far: %v", err)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.As(err, &notServiceable):
			h.logger.Info("GET /availability - Not serviceable: nearest_km=%.1f", notServiceable.NearestDistanceKm)
			handlers.RespondUnprocessable(w, NotServiceableResponse{
				Code:              http.StatusUnprocessableEntity,
				Message:           msgNotServiceable,
				NearestDistanceKm: notServiceable.NearestDistanceKm,
			})

		case errors.Is(err, queryAvailability.ErrCoverageDataUnavailable):
			h.logger.Error("GET /availability - Coverage data unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		case errors.Is(err, queryAvailability.ErrScheduleUnavailable),
			errors.Is(err, queryAvailability.ErrInvalidScheduleData):
			h.logger.Error("GET /availability - Schedule failure: %v", err)
			handlers.RespondBadGateway(w, msgScheduleFailed)

		default:
			h.logger.Error("GET /availability - Failed to query availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability retrieved: mode=%s, category=%s", result.Mode, result.Category)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
