package check_coverage

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	checkCoverage "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_coverage"
)

const msgInvalidCoordinates = "некорректные координаты"

type Handler struct {
	useCase CheckCoverageUseCase
	logger  Logger
}

func NewHandler(useCase CheckCoverageUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/coverage
// Query params: lat, lng (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query().Get("lat"), r.URL.Query().Get("lng"))
	if err != nil {
		h.logger.Warn("GET /coverage - Invalid coordinates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoordinates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkCoverage.ErrInvalidInput):
			h.logger.Warn("GET /coverage - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCoordinates)

		case errors.Is(err, checkCoverage.ErrCoverageDataUnavailable):
			h.logger.Error("GET /coverage - Coverage data unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /coverage - Failed to check coverage: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /coverage - Coverage checked: serviceable=%t", result.IsServiceable)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
