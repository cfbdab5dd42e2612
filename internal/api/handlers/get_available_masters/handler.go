package get_available_masters

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/katiabooking/KB-BookingService/internal/api/handlers"
	getAvailableMasters "github.com/katiabooking/KB-BookingService/internal/usecase/get_available_masters"
)

const (
	msgInvalidSalonID   = "некорректный ID салона"
	msgMissingStartTime = "время начала обязательно"
	msgInvalidStartTime = "некорректный формат времени начала, ожидается RFC 3339"
	msgInvalidDuration  = "некорректная длительность услуги"
	msgSalonNotFound    = "салон не найден"
	msgInvalidInput     = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableMastersUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableMastersUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/available-masters
// Query params: startTime (required, RFC 3339), durationMinutes (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-masters - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	startTimeStr := r.URL.Query().Get("startTime")
	if startTimeStr == "" {
		h.logger.Warn("GET /salons/{id}/available-masters - Missing start time")
		handlers.RespondBadRequest(w, msgMissingStartTime)
		return
	}

	durationMinutes, err := strconv.Atoi(r.URL.Query().Get("durationMinutes"))
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-masters - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	useCaseReq, err := ToUseCaseRequest(salonID, startTimeStr, durationMinutes)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/available-masters - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableMasters.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/available-masters - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, getAvailableMasters.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/available-masters - Invalid input: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /salons/{id}/available-masters - Failed to get masters: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/available-masters - Masters retrieved: salon_id=%d, masters_count=%d",
		salonID, len(result.Masters))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
