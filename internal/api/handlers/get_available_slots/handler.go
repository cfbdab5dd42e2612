package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/katiabooking/KB-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/katiabooking/KB-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration = "некорректная длительность услуги"
	msgInvalidStep     = "некорректный шаг сетки слотов"
	msgMasterNotFound  = "мастер не найден"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/available-slots
// Query params: date (required, YYYY-MM-DD), durationMinutes (required),
// stepMinutes (optional, по умолчанию из политики салона)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/available-slots - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /masters/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	durationMinutes, err := strconv.Atoi(r.URL.Query().Get("durationMinutes"))
	if err != nil {
		h.logger.Warn("GET /masters/{id}/available-slots - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	stepMinutes := 0
	if stepStr := r.URL.Query().Get("stepMinutes"); stepStr != "" {
		stepMinutes, err = strconv.Atoi(stepStr)
		if err != nil {
			h.logger.Warn("GET /masters/{id}/available-slots - Invalid step: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStep)
			return
		}
	}

	useCaseReq, err := ToUseCaseRequest(masterID, dateStr, durationMinutes, stepMinutes)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrMasterNotFound):
			h.logger.Warn("GET /masters/{id}/available-slots - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput),
			errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /masters/{id}/available-slots - Invalid input: master_id=%d, error=%v", masterID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /masters/{id}/available-slots - Failed to get slots: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/{id}/available-slots - Slots retrieved: master_id=%d, date=%s, slots_count=%d",
		masterID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
