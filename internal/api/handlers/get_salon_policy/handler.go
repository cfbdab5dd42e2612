package get_salon_policy

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/katiabooking/KB-BookingService/internal/api/handlers"
)

const (
	msgInvalidSalonID  = "некорректный ID салона"
	msgInvalidMasterID = "некорректный ID мастера"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/policy
// Query params: masterId (опционально - политика уровня мастера)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := strconv.ParseInt(mux.Vars(r)["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/policy - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var masterID *int64
	if masterIDStr := r.URL.Query().Get("masterId"); masterIDStr != "" {
		id, err := strconv.ParseInt(masterIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/policy - Invalid master ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMasterID)
			return
		}
		masterID = &id
	}

	result, err := h.service.GetEffective(r.Context(), salonID, masterID)
	if err != nil {
		h.logger.Error("GET /salons/{id}/policy - Failed to get policy: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
