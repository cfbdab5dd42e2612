package delete_salon_policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/katiabooking/KB-BookingService/internal/api/handlers"
	"github.com/katiabooking/KB-BookingService/internal/api/middleware"
	policyService "github.com/katiabooking/KB-BookingService/internal/service/policy"
)

const (
	msgUnauthorized    = "требуется аутентификация"
	msgInvalidSalonID  = "некорректный ID салона"
	msgInvalidMasterID = "некорректный ID мастера"
	msgSalonNotFound   = "салон не найден"
	msgPolicyNotFound  = "политика не найдена"
	msgAccessDenied    = "доступно только сотрудникам салона"
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

// Handle DELETE /api/v1/salons/{salonId}/policy
// Необязательный query-параметр masterId удаляет политику конкретного мастера,
// без него удаляется политика уровня салона.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	salonID, err := strconv.ParseInt(mux.Vars(r)["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /salons/{id}/policy - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var masterID *int64
	if raw := r.URL.Query().Get("masterId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("DELETE /salons/{id}/policy - Invalid master ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMasterID)
			return
		}
		masterID = &id
	}

	if err := h.service.Delete(r.Context(), salonID, masterID, userID); err != nil {
		switch {
		case errors.Is(err, policyService.ErrSalonNotFound):
			h.logger.Warn("DELETE /salons/{id}/policy - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, policyService.ErrPolicyNotFound):
			h.logger.Warn("DELETE /salons/{id}/policy - Policy not found: salon_id=%d, master_id=%v", salonID, masterID)
			handlers.RespondNotFound(w, msgPolicyNotFound)

		case errors.Is(err, policyService.ErrAccessDenied):
			h.logger.Warn("DELETE /salons/{id}/policy - Access denied: salon_id=%d, user_id=%d", salonID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /salons/{id}/policy - Failed to delete policy: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /salons/{id}/policy - Policy deleted: salon_id=%d, master_id=%v", salonID, masterID)
	w.WriteHeader(http.StatusNoContent)
}
