package get_salon_policies

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
	msgUnauthorized   = "требуется аутентификация"
	msgInvalidSalonID = "некорректный ID салона"
	msgSalonNotFound  = "салон не найден"
	msgAccessDenied   = "доступно только сотрудникам салона"
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

// Handle GET /api/v1/salons/{salonId}/policies
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	salonID, err := strconv.ParseInt(mux.Vars(r)["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/policies - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	result, err := h.service.GetAllBySalon(r.Context(), salonID, userID)
	if err != nil {
		switch {
		case errors.Is(err, policyService.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/policies - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, policyService.ErrAccessDenied):
			h.logger.Warn("GET /salons/{id}/policies - Access denied: salon_id=%d, user_id=%d", salonID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /salons/{id}/policies - Failed to list policies: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
