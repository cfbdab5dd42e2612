package update_salon_policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/katiabooking/KB-BookingService/internal/api/handlers"
	"github.com/katiabooking/KB-BookingService/internal/api/middleware"
	policyService "github.com/katiabooking/KB-BookingService/internal/service/policy"
	"github.com/katiabooking/KB-BookingService/internal/service/policy/models"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSalonNotFound      = "салон не найден"
	msgMasterNotFound     = "мастер не найден"
	msgAccessDenied       = "доступно только сотрудникам салона"
	msgInvalidPolicy      = "некорректные параметры политики"
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

// Handle PUT /api/v1/salons/{salonId}/policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	salonID, err := strconv.ParseInt(mux.Vars(r)["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /salons/{id}/policy - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req models.UpsertPolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/{id}/policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Идентификаторы из URL и контекста, не из тела
	req.SalonID = salonID
	req.UserID = userID

	result, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, policyService.ErrSalonNotFound):
			h.logger.Warn("PUT /salons/{id}/policy - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, policyService.ErrMasterNotFound):
			h.logger.Warn("PUT /salons/{id}/policy - Master not found: salon_id=%d, master_id=%v", salonID, req.MasterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, policyService.ErrAccessDenied):
			h.logger.Warn("PUT /salons/{id}/policy - Access denied: salon_id=%d, user_id=%d", salonID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, policyService.ErrInvalidInput):
			h.logger.Warn("PUT /salons/{id}/policy - Invalid policy: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidPolicy)

		default:
			h.logger.Error("PUT /salons/{id}/policy - Failed to upsert policy: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salons/{id}/policy - Policy saved: salon_id=%d, policy_id=%d", salonID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
