package get_salon_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/katiabooking/KB-BookingService/internal/api/handlers"
	"github.com/katiabooking/KB-BookingService/internal/api/middleware"
	"github.com/katiabooking/KB-BookingService/internal/domain"
	reservationsService "github.com/katiabooking/KB-BookingService/internal/service/reservations"
	"github.com/katiabooking/KB-BookingService/internal/service/reservations/models"
)

const (
	msgUnauthorized     = "требуется аутентификация"
	msgInvalidSalonID   = "некорректный ID салона"
	msgInvalidMasterID  = "некорректный ID мастера"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSalonNotFound    = "салон не найден"
	msgAccessDenied     = "доступно только сотрудникам салона"
	msgInvalidFilter    = "некорректные параметры фильтрации"
)

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/reservations
// Query params: masterId, startDate, endDate, status, includeInactive (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	salonID, err := strconv.ParseInt(mux.Vars(r)["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/reservations - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	req := &models.GetSalonReservationsRequest{
		UserID:  userID,
		SalonID: salonID,
	}

	query := r.URL.Query()

	if masterIDStr := query.Get("masterId"); masterIDStr != "" {
		masterID, err := strconv.ParseInt(masterIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/reservations - Invalid master ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMasterID)
			return
		}
		req.MasterID = &masterID
	}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/reservations - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/reservations - Invalid end date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetSalonReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/reservations - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, reservationsService.ErrAccessDenied):
			h.logger.Warn("GET /salons/{id}/reservations - Access denied: salon_id=%d, user_id=%d", salonID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reservationsService.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/reservations - Invalid filter: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /salons/{id}/reservations - Failed to get reservations: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/reservations - Retrieved %d reservations: salon_id=%d", len(result.Reservations), salonID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
