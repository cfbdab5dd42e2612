package create_reservation

import (
	"errors"
	"net/http"
	"time"

	"github.com/katiabooking/KB-BookingService/internal/api/handlers"
	"github.com/katiabooking/KB-BookingService/internal/api/middleware"
	reserveSlot "github.com/katiabooking/KB-BookingService/internal/usecase/reserve_slot"
	"github.com/katiabooking/KB-BookingService/pkg/metrics"
)

const (
	msgUnauthorized        = "требуется аутентификация"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStartTime    = "некорректный формат времени начала, ожидается RFC 3339"
	msgSlotConflict        = "выбранный интервал пересекается с существующей записью"
	msgMasterNotFound      = "мастер не найден"
	msgMasterInactive      = "мастер временно не принимает записи"
	msgOutsideWorkingHours = "интервал вне рабочих часов мастера"
	msgInvalidInput        = "некорректные параметры запроса"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
	metrics *metrics.Metrics
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// WithMetrics включает доменные метрики резервирования
func (h *Handler) WithMetrics(m *metrics.Metrics) *Handler {
	h.metrics = m
	return h
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /reservations - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *reserveSlot.ConflictError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /reservations - Slot conflict: master_id=%d, client_id=%d", req.MasterID, clientID)
			if h.metrics != nil {
				h.metrics.ConflictsTotal.Inc()
			}
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Message:   msgSlotConflict,
				StartTime: conflictErr.Conflict.Interval.Start.Format(time.RFC3339),
				EndTime:   conflictErr.Conflict.Interval.End.Format(time.RFC3339),
			})

		case errors.Is(err, reserveSlot.ErrMasterNotFound):
			h.logger.Warn("POST /reservations - Master not found: master_id=%d", req.MasterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, reserveSlot.ErrMasterInactive):
			h.logger.Warn("POST /reservations - Master inactive: master_id=%d", req.MasterID)
			handlers.RespondError(w, http.StatusConflict, msgMasterInactive)

		case errors.Is(err, reserveSlot.ErrOutsideWorkingHours):
			h.logger.Warn("POST /reservations - Outside working hours: master_id=%d, start=%s", req.MasterID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to reserve: master_id=%d, client_id=%d, error=%v",
				req.MasterID, clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.ReservationsTotal.WithLabelValues(req.Mode).Inc()
	}

	h.logger.Info("POST /reservations - Created %s record %s: master_id=%d, client_id=%d",
		result.Record.Status, result.Record.ID, req.MasterID, clientID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainRecord(result.Record))
}
