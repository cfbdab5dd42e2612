package confirm_hold

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/katiabooking/KB-BookingService/internal/api/handlers"
	"github.com/katiabooking/KB-BookingService/internal/api/middleware"
	confirmHold "github.com/katiabooking/KB-BookingService/internal/usecase/confirm_hold"
	"github.com/katiabooking/KB-BookingService/pkg/metrics"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgHoldNotFound       = "холд не найден"
	msgHoldExpired        = "срок действия холда истек, зарезервируйте слот заново"
	msgNotAHold           = "запись не является временным холдом"
	msgAccessDenied       = "нет доступа к этому холду"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase ConfirmHoldUseCase
	logger  Logger
	metrics *metrics.Metrics
}

func NewHandler(useCase ConfirmHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// WithMetrics включает доменные метрики холдов
func (h *Handler) WithMetrics(m *metrics.Metrics) *Handler {
	h.metrics = m
	return h
}

// Handle POST /api/v1/reservations/{holdId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	holdID := mux.Vars(r)["holdId"]

	var req ConfirmHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /reservations/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(holdID, clientID))
	if err != nil {
		switch {
		case errors.Is(err, confirmHold.ErrHoldNotFound):
			h.logger.Warn("POST /reservations/{id}/confirm - Hold not found: hold_id=%s", holdID)
			handlers.RespondNotFound(w, msgHoldNotFound)

		case errors.Is(err, confirmHold.ErrHoldExpired):
			h.logger.Warn("POST /reservations/{id}/confirm - Hold expired: hold_id=%s, client_id=%d", holdID, clientID)
			if h.metrics != nil {
				h.metrics.HoldsExpiredTotal.Inc()
			}
			handlers.RespondError(w, http.StatusGone, msgHoldExpired)

		case errors.Is(err, confirmHold.ErrNotAHold):
			h.logger.Warn("POST /reservations/{id}/confirm - Not a hold: hold_id=%s", holdID)
			handlers.RespondError(w, http.StatusConflict, msgNotAHold)

		case errors.Is(err, confirmHold.ErrAccessDenied):
			h.logger.Warn("POST /reservations/{id}/confirm - Access denied: hold_id=%s, client_id=%d", holdID, clientID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, confirmHold.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/confirm - Invalid input: hold_id=%s, error=%v", holdID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations/{id}/confirm - Failed to confirm: hold_id=%s, error=%v", holdID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/confirm - Confirmed: hold_id=%s, client_id=%d", holdID, clientID)
	handlers.RespondJSON(w, http.StatusOK, FromDomainRecord(result.Record))
}
