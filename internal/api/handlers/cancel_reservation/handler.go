package cancel_reservation

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/katiabooking/KB-BookingService/internal/api/handlers"
	"github.com/katiabooking/KB-BookingService/internal/api/middleware"
	cancelBooking "github.com/katiabooking/KB-BookingService/internal/usecase/cancel_booking"
	"github.com/katiabooking/KB-BookingService/pkg/metrics"
)

const (
	msgUnauthorized        = "требуется аутентификация"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgReservationNotFound = "запись не найдена"
	msgAlreadyCancelled    = "запись уже отменена"
	msgCannotCancel        = "запись нельзя отменить"
	msgAccessDenied        = "нет доступа к этой записи"
	msgRefundFailed        = "не удалось выполнить возврат, отмена прервана"
	msgInvalidInput        = "некорректные параметры запроса"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
	metrics *metrics.Metrics
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// WithMetrics включает доменные метрики возвратов
func (h *Handler) WithMetrics(m *metrics.Metrics) *Handler {
	h.metrics = m
	return h
}

// Handle POST /api/v1/reservations/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	reservationID := mux.Vars(r)["id"]

	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /reservations/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(reservationID, clientID))
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrRecordNotFound):
			h.logger.Warn("POST /reservations/{id}/cancel - Not found: id=%s", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, cancelBooking.ErrAlreadyCancelled):
			h.logger.Warn("POST /reservations/{id}/cancel - Already cancelled: id=%s", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCancelled)

		case errors.Is(err, cancelBooking.ErrCannotCancel):
			h.logger.Warn("POST /reservations/{id}/cancel - Cannot cancel: id=%s", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		case errors.Is(err, cancelBooking.ErrAccessDenied):
			h.logger.Warn("POST /reservations/{id}/cancel - Access denied: id=%s, client_id=%d", reservationID, clientID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, cancelBooking.ErrRefundFailed):
			h.logger.Error("POST /reservations/{id}/cancel - Refund failed: id=%s, error=%v", reservationID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgRefundFailed)

		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/cancel - Invalid input: id=%s, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations/{id}/cancel - Failed to cancel: id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if h.metrics != nil && result.RefundAmount > 0 {
		h.metrics.RefundAmount.Observe(float64(result.RefundAmount))
	}

	h.logger.Info("POST /reservations/{id}/cancel - Cancelled: id=%s, client_id=%d, refund=%d",
		reservationID, clientID, result.RefundAmount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
