package cancel_reservation

import (
	"time"

	cancelBooking "github.com/katiabooking/KB-BookingService/internal/usecase/cancel_booking"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	Reason   string `json:"reason,omitempty"`
	IsNoShow bool   `json:"isNoShow,omitempty"`
	// IsStaff выставляется обработчиком по ростеру салона, не клиентом
	IsStaff bool `json:"-"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelReservationRequest) ToUseCaseRequest(reservationID string, clientID int64) cancelBooking.Request {
	return cancelBooking.Request{
		ReservationID: reservationID,
		ClientID:      clientID,
		IsStaff:       r.IsStaff,
		Reason:        r.Reason,
		IsNoShow:      r.IsNoShow,
	}
}

// CancelReservationResponse HTTP response model
type CancelReservationResponse struct {
	ID              string  `json:"id"`
	Status          string  `json:"status"`
	RefundAmount    int64   `json:"refundAmount"`
	RefundID        *string `json:"refundId,omitempty"`
	VacatedStart    string  `json:"vacatedStart"` // RFC 3339
	VacatedEnd      string  `json:"vacatedEnd"`   // RFC 3339
	DurationMinutes int     `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelReservationResponse {
	return &CancelReservationResponse{
		ID:              resp.Record.ID,
		Status:          string(resp.Record.Status),
		RefundAmount:    resp.RefundAmount,
		RefundID:        resp.RefundID,
		VacatedStart:    resp.Record.Interval.Start.Format(time.RFC3339),
		VacatedEnd:      resp.Record.Interval.End.Format(time.RFC3339),
		DurationMinutes: int(resp.Record.Interval.Duration() / time.Minute),
	}
}
