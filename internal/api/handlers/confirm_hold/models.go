package confirm_hold

import (
	"time"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	confirmHold "github.com/katiabooking/KB-BookingService/internal/usecase/confirm_hold"
)

// ConfirmHoldRequest HTTP request model. Тело опционально
type ConfirmHoldRequest struct {
	BookingID *int64  `json:"bookingId,omitempty"`
	ChargeRef *string `json:"chargeRef,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmHoldRequest) ToUseCaseRequest(holdID string, clientID int64) confirmHold.Request {
	return confirmHold.Request{
		HoldID:    holdID,
		ClientID:  clientID,
		BookingID: r.BookingID,
		ChargeRef: r.ChargeRef,
	}
}

// ConfirmHoldResponse HTTP response model
type ConfirmHoldResponse struct {
	ID              string `json:"id"`
	MasterID        int64  `json:"masterId"`
	SalonID         int64  `json:"salonId"`
	ClientID        int64  `json:"clientId"`
	StartTime       string `json:"startTime"` // RFC 3339
	EndTime         string `json:"endTime"`   // RFC 3339
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	ServiceName     string `json:"serviceName"`
}

// FromDomainRecord конвертирует domain модель в HTTP response
func FromDomainRecord(rec *domain.ReservationRecord) *ConfirmHoldResponse {
	return &ConfirmHoldResponse{
		ID:              rec.ID,
		MasterID:        rec.MasterID,
		SalonID:         rec.SalonID,
		ClientID:        rec.ClientID,
		StartTime:       rec.Interval.Start.Format(time.RFC3339),
		EndTime:         rec.Interval.End.Format(time.RFC3339),
		DurationMinutes: int(rec.Interval.Duration() / time.Minute),
		Status:          string(rec.Status),
		ServiceName:     rec.ServiceName,
	}
}
