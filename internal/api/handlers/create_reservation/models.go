package create_reservation

import (
	"time"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	reserveSlot "github.com/katiabooking/KB-BookingService/internal/usecase/reserve_slot"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	MasterID        int64   `json:"masterId"`
	SalonID         int64   `json:"salonId"`
	StartTime       string  `json:"startTime"` // RFC 3339
	DurationMinutes int     `json:"durationMinutes"`
	Mode            string  `json:"mode"` // "hold" | "confirm"
	HoldTTLSeconds  *int    `json:"holdTtlSeconds,omitempty"`
	ServiceName     string  `json:"serviceName"`
	DepositAmount   int64   `json:"depositAmount"`
	ChargeRef       *string `json:"chargeRef,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(clientID int64) (reserveSlot.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return reserveSlot.Request{}, err
	}

	return reserveSlot.Request{
		MasterID:        r.MasterID,
		SalonID:         r.SalonID,
		ClientID:        clientID,
		Start:           start,
		DurationMinutes: r.DurationMinutes,
		Mode:            reserveSlot.Mode(r.Mode),
		HoldTTLSeconds:  r.HoldTTLSeconds,
		ServiceName:     r.ServiceName,
		DepositAmount:   r.DepositAmount,
		ChargeRef:       r.ChargeRef,
		Notes:           r.Notes,
	}, nil
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              string  `json:"id"`
	MasterID        int64   `json:"masterId"`
	SalonID         int64   `json:"salonId"`
	ClientID        int64   `json:"clientId"`
	StartTime       string  `json:"startTime"` // RFC 3339
	EndTime         string  `json:"endTime"`   // RFC 3339
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ExpiresAt       *string `json:"expiresAt,omitempty"`
	ServiceName     string  `json:"serviceName"`
	DepositAmount   int64   `json:"depositAmount"`
}

// ConflictResponse ответ 409 с деталями пересечения
type ConflictResponse struct {
	Message   string `json:"message"`
	StartTime string `json:"startTime"` // RFC 3339
	EndTime   string `json:"endTime"`   // RFC 3339
}

// FromDomainRecord конвертирует domain модель в HTTP response
func FromDomainRecord(rec *domain.ReservationRecord) *ReservationResponse {
	resp := &ReservationResponse{
		ID:              rec.ID,
		MasterID:        rec.MasterID,
		SalonID:         rec.SalonID,
		ClientID:        rec.ClientID,
		StartTime:       rec.Interval.Start.Format(time.RFC3339),
		EndTime:         rec.Interval.End.Format(time.RFC3339),
		DurationMinutes: int(rec.Interval.Duration() / time.Minute),
		Status:          string(rec.Status),
		ServiceName:     rec.ServiceName,
		DepositAmount:   rec.DepositAmount,
	}

	if rec.ExpiresAt != nil {
		expiresStr := rec.ExpiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &expiresStr
	}

	return resp
}
