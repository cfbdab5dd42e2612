package models

import (
	"errors"
	"time"

	"github.com/katiabooking/KB-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// GetUserReservationsRequest запрос на историю записей клиента
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetSalonReservationsRequest запрос на записи салона с фильтрацией
type GetSalonReservationsRequest struct {
	UserID          int64      `json:"userId"`
	SalonID         int64      `json:"salonId"`
	MasterID        *int64     `json:"masterId,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetSalonReservationsRequest) ToDomainFilter() (domain.CalendarFilter, error) {
	filter := domain.CalendarFilter{
		SalonID:         r.SalonID,
		MasterID:        r.MasterID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными записи календаря
type ReservationResponse struct {
	ID              string `json:"id"`
	MasterID        int64  `json:"masterId"`
	SalonID         int64  `json:"salonId"`
	ClientID        int64  `json:"clientId"`
	BookingID       *int64 `json:"bookingId,omitempty"`
	StartTime       string `json:"startTime"` // ISO 8601
	EndTime         string `json:"endTime"`   // ISO 8601
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	ExpiresAt *string `json:"expiresAt,omitempty"`

	DepositAmount int64   `json:"depositAmount"`
	ChargeRef     *string `json:"chargeRef,omitempty"`

	ServiceName string  `json:"serviceName"`
	Notes       *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком записей
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainRecord конвертирует domain модель в DTO
func FromDomainRecord(rec *domain.ReservationRecord) *ReservationResponse {
	if rec == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 rec.ID,
		MasterID:           rec.MasterID,
		SalonID:            rec.SalonID,
		ClientID:           rec.ClientID,
		BookingID:          rec.BookingID,
		StartTime:          rec.Interval.Start.Format(time.RFC3339),
		EndTime:            rec.Interval.End.Format(time.RFC3339),
		DurationMinutes:    int(rec.Interval.Duration() / time.Minute),
		Status:             string(rec.Status),
		DepositAmount:      rec.DepositAmount,
		ChargeRef:          rec.ChargeRef,
		ServiceName:        rec.ServiceName,
		Notes:              rec.Notes,
		CancellationReason: rec.CancellationReason,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	}

	if rec.ExpiresAt != nil {
		expiresStr := rec.ExpiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &expiresStr
	}

	if rec.CancelledAt != nil {
		cancelledStr := rec.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainRecordList конвертирует список domain моделей в DTO
func FromDomainRecordList(recs []*domain.ReservationRecord) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(recs)),
	}

	for _, rec := range recs {
		resp.Reservations = append(resp.Reservations, *FromDomainRecord(rec))
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	validStatuses := []domain.ReservationStatus{
		domain.StatusTempHold,
		domain.StatusConfirmed,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
