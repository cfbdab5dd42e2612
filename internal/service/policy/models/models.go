package models

import (
	"time"

	"github.com/katiabooking/KB-BookingService/internal/domain"
)

// Request модели

// UpsertPolicyRequest запрос на создание или обновление политики
type UpsertPolicyRequest struct {
	UserID   int64  `json:"userId"`
	SalonID  int64  `json:"salonId"`
	MasterID *int64 `json:"masterId,omitempty"`

	SlotStepMinutes       int `json:"slotStepMinutes"`
	DefaultHoldTTLSeconds int `json:"defaultHoldTtlSeconds"`

	FullRefundHours      int  `json:"fullRefundHours"`
	PartialRefundHours   int  `json:"partialRefundHours"`
	PartialRefundPercent int  `json:"partialRefundPercent"`
	NoShowRefundAllowed  bool `json:"noShowRefundAllowed"`

	SuggestWindowMinutes int `json:"suggestWindowMinutes"`
	SuggestLimit         int `json:"suggestLimit"`
}

// ToDomainPolicy конвертирует request в domain модель
func (r *UpsertPolicyRequest) ToDomainPolicy() *domain.BookingPolicy {
	return &domain.BookingPolicy{
		SalonID:               r.SalonID,
		MasterID:              r.MasterID,
		SlotStepMinutes:       r.SlotStepMinutes,
		DefaultHoldTTLSeconds: r.DefaultHoldTTLSeconds,
		FullRefundHours:       r.FullRefundHours,
		PartialRefundHours:    r.PartialRefundHours,
		PartialRefundPercent:  r.PartialRefundPercent,
		NoShowRefundAllowed:   r.NoShowRefundAllowed,
		SuggestWindowMinutes:  r.SuggestWindowMinutes,
		SuggestLimit:          r.SuggestLimit,
	}
}

// Response модели

// PolicyResponse ответ с данными политики
type PolicyResponse struct {
	ID       int64  `json:"id"`
	SalonID  int64  `json:"salonId"`
	MasterID *int64 `json:"masterId,omitempty"`

	SlotStepMinutes       int `json:"slotStepMinutes"`
	DefaultHoldTTLSeconds int `json:"defaultHoldTtlSeconds"`

	FullRefundHours      int  `json:"fullRefundHours"`
	PartialRefundHours   int  `json:"partialRefundHours"`
	PartialRefundPercent int  `json:"partialRefundPercent"`
	NoShowRefundAllowed  bool `json:"noShowRefundAllowed"`

	SuggestWindowMinutes int `json:"suggestWindowMinutes"`
	SuggestLimit         int `json:"suggestLimit"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PolicyListResponse ответ со списком политик салона
type PolicyListResponse struct {
	Policies []PolicyResponse `json:"policies"`
}

// Методы конвертации

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.BookingPolicy) *PolicyResponse {
	if p == nil {
		return nil
	}

	return &PolicyResponse{
		ID:                    p.ID,
		SalonID:               p.SalonID,
		MasterID:              p.MasterID,
		SlotStepMinutes:       p.SlotStepMinutes,
		DefaultHoldTTLSeconds: p.DefaultHoldTTLSeconds,
		FullRefundHours:       p.FullRefundHours,
		PartialRefundHours:    p.PartialRefundHours,
		PartialRefundPercent:  p.PartialRefundPercent,
		NoShowRefundAllowed:   p.NoShowRefundAllowed,
		SuggestWindowMinutes:  p.SuggestWindowMinutes,
		SuggestLimit:          p.SuggestLimit,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

// FromDomainPolicyList конвертирует список domain моделей в DTO
func FromDomainPolicyList(policies []*domain.BookingPolicy) *PolicyListResponse {
	resp := &PolicyListResponse{
		Policies: make([]PolicyResponse, 0, len(policies)),
	}

	for _, p := range policies {
		resp.Policies = append(resp.Policies, *FromDomainPolicy(p))
	}

	return resp
}
