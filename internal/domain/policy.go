package domain

import "time"

// BookingPolicy политика бронирования и отмены.
// Поддерживает двухуровневую иерархию:
// 1. Политика конкретного мастера (salon_id, master_id)
// 2. Политика всего салона (salon_id, NULL)
type BookingPolicy struct {
	ID       int64
	SalonID  int64
	MasterID *int64 // NULL = политика для всех мастеров салона

	// Параметры сетки слотов и холдов
	SlotStepMinutes       int
	DefaultHoldTTLSeconds int

	// Параметры возврата депозита при отмене.
	// Инварианты: FullRefundHours >= PartialRefundHours >= 0,
	// 0 <= PartialRefundPercent <= 100
	FullRefundHours      int
	PartialRefundHours   int
	PartialRefundPercent int
	NoShowRefundAllowed  bool

	// Параметры подбора альтернатив
	SuggestWindowMinutes int
	SuggestLimit         int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSalonWide сообщает, что это политика уровня салона (не мастера)
func (p *BookingPolicy) IsSalonWide() bool {
	return p.MasterID == nil
}

// Validate проверяет инварианты политики
func (p *BookingPolicy) Validate() error {
	if p.SlotStepMinutes < MinSlotStepMinutes || p.SlotStepMinutes > MaxSlotStepMinutes {
		return ErrInvalidPolicy
	}
	if p.DefaultHoldTTLSeconds < MinHoldTTLSeconds || p.DefaultHoldTTLSeconds > MaxHoldTTLSeconds {
		return ErrInvalidPolicy
	}
	if p.PartialRefundHours < 0 || p.FullRefundHours < p.PartialRefundHours {
		return ErrInvalidPolicy
	}
	if p.PartialRefundPercent < 0 || p.PartialRefundPercent > 100 {
		return ErrInvalidPolicy
	}
	if p.SuggestWindowMinutes <= 0 || p.SuggestLimit <= 0 {
		return ErrInvalidPolicy
	}
	return nil
}

// DefaultPolicy возвращает политику с дефолтными значениями
// Используется, когда для салона/мастера политика не настроена
func DefaultPolicy(salonID int64) *BookingPolicy {
	return &BookingPolicy{
		SalonID:               salonID,
		SlotStepMinutes:       DefaultSlotStepMinutes,
		DefaultHoldTTLSeconds: DefaultHoldTTLSeconds,
		FullRefundHours:       DefaultFullRefundHours,
		PartialRefundHours:    DefaultPartialRefundHours,
		PartialRefundPercent:  DefaultPartialRefundPercent,
		NoShowRefundAllowed:   false,
		SuggestWindowMinutes:  DefaultSuggestWindowMinutes,
		SuggestLimit:          DefaultSuggestLimit,
	}
}

// PaymentRecord данные платежа для расчета возврата
type PaymentRecord struct {
	PaidAmount      int64 // в минорных единицах
	AppointmentTime time.Time
	CancelledAt     *time.Time
	IsNoShow        bool
}
