package domain

import "time"

// ReservationStatus статус записи в календаре мастера
type ReservationStatus string

const (
	// StatusTempHold временный холд до подтверждения или оплаты, имеет TTL
	StatusTempHold ReservationStatus = "temp_hold"
	// StatusConfirmed подтвержденное бронирование
	StatusConfirmed ReservationStatus = "confirmed"
	// StatusCancelled отмененное бронирование, терминальный статус
	StatusCancelled ReservationStatus = "cancelled"
)

// ReservationRecord одна занятая запись в календаре мастера на дату.
//
// Инварианты:
// - у confirmed и cancelled записи ExpiresAt всегда nil
// - у temp_hold записи ExpiresAt всегда задан
//
// Жизненный цикл: temp_hold -> confirmed -> cancelled,
// либо temp_hold -> (истек TTL, логически свободен) -> физически удален при
// следующей записи календаря. Отмененная запись никогда не переоткрывается.
type ReservationRecord struct {
	ID        string // UUID записи (он же holdId для временных холдов)
	MasterID  int64
	SalonID   int64
	BookingID *int64 // nil для холдов, еще не привязанных к подтвержденному бронированию
	ClientID  int64

	Interval Interval
	Status   ReservationStatus

	// ExpiresAt задан только для temp_hold
	ExpiresAt *time.Time

	// Данные депозита для расчета возврата при отмене
	DepositAmount int64 // в минорных единицах (копейки)
	ChargeRef     *string

	// Денормализованные данные для истории
	ServiceName string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOccupying сообщает, занимает ли запись свое временное окно в момент now.
// Подтвержденное бронирование занимает всегда, временный холд - только до
// истечения TTL, отмененная запись не занимает никогда.
func (r *ReservationRecord) IsOccupying(now time.Time) bool {
	switch r.Status {
	case StatusConfirmed:
		return true
	case StatusTempHold:
		return r.ExpiresAt != nil && now.Before(*r.ExpiresAt)
	default:
		return false
	}
}

// IsExpiredHold сообщает, что запись - временный холд с истекшим TTL
// Такие записи вычищаются физически при следующей записи календаря
func (r *ReservationRecord) IsExpiredHold(now time.Time) bool {
	return r.Status == StatusTempHold && r.ExpiresAt != nil && !now.Before(*r.ExpiresAt)
}

// CanBeConfirmed сообщает, можно ли перевести холд в confirmed в момент now
func (r *ReservationRecord) CanBeConfirmed(now time.Time) bool {
	return r.Status == StatusTempHold && r.ExpiresAt != nil && now.Before(*r.ExpiresAt)
}

// CanBeCancelled сообщает, можно ли отменить запись
// Отменяются подтвержденные бронирования и живые холды; cancelled терминален
func (r *ReservationRecord) CanBeCancelled(now time.Time) bool {
	if r.Status == StatusConfirmed {
		return true
	}
	return r.Status == StatusTempHold && !r.IsExpiredHold(now)
}

// OccupiedIntervals возвращает интервалы записей, занимающих окно в момент now
// Используется и движком доступности, и проверкой конфликтов на пути записи
func OccupiedIntervals(records []*ReservationRecord, now time.Time) []Interval {
	occupied := make([]Interval, 0, len(records))
	for _, rec := range records {
		if rec.IsOccupying(now) {
			occupied = append(occupied, rec.Interval)
		}
	}
	return occupied
}

// FindConflict возвращает первую запись, занимающую окно и пересекающуюся
// с запрошенным интервалом, либо nil если конфликта нет
func FindConflict(records []*ReservationRecord, requested Interval, now time.Time) *ReservationRecord {
	for _, rec := range records {
		if rec.IsOccupying(now) && rec.Interval.Overlaps(requested) {
			return rec
		}
	}
	return nil
}

// CalendarFilter фильтр для выборки записей салона
type CalendarFilter struct {
	SalonID         int64      // Обязательный параметр
	MasterID        *int64     // Фильтр по мастеру (опционально)
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	Status          *ReservationStatus
	IncludeInactive bool // Включать ли отмененные записи
}
