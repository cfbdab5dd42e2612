package reserve_slot

import (
	"errors"
	"fmt"

	"github.com/katiabooking/KB-BookingService/internal/domain"
)

var (
	// ErrSlotConflict запрашиваемый интервал пересекается с существующей записью
	ErrSlotConflict = errors.New("slot conflict")
	// ErrOutsideWorkingHours интервал вне рабочего окна мастера
	ErrOutsideWorkingHours = errors.New("outside working hours")
	// ErrMasterNotFound мастер не найден
	ErrMasterNotFound = errors.New("master not found")
	// ErrMasterInactive мастер неактивен
	ErrMasterInactive = errors.New("master is inactive")
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("internal error")
)

// ConflictError несет запись, с которой пересекся запрошенный интервал.
// Разворачивается в ErrSlotConflict через errors.Is.
type ConflictError struct {
	Conflict *domain.ReservationRecord
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: interval overlaps record %s [%s, %s)",
		ErrSlotConflict,
		e.Conflict.ID,
		e.Conflict.Interval.Start.Format("15:04"),
		e.Conflict.Interval.End.Format("15:04"),
	)
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotConflict
}
