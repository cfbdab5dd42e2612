package reservations

import "errors"

var (
	// ErrReservationNotFound запись не найдена
	ErrReservationNotFound = errors.New("reservation not found")
	// ErrSalonNotFound салон не найден
	ErrSalonNotFound = errors.New("salon not found")
	// ErrAccessDenied доступ запрещен
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("internal error")
)
