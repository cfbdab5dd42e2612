package get_available_masters

import "errors"

var (
	// ErrSalonNotFound салон не найден
	ErrSalonNotFound = errors.New("salon not found")
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("internal error")
)
