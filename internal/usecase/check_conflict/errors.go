package check_conflict

import "errors"

var (
	// ErrMasterNotFound мастер не найден
	ErrMasterNotFound = errors.New("master not found")
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("internal error")
)
