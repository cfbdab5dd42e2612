package confirm_hold

import "errors"

var (
	// ErrHoldNotFound холд не найден
	ErrHoldNotFound = errors.New("hold not found")
	// ErrHoldExpired TTL холда истек, слот снова свободен
	ErrHoldExpired = errors.New("hold expired")
	// ErrNotAHold запись не является временным холдом
	ErrNotAHold = errors.New("record is not a temporary hold")
	// ErrAccessDenied холд принадлежит другому клиенту
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("internal error")
)
