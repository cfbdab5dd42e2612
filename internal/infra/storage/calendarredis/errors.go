package calendarredis

import "errors"

var (
	// ErrConflictRetry возвращается, когда CAS-цикл исчерпал попытки
	// из-за конкурентных изменений календаря. Транзиентная ошибка:
	// вызывающий может повторить запрос
	ErrConflictRetry = errors.New("calendarredis: concurrent update, retries exhausted")

	// ErrStorage возвращается при ошибках работы с redis
	ErrStorage = errors.New("calendarredis: storage error")

	// ErrDecode возвращается при ошибке десериализации календаря
	ErrDecode = errors.New("calendarredis: failed to decode calendar")
)
