package cancel_booking

import "errors"

var (
	// ErrRecordNotFound запись не найдена
	ErrRecordNotFound = errors.New("reservation not found")
	// ErrAlreadyCancelled запись уже отменена
	ErrAlreadyCancelled = errors.New("reservation already cancelled")
	// ErrCannotCancel запись нельзя отменить (например, истекший холд)
	ErrCannotCancel = errors.New("reservation cannot be cancelled")
	// ErrAccessDenied запись принадлежит другому клиенту
	ErrAccessDenied = errors.New("access denied")
	// ErrRefundFailed платежный шлюз не смог выполнить возврат, отмена прервана
	ErrRefundFailed = errors.New("refund failed")
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("internal error")
)
