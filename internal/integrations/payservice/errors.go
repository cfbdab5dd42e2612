package payservice

import "errors"

var (
	// ErrChargeNotFound возвращается, когда исходный платеж не найден
	ErrChargeNotFound = errors.New("payservice client: charge not found")

	// ErrRefundRejected возвращается, когда платежный провайдер отклонил возврат
	ErrRefundRejected = errors.New("payservice client: refund rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("payservice client: invalid response")
)
