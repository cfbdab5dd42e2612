package domain

import "errors"

// ErrInvalidPolicy возвращается при нарушении инвариантов политики бронирования
var ErrInvalidPolicy = errors.New("invalid booking policy")

// Дефолтные значения политики
const (
	DefaultSlotStepMinutes      = 30
	DefaultHoldTTLSeconds       = 600 // 10 минут
	DefaultFullRefundHours      = 24
	DefaultPartialRefundHours   = 12
	DefaultPartialRefundPercent = 50
	DefaultSuggestWindowMinutes = 120
	DefaultSuggestLimit         = 3
)

// Границы валидации политики и запросов
const (
	MinSlotStepMinutes = 5
	MaxSlotStepMinutes = 480 // 8 часов

	MinHoldTTLSeconds = 60
	MaxHoldTTLSeconds = 86400 // сутки

	MinDurationMinutes = 5
	MaxDurationMinutes = 480

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
