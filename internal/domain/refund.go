package domain

import "time"

// CalculateRefund вычисляет сумму возврата депозита при отмене бронирования.
// Чистая функция без побочных эффектов: фактическое движение денег и
// сохранение состояния платежа - ответственность вызывающего.
//
// Правила применяются по порядку:
// 1. No-show: полный возврат если политика разрешает, иначе 0
// 2. До визита осталось >= FullRefundHours часов - полный возврат
// 3. До визита осталось >= PartialRefundHours часов - PartialRefundPercent от суммы
// 4. Иначе - 0
//
// Суммы в минорных единицах; процент считается целочисленно с усечением.
func CalculateRefund(payment PaymentRecord, policy *BookingPolicy, now time.Time) int64 {
	if payment.IsNoShow {
		if policy.NoShowRefundAllowed {
			return payment.PaidAmount
		}
		return 0
	}

	timeBefore := payment.AppointmentTime.Sub(now)

	if timeBefore >= time.Duration(policy.FullRefundHours)*time.Hour {
		return payment.PaidAmount
	}

	if timeBefore >= time.Duration(policy.PartialRefundHours)*time.Hour {
		return payment.PaidAmount * int64(policy.PartialRefundPercent) / 100
	}

	return 0
}
