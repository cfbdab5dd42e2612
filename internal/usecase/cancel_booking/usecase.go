package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	storage "github.com/katiabooking/KB-BookingService/internal/infra/storage/calendar"
	policyRepo "github.com/katiabooking/KB-BookingService/internal/infra/storage/policy"
	"github.com/katiabooking/KB-BookingService/internal/integrations/payservice"
	"github.com/katiabooking/KB-BookingService/pkg/ptr"
)

// UseCase отмена записи с возвратом депозита по политике салона
type UseCase struct {
	calendarStore CalendarStore
	policyRepo    PolicyRepository
	payClient     PayServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый UseCase отмены
func NewUseCase(
	calendarStore CalendarStore,
	policyRepo PolicyRepository,
	payClient PayServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		calendarStore: calendarStore,
		policyRepo:    policyRepo,
		payClient:     payClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider заменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute отменяет запись и возвращает депозит по правилам политики.
// Сначала выполняется возврат в платежном шлюзе, затем запись помечается
// отмененной: неудавшийся возврат прерывает отмену, запись остается активной.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация запроса
	if req.ReservationID == "" {
		return nil, fmt.Errorf("%w: reservation_id is required", ErrInvalidInput)
	}
	if !req.IsStaff && req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: client_id must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	// 2. Находим запись и проверяем права доступа
	rec, err := uc.calendarStore.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id=%s", ErrRecordNotFound, req.ReservationID)
		}
		uc.logger.Error("[cancel_booking.Execute] failed to get record %s: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get record: %v", ErrInternal, err)
	}

	if !req.IsStaff && rec.ClientID != req.ClientID {
		return nil, fmt.Errorf("%w: id=%s", ErrAccessDenied, req.ReservationID)
	}

	if rec.Status == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: id=%s", ErrAlreadyCancelled, req.ReservationID)
	}

	if !rec.CanBeCancelled(now) {
		return nil, fmt.Errorf("%w: id=%s, status=%s", ErrCannotCancel, req.ReservationID, rec.Status)
	}

	// 3. Считаем сумму возврата по политике салона/мастера
	refundAmount, err := uc.resolveRefund(ctx, rec, req.IsNoShow, now)
	if err != nil {
		return nil, err
	}

	// 4. Возврат в платежном шлюзе до изменения календаря
	var refundID *string
	if refundAmount > 0 && rec.ChargeRef != nil {
		refund, err := uc.payClient.CreateRefund(ctx, payservice.RefundRequest{
			Amount:    refundAmount,
			ChargeRef: *rec.ChargeRef,
			Reason:    req.Reason,
		})
		if err != nil {
			uc.logger.Error("[cancel_booking.Execute] refund failed for record %s: %v", req.ReservationID, err)
			return nil, fmt.Errorf("%w: %v", ErrRefundFailed, err)
		}
		refundID = &refund.ID
	}

	// 5. Атомарно помечаем запись отмененной
	var cancelled *domain.ReservationRecord
	err = uc.calendarStore.Update(ctx, rec.MasterID, rec.Interval.Start,
		func(recs []*domain.ReservationRecord) ([]*domain.ReservationRecord, error) {
			target := findByID(recs, req.ReservationID)
			if target == nil {
				return nil, ErrCannotCancel
			}
			if target.Status == domain.StatusCancelled {
				return nil, ErrAlreadyCancelled
			}

			cancelledAt := uc.timeProvider.Now()
			target.Status = domain.StatusCancelled
			target.ExpiresAt = nil
			target.CancelledAt = &cancelledAt
			if req.Reason != "" {
				target.CancellationReason = ptr.Ptr(req.Reason)
			}

			cancelled = target
			return recs, nil
		})
	if err != nil {
		if errors.Is(err, ErrCannotCancel) || errors.Is(err, ErrAlreadyCancelled) {
			// Возврат уже ушел в шлюз - логируем рассинхрон для ручного разбора
			uc.logger.Error("[cancel_booking.Execute] record %s changed after refund: %v", req.ReservationID, err)
			return nil, err
		}
		uc.logger.Error("[cancel_booking.Execute] failed to cancel record %s: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to cancel record: %v", ErrInternal, err)
	}

	uc.logger.Info("[cancel_booking.Execute] cancelled record %s, refund=%d", req.ReservationID, refundAmount)

	return &Response{
		Record:       cancelled,
		RefundAmount: refundAmount,
		RefundID:     refundID,
	}, nil
}

// resolveRefund вычисляет сумму возврата по политике салона/мастера.
// Запись без депозита отменяется без обращения к политике.
func (uc *UseCase) resolveRefund(ctx context.Context, rec *domain.ReservationRecord, isNoShow bool, now time.Time) (int64, error) {
	if rec.DepositAmount <= 0 {
		return 0, nil
	}

	policy, err := uc.policyRepo.GetWithHierarchy(ctx, rec.SalonID, &rec.MasterID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			policy = domain.DefaultPolicy(rec.SalonID)
		} else {
			uc.logger.Error("[cancel_booking.resolveRefund] failed to get policy for salon %d: %v", rec.SalonID, err)
			return 0, fmt.Errorf("%w: failed to get booking policy: %v", ErrInternal, err)
		}
	}

	payment := domain.PaymentRecord{
		PaidAmount:      rec.DepositAmount,
		AppointmentTime: rec.Interval.Start,
		IsNoShow:        isNoShow,
	}

	return domain.CalculateRefund(payment, policy, now), nil
}

func findByID(recs []*domain.ReservationRecord, id string) *domain.ReservationRecord {
	for _, rec := range recs {
		if rec.ID == id {
			return rec
		}
	}
	return nil
}
