package confirm_hold

import (
	"context"
	"errors"
	"fmt"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	storage "github.com/katiabooking/KB-BookingService/internal/infra/storage/calendar"
)

// UseCase подтверждение временного холда: temp_hold -> confirmed
type UseCase struct {
	calendarStore CalendarStore
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый UseCase подтверждения холда
func NewUseCase(calendarStore CalendarStore, logger Logger) *UseCase {
	return &UseCase{
		calendarStore: calendarStore,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider заменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute переводит живой холд в confirmed и снимает с него TTL.
// Истекший холд подтвердить нельзя: его слот уже считается свободным
// и мог быть занят другим клиентом.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация запроса
	if req.HoldID == "" {
		return nil, fmt.Errorf("%w: hold_id is required", ErrInvalidInput)
	}
	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: client_id must be positive", ErrInvalidInput)
	}

	// 2. Находим холд, чтобы узнать его календарь
	rec, err := uc.calendarStore.GetByID(ctx, req.HoldID)
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: hold_id=%s", ErrHoldNotFound, req.HoldID)
		}
		uc.logger.Error("[confirm_hold.Execute] failed to get record %s: %v", req.HoldID, err)
		return nil, fmt.Errorf("%w: failed to get record: %v", ErrInternal, err)
	}

	if rec.ClientID != req.ClientID {
		return nil, fmt.Errorf("%w: hold_id=%s", ErrAccessDenied, req.HoldID)
	}

	// 3. Атомарно: перечитать календарь и перевести холд в confirmed
	var confirmed *domain.ReservationRecord
	err = uc.calendarStore.Update(ctx, rec.MasterID, rec.Interval.Start,
		func(recs []*domain.ReservationRecord) ([]*domain.ReservationRecord, error) {
			now := uc.timeProvider.Now()

			target := findByID(recs, req.HoldID)
			if target == nil {
				// Холд истек и был вычищен, либо удален конкурентно
				return nil, ErrHoldExpired
			}

			if target.Status != domain.StatusTempHold {
				return nil, fmt.Errorf("%w: status=%s", ErrNotAHold, target.Status)
			}

			if !target.CanBeConfirmed(now) {
				return nil, ErrHoldExpired
			}

			target.Status = domain.StatusConfirmed
			target.ExpiresAt = nil
			if req.BookingID != nil {
				target.BookingID = req.BookingID
			}
			if req.ChargeRef != nil {
				target.ChargeRef = req.ChargeRef
			}

			confirmed = target
			return recs, nil
		})
	if err != nil {
		if errors.Is(err, ErrHoldExpired) || errors.Is(err, ErrNotAHold) {
			return nil, err
		}
		uc.logger.Error("[confirm_hold.Execute] failed to confirm hold %s: %v", req.HoldID, err)
		return nil, fmt.Errorf("%w: failed to confirm hold: %v", ErrInternal, err)
	}

	uc.logger.Info("[confirm_hold.Execute] confirmed hold %s for master %d", req.HoldID, rec.MasterID)

	return &Response{Record: confirmed}, nil
}

func findByID(recs []*domain.ReservationRecord, id string) *domain.ReservationRecord {
	for _, rec := range recs {
		if rec.ID == id {
			return rec
		}
	}
	return nil
}
