package reserve_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	policyRepo "github.com/katiabooking/KB-BookingService/internal/infra/storage/policy"
	"github.com/katiabooking/KB-BookingService/internal/integrations/staffservice"
	"github.com/katiabooking/KB-BookingService/pkg/ptr"
)

// UseCase резервирование слота: временный холд или немедленное подтверждение
type UseCase struct {
	calendarStore CalendarStore
	policyRepo    PolicyRepository
	staffClient   StaffServiceClient
	timeProvider  TimeProvider
	idGen         IDGenerator
	logger        Logger
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

// NewUseCase создает новый UseCase резервирования
func NewUseCase(
	calendarStore CalendarStore,
	policyRepo PolicyRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		calendarStore: calendarStore,
		policyRepo:    policyRepo,
		staffClient:   staffClient,
		timeProvider:  &RealTimeProvider{},
		idGen:         uuidGenerator{},
		logger:        logger,
	}
}

// WithTimeProvider заменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// WithIDGenerator заменяет генератор идентификаторов (для тестирования)
func (uc *UseCase) WithIDGenerator(gen IDGenerator) *UseCase {
	uc.idGen = gen
	return uc
}

// Execute резервирует точный интервал в календаре мастера.
// Проверка конфликта и запись выполняются в одной атомарной операции
// хранилища, поэтому две конкурирующие заявки на пересекающиеся
// интервалы не могут пройти обе.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация запроса
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Строим запрашиваемый интервал
	requested, err := domain.NewInterval(req.Start, req.Start.Add(time.Duration(req.DurationMinutes)*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if requested.Start.Before(now) {
		return nil, fmt.Errorf("%w: start time is in the past", ErrInvalidInput)
	}

	// 3. Получаем мастера и проверяем рабочее окно
	master, err := uc.staffClient.GetMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, staffservice.ErrMasterNotFound) {
			return nil, fmt.Errorf("%w: master_id=%d", ErrMasterNotFound, req.MasterID)
		}
		uc.logger.Error("[reserve_slot.Execute] failed to get master %d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}

	if !master.IsActive {
		return nil, fmt.Errorf("%w: master_id=%d", ErrMasterInactive, req.MasterID)
	}

	if master.SalonID != req.SalonID {
		return nil, fmt.Errorf("%w: master %d does not belong to salon %d",
			ErrInvalidInput, req.MasterID, req.SalonID)
	}

	window, working, err := workingWindowForDay(master, req.Start)
	if err != nil {
		uc.logger.Error("[reserve_slot.Execute] invalid schedule for master %d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: invalid master schedule: %v", ErrInternal, err)
	}
	if !working || !window.Contains(requested) {
		return nil, fmt.Errorf("%w: master_id=%d, interval=[%s, %s)",
			ErrOutsideWorkingHours, req.MasterID,
			requested.Start.Format(domain.TimeFormat), requested.End.Format(domain.TimeFormat))
	}

	// 4. Определяем TTL холда по политике салона/мастера
	ttl, err := uc.resolveHoldTTL(ctx, req)
	if err != nil {
		return nil, err
	}

	// 5. Собираем новую запись
	rec := &domain.ReservationRecord{
		ID:            uc.idGen.NewID(),
		MasterID:      req.MasterID,
		SalonID:       req.SalonID,
		ClientID:      req.ClientID,
		Interval:      requested,
		DepositAmount: req.DepositAmount,
		ChargeRef:     req.ChargeRef,
		ServiceName:   req.ServiceName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Notes != "" {
		rec.Notes = ptr.Ptr(req.Notes)
	}

	switch req.Mode {
	case ModeHold:
		expires := now.Add(time.Duration(ttl) * time.Second)
		rec.Status = domain.StatusTempHold
		rec.ExpiresAt = &expires
	case ModeConfirm:
		rec.Status = domain.StatusConfirmed
	}

	// 6. Атомарно: проверка конфликта + дозапись в календарь
	err = uc.calendarStore.Update(ctx, req.MasterID, req.Start,
		func(recs []*domain.ReservationRecord) ([]*domain.ReservationRecord, error) {
			if conflict := domain.FindConflict(recs, requested, now); conflict != nil {
				return nil, &ConflictError{Conflict: conflict}
			}
			return append(recs, rec), nil
		})
	if err != nil {
		var conflictErr *ConflictError
		if errors.As(err, &conflictErr) {
			return nil, conflictErr
		}
		uc.logger.Error("[reserve_slot.Execute] failed to update calendar for master %d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to update calendar: %v", ErrInternal, err)
	}

	uc.logger.Info("[reserve_slot.Execute] created %s record %s for master %d at %s",
		rec.Status, rec.ID, req.MasterID, requested.Start.Format(time.RFC3339))

	return &Response{Record: rec}, nil
}

// resolveHoldTTL возвращает TTL холда: из запроса, иначе из политики,
// иначе значение по умолчанию. Для mode=confirm TTL не нужен.
func (uc *UseCase) resolveHoldTTL(ctx context.Context, req Request) (int, error) {
	if req.Mode != ModeHold {
		return 0, nil
	}

	if req.HoldTTLSeconds != nil {
		return *req.HoldTTLSeconds, nil
	}

	policy, err := uc.policyRepo.GetWithHierarchy(ctx, req.SalonID, &req.MasterID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			return domain.DefaultHoldTTLSeconds, nil
		}
		uc.logger.Error("[reserve_slot.resolveHoldTTL] failed to get policy for salon %d: %v", req.SalonID, err)
		return 0, fmt.Errorf("%w: failed to get booking policy: %v", ErrInternal, err)
	}

	return policy.DefaultHoldTTLSeconds, nil
}
