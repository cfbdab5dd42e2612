package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	policyRepo "github.com/katiabooking/KB-BookingService/internal/infra/storage/policy"
	staffClient "github.com/katiabooking/KB-BookingService/internal/integrations/staffservice"
	"github.com/katiabooking/KB-BookingService/pkg/ptr"
)

// UseCase use case для получения доступных слотов мастера
type UseCase struct {
	calendarStore CalendarStore
	policyRepo    PolicyRepository
	staffClient   StaffServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
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
		logger:        logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: master=%d, date=%s, duration=%d",
		req.MasterID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// Дата в прошлом - слотов нет
	if isDateInPast(req.Date, now) {
		return &Response{MasterID: req.MasterID, Date: req.Date, Slots: []domain.TimeSlot{}}, nil
	}

	// 3. Получаем мастера с рабочим расписанием
	master, err := uc.staffClient.GetMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, staffClient.ErrMasterNotFound) {
			uc.logger.Warn("GetAvailableSlots: master id=%d not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}

	// 4. Рабочее окно мастера на дату; выходной - слотов нет
	window, isWorking, err := workingWindowForDay(master, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve working hours for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to resolve working hours: %v", ErrInternal, err)
	}
	if !isWorking {
		uc.logger.Info("GetAvailableSlots: master=%d is off on %s", req.MasterID, req.Date.Format(domain.DateFormat))
		return &Response{MasterID: req.MasterID, Date: req.Date, Slots: []domain.TimeSlot{}}, nil
	}

	// 5. Получаем политику с учетом иерархии; если не настроена - дефолты
	stepMinutes := req.StepMinutes
	if stepMinutes == 0 {
		policy, err := uc.policyRepo.GetWithHierarchy(ctx, master.SalonID, ptr.Ptr(req.MasterID))
		if err != nil && !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get policy: %v", err)
			return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
		}
		if policy == nil {
			policy = domain.DefaultPolicy(master.SalonID)
			uc.logger.Info("GetAvailableSlots: using default policy for salon=%d, master=%d",
				master.SalonID, req.MasterID)
		}
		stepMinutes = policy.SlotStepMinutes
	}

	// 6. Генерируем кандидатов по сетке внутри рабочего окна
	candidates := generateCandidates(window, req.DurationMinutes, stepMinutes)

	// Для сегодняшней даты отбрасываем уже прошедшие слоты
	if isSameDay(req.Date, now) {
		candidates = dropPastSlots(candidates, now)
	}

	// 7. Получаем календарь; занятыми считаются confirmed записи и живые холды
	records, err := uc.calendarStore.Get(ctx, req.MasterID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get calendar: %v", err)
		return nil, fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
	}
	occupied := domain.OccupiedIntervals(records, now)

	// 8. Оставляем кандидатов без пересечений с занятыми интервалами
	slots := filterFree(candidates, occupied)

	uc.logger.Info("GetAvailableSlots: %d of %d candidates free for master=%d, date=%s",
		len(slots), len(candidates), req.MasterID, req.Date.Format(domain.DateFormat))

	return &Response{
		MasterID: req.MasterID,
		Date:     req.Date,
		Slots:    slots,
	}, nil
}
