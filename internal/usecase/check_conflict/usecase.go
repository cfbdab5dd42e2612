package check_conflict

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	"github.com/katiabooking/KB-BookingService/internal/integrations/staffservice"
)

// UseCase проверка занятости точного интервала у мастера
type UseCase struct {
	calendarStore CalendarStore
	staffClient   StaffServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый UseCase для проверки конфликтов
func NewUseCase(calendarStore CalendarStore, staffClient StaffServiceClient, logger Logger) *UseCase {
	return &UseCase{
		calendarStore: calendarStore,
		staffClient:   staffClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider заменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute проверяет, свободен ли точный интервал [start, start+duration)
// в календаре мастера. Просроченные холды занятостью не считаются.
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

	// 3. Получаем мастера и проверяем рабочее окно
	master, err := uc.staffClient.GetMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, staffservice.ErrMasterNotFound) {
			return nil, fmt.Errorf("%w: master_id=%d", ErrMasterNotFound, req.MasterID)
		}
		uc.logger.Error("[check_conflict.Execute] failed to get master %d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}

	window, working, err := workingWindowForDay(master, req.Start)
	if err != nil {
		uc.logger.Error("[check_conflict.Execute] invalid schedule for master %d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: invalid master schedule: %v", ErrInternal, err)
	}
	if !working || !window.Contains(requested) {
		return &Response{Available: false, OutsideWorkingHours: true}, nil
	}

	// 4. Читаем календарь мастера на дату запроса
	records, err := uc.calendarStore.Get(ctx, req.MasterID, req.Start)
	if err != nil {
		uc.logger.Error("[check_conflict.Execute] failed to get calendar for master %d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
	}

	// 5. Ищем пересечение с занимающими записями
	conflict := domain.FindConflict(records, requested, now)
	if conflict != nil {
		return &Response{Available: false, Conflict: conflict}, nil
	}

	return &Response{Available: true}, nil
}
