package get_available_masters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	"github.com/katiabooking/KB-BookingService/internal/integrations/staffservice"
)

// UseCase use case для поиска свободных мастеров салона на точный интервал
type UseCase struct {
	calendarStore CalendarStore
	staffClient   StaffServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый UseCase поиска свободных мастеров
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

// Execute возвращает активных мастеров салона, которые работают и свободны
// в запрошенный интервал. Порядок соответствует порядку ростера салона.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация запроса
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	requested, err := domain.NewInterval(req.Start, req.Start.Add(time.Duration(req.DurationMinutes)*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Ростер салона
	if _, err := uc.staffClient.GetSalon(ctx, req.SalonID); err != nil {
		if errors.Is(err, staffservice.ErrSalonNotFound) {
			return nil, fmt.Errorf("%w: salon_id=%d", ErrSalonNotFound, req.SalonID)
		}
		uc.logger.Error("[get_available_masters.Execute] failed to get salon %d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	masters, err := uc.staffClient.ListMasters(ctx, req.SalonID)
	if err != nil {
		uc.logger.Error("[get_available_masters.Execute] failed to list masters for salon %d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to list masters: %v", ErrInternal, err)
	}

	// 3. Фильтруем: активен, работает в интервал, календарь свободен
	available := make([]AvailableMaster, 0, len(masters))
	for _, master := range masters {
		if !master.IsActive {
			continue
		}

		window, working, err := workingWindowForDay(master, requested.Start)
		if err != nil {
			uc.logger.Warn("[get_available_masters.Execute] invalid schedule for master %d: %v", master.ID, err)
			continue
		}
		if !working || !window.Contains(requested) {
			continue
		}

		records, err := uc.calendarStore.Get(ctx, master.ID, requested.Start)
		if err != nil {
			uc.logger.Error("[get_available_masters.Execute] failed to get calendar for master %d: %v", master.ID, err)
			return nil, fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
		}

		if domain.FindConflict(records, requested, now) != nil {
			continue
		}

		available = append(available, AvailableMaster{
			MasterID:  master.ID,
			Name:      master.Name,
			Specialty: master.Specialty,
		})
	}

	return &Response{SalonID: req.SalonID, Masters: available}, nil
}
