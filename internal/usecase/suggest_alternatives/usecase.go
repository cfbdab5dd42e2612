package suggest_alternatives

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	policyRepo "github.com/katiabooking/KB-BookingService/internal/infra/storage/policy"
	"github.com/katiabooking/KB-BookingService/internal/integrations/staffservice"
)

// UseCase подбор альтернатив, когда запрошенный интервал занят
type UseCase struct {
	calendarStore CalendarStore
	policyRepo    PolicyRepository
	staffClient   StaffServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый UseCase подбора альтернатив
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

// WithTimeProvider заменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает две группы альтернатив запрошенному интервалу:
// ближайшие свободные слоты того же мастера в окне +-SuggestWindowMinutes
// (отсортированные по близости к запрошенному началу) и других мастеров
// салона, свободных ровно в запрошенное время.
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

	// 2. Мастер и политика подбора
	master, err := uc.staffClient.GetMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, staffservice.ErrMasterNotFound) {
			return nil, fmt.Errorf("%w: master_id=%d", ErrMasterNotFound, req.MasterID)
		}
		uc.logger.Error("[suggest_alternatives.Execute] failed to get master %d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}

	policy := uc.resolvePolicy(ctx, req.SalonID, req.MasterID)

	// 3. Ближайшие слоты того же мастера
	sameMaster, err := uc.suggestSameMaster(ctx, master, requested, policy, now)
	if err != nil {
		return nil, err
	}

	// 4. Другие мастера салона, свободные в то же время
	sameTime, err := uc.suggestSameTime(ctx, req, requested, policy, now)
	if err != nil {
		return nil, err
	}

	return &Response{SameMaster: sameMaster, SameTime: sameTime}, nil
}

func (uc *UseCase) resolvePolicy(ctx context.Context, salonID, masterID int64) *domain.BookingPolicy {
	policy, err := uc.policyRepo.GetWithHierarchy(ctx, salonID, &masterID)
	if err != nil {
		if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Warn("[suggest_alternatives.resolvePolicy] failed to get policy for salon %d: %v", salonID, err)
		}
		return domain.DefaultPolicy(salonID)
	}
	return policy
}

// suggestSameMaster перебирает слоты сетки рабочего окна в пределах
// +-SuggestWindowMinutes от запрошенного начала, отбрасывает занятые,
// прошедшие и сам запрошенный слот, сортирует по близости
func (uc *UseCase) suggestSameMaster(
	ctx context.Context,
	master *staffservice.Master,
	requested domain.Interval,
	policy *domain.BookingPolicy,
	now time.Time,
) ([]domain.TimeSlot, error) {
	window, working, err := workingWindowForDay(master, requested.Start)
	if err != nil {
		uc.logger.Error("[suggest_alternatives.suggestSameMaster] invalid schedule for master %d: %v", master.ID, err)
		return nil, fmt.Errorf("%w: invalid master schedule: %v", ErrInternal, err)
	}
	if !working {
		return []domain.TimeSlot{}, nil
	}

	records, err := uc.calendarStore.Get(ctx, master.ID, requested.Start)
	if err != nil {
		uc.logger.Error("[suggest_alternatives.suggestSameMaster] failed to get calendar for master %d: %v", master.ID, err)
		return nil, fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
	}
	occupied := domain.OccupiedIntervals(records, now)

	step := time.Duration(policy.SlotStepMinutes) * time.Minute
	searchWindow := time.Duration(policy.SuggestWindowMinutes) * time.Minute
	duration := requested.Duration()

	from := requested.Start.Add(-searchWindow)
	to := requested.Start.Add(searchWindow)

	// Кандидаты идут по той же сетке от начала рабочего окна, что и слоты
	// в выдаче доступности, окно поиска только фильтрует её
	candidates := make([]domain.TimeSlot, 0)
	for start := window.Start; !start.After(to); start = start.Add(step) {
		if start.Before(from) || start.Equal(requested.Start) {
			continue
		}
		if start.Before(now) {
			continue
		}

		candidate, err := domain.NewInterval(start, start.Add(duration))
		if err != nil {
			continue
		}
		if !window.Contains(candidate) {
			continue
		}
		if overlapsAny(candidate, occupied) {
			continue
		}

		candidates = append(candidates, domain.TimeSlot{
			Start:           start,
			DurationMinutes: int(duration / time.Minute),
		})
	}

	// По близости к запрошенному началу, при равенстве - более ранний
	sort.SliceStable(candidates, func(i, j int) bool {
		di := absDuration(candidates[i].Start.Sub(requested.Start))
		dj := absDuration(candidates[j].Start.Sub(requested.Start))
		if di == dj {
			return candidates[i].Start.Before(candidates[j].Start)
		}
		return di < dj
	})

	if len(candidates) > policy.SuggestLimit {
		candidates = candidates[:policy.SuggestLimit]
	}

	return candidates, nil
}

// suggestSameTime перебирает активных мастеров салона и оставляет тех,
// кто работает и свободен ровно в запрошенный интервал
func (uc *UseCase) suggestSameTime(
	ctx context.Context,
	req Request,
	requested domain.Interval,
	policy *domain.BookingPolicy,
	now time.Time,
) ([]MasterOption, error) {
	masters, err := uc.staffClient.ListMasters(ctx, req.SalonID)
	if err != nil {
		uc.logger.Error("[suggest_alternatives.suggestSameTime] failed to list masters for salon %d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to list masters: %v", ErrInternal, err)
	}

	options := make([]MasterOption, 0)
	for _, candidate := range masters {
		if candidate.ID == req.MasterID || !candidate.IsActive {
			continue
		}

		window, working, err := workingWindowForDay(candidate, requested.Start)
		if err != nil || !working || !window.Contains(requested) {
			continue
		}

		records, err := uc.calendarStore.Get(ctx, candidate.ID, requested.Start)
		if err != nil {
			uc.logger.Warn("[suggest_alternatives.suggestSameTime] failed to get calendar for master %d: %v", candidate.ID, err)
			continue
		}

		if domain.FindConflict(records, requested, now) != nil {
			continue
		}

		options = append(options, MasterOption{
			MasterID:  candidate.ID,
			Name:      candidate.Name,
			Specialty: candidate.Specialty,
		})

		if len(options) >= policy.SuggestLimit {
			break
		}
	}

	return options, nil
}

func overlapsAny(candidate domain.Interval, occupied []domain.Interval) bool {
	for _, iv := range occupied {
		if candidate.Overlaps(iv) {
			return true
		}
	}
	return false
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
