package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	policyRepo "github.com/katiabooking/KB-BookingService/internal/infra/storage/policy"
	"github.com/katiabooking/KB-BookingService/internal/integrations/staffservice"
	"github.com/katiabooking/KB-BookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type mockCalendarStore struct {
	records []*domain.ReservationRecord
	err     error
}

func (m *mockCalendarStore) Get(ctx context.Context, masterID int64, date time.Time) ([]*domain.ReservationRecord, error) {
	return m.records, m.err
}

type mockPolicyRepo struct {
	policy *domain.BookingPolicy
	err    error
}

func (m *mockPolicyRepo) GetWithHierarchy(ctx context.Context, salonID int64, masterID *int64) (*domain.BookingPolicy, error) {
	return m.policy, m.err
}

type mockStaffClient struct {
	master *staffservice.Master
	err    error
}

func (m *mockStaffClient) GetMaster(ctx context.Context, masterID int64) (*staffservice.Master, error) {
	return m.master, m.err
}

// Мастер, работающий во вторник с 09:00 до 19:00
func tuesdayMaster() *staffservice.Master {
	return &staffservice.Master{
		ID:       10,
		SalonID:  1,
		Name:     "Анна",
		IsActive: true,
		WorkingHours: staffservice.WeekSchedule{
			Tuesday: staffservice.DaySchedule{
				IsWorking: true,
				StartTime: ptr.Ptr("09:00"),
				EndTime:   ptr.Ptr("19:00"),
			},
		},
	}
}

// 2026-09-15 - вторник
var tuesday = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 15, hour, min, 0, 0, time.UTC)
}

func slotStarts(slots []domain.TimeSlot) []time.Time {
	starts := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	return starts
}

func TestExecute_FreeDayReturnsFullGrid(t *testing.T) {
	uc := NewUseCase(
		&mockCalendarStore{},
		&mockPolicyRepo{err: policyRepo.ErrPolicyNotFound},
		&mockStaffClient{master: tuesdayMaster()},
		nopLogger{},
	).WithTimeProvider(&fixedTimeProvider{now: time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)})

	resp, err := uc.Execute(context.Background(), &Request{
		MasterID:        10,
		Date:            tuesday,
		DurationMinutes: 60,
		StepMinutes:     30,
	})
	require.NoError(t, err)

	// Шаг 30 минут, длительность 60: последний валидный старт 18:00
	require.Len(t, resp.Slots, 19)
	assert.Equal(t, at(9, 0), resp.Slots[0].Start)
	assert.Equal(t, at(18, 0), resp.Slots[len(resp.Slots)-1].Start)
}

func TestExecute_BookingExcludesOverlappingCandidates(t *testing.T) {
	// Подтвержденная запись 10:00-11:00
	booked := &domain.ReservationRecord{
		ID:       "r1",
		MasterID: 10,
		Status:   domain.StatusConfirmed,
		Interval: domain.Interval{Start: at(10, 0), End: at(11, 0)},
	}

	uc := NewUseCase(
		&mockCalendarStore{records: []*domain.ReservationRecord{booked}},
		&mockPolicyRepo{err: policyRepo.ErrPolicyNotFound},
		&mockStaffClient{master: tuesdayMaster()},
		nopLogger{},
	).WithTimeProvider(&fixedTimeProvider{now: time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)})

	resp, err := uc.Execute(context.Background(), &Request{
		MasterID:        10,
		Date:            tuesday,
		DurationMinutes: 60,
		StepMinutes:     30,
	})
	require.NoError(t, err)

	starts := slotStarts(resp.Slots)
	// Кандидаты, пересекающиеся с 10:00-11:00, исключены
	assert.NotContains(t, starts, at(9, 30))
	assert.NotContains(t, starts, at(10, 0))
	assert.NotContains(t, starts, at(10, 30))
	// Соприкасающиеся границы конфликтом не считаются
	assert.Contains(t, starts, at(9, 0))
	assert.Contains(t, starts, at(11, 0))
}

func TestExecute_ExpiredHoldDoesNotBlock(t *testing.T) {
	now := at(12, 0)
	expired := now.Add(-time.Minute)
	hold := &domain.ReservationRecord{
		ID:        "h1",
		MasterID:  10,
		Status:    domain.StatusTempHold,
		ExpiresAt: &expired,
		Interval:  domain.Interval{Start: at(14, 0), End: at(15, 0)},
	}

	uc := NewUseCase(
		&mockCalendarStore{records: []*domain.ReservationRecord{hold}},
		&mockPolicyRepo{err: policyRepo.ErrPolicyNotFound},
		&mockStaffClient{master: tuesdayMaster()},
		nopLogger{},
	).WithTimeProvider(&fixedTimeProvider{now: now})

	resp, err := uc.Execute(context.Background(), &Request{
		MasterID:        10,
		Date:            tuesday,
		DurationMinutes: 60,
		StepMinutes:     30,
	})
	require.NoError(t, err)

	starts := slotStarts(resp.Slots)
	assert.Contains(t, starts, at(14, 0))
	assert.Contains(t, starts, at(14, 30))
	// Для сегодняшней даты прошедшие кандидаты отброшены
	assert.NotContains(t, starts, at(11, 30))
	assert.Contains(t, starts, at(12, 0))
}

func TestExecute_StepFromPolicyWhenNotProvided(t *testing.T) {
	policy := domain.DefaultPolicy(1)
	policy.SlotStepMinutes = 60

	uc := NewUseCase(
		&mockCalendarStore{},
		&mockPolicyRepo{policy: policy},
		&mockStaffClient{master: tuesdayMaster()},
		nopLogger{},
	).WithTimeProvider(&fixedTimeProvider{now: time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)})

	resp, err := uc.Execute(context.Background(), &Request{
		MasterID:        10,
		Date:            tuesday,
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	// Сетка с часовым шагом: 09:00 .. 18:00
	require.Len(t, resp.Slots, 10)
	assert.Equal(t, at(9, 0), resp.Slots[0].Start)
	assert.Equal(t, at(10, 0), resp.Slots[1].Start)
}

func TestExecute_DayOffReturnsEmpty(t *testing.T) {
	master := tuesdayMaster()
	master.WorkingHours.Tuesday = staffservice.DaySchedule{IsWorking: false}

	uc := NewUseCase(
		&mockCalendarStore{},
		&mockPolicyRepo{err: policyRepo.ErrPolicyNotFound},
		&mockStaffClient{master: master},
		nopLogger{},
	).WithTimeProvider(&fixedTimeProvider{now: time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)})

	resp, err := uc.Execute(context.Background(), &Request{
		MasterID:        10,
		Date:            tuesday,
		DurationMinutes: 60,
		StepMinutes:     30,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	uc := NewUseCase(
		&mockCalendarStore{},
		&mockPolicyRepo{err: policyRepo.ErrPolicyNotFound},
		&mockStaffClient{master: tuesdayMaster()},
		nopLogger{},
	).WithTimeProvider(&fixedTimeProvider{now: time.Date(2026, 9, 16, 12, 0, 0, 0, time.UTC)})

	resp, err := uc.Execute(context.Background(), &Request{
		MasterID:        10,
		Date:            tuesday,
		DurationMinutes: 60,
		StepMinutes:     30,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_MasterNotFound(t *testing.T) {
	uc := NewUseCase(
		&mockCalendarStore{},
		&mockPolicyRepo{err: policyRepo.ErrPolicyNotFound},
		&mockStaffClient{err: staffservice.ErrMasterNotFound},
		nopLogger{},
	).WithTimeProvider(&fixedTimeProvider{now: time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)})

	_, err := uc.Execute(context.Background(), &Request{
		MasterID:        10,
		Date:            tuesday,
		DurationMinutes: 60,
		StepMinutes:     30,
	})
	assert.ErrorIs(t, err, ErrMasterNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&mockCalendarStore{}, &mockPolicyRepo{}, &mockStaffClient{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{MasterID: 0, Date: tuesday, DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{MasterID: 10, Date: tuesday, DurationMinutes: 1000})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{MasterID: 10, DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_CalendarFailure(t *testing.T) {
	uc := NewUseCase(
		&mockCalendarStore{err: errors.New("connection refused")},
		&mockPolicyRepo{err: policyRepo.ErrPolicyNotFound},
		&mockStaffClient{master: tuesdayMaster()},
		nopLogger{},
	).WithTimeProvider(&fixedTimeProvider{now: time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)})

	_, err := uc.Execute(context.Background(), &Request{
		MasterID:        10,
		Date:            tuesday,
		DurationMinutes: 60,
		StepMinutes:     30,
	})
	assert.ErrorIs(t, err, ErrInternal)
}
