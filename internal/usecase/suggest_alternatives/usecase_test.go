package suggest_alternatives

import (
	"context"
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

// mockCalendarStore календарь на мастера
type mockCalendarStore struct {
	byMaster map[int64][]*domain.ReservationRecord
}

func (m *mockCalendarStore) Get(ctx context.Context, masterID int64, date time.Time) ([]*domain.ReservationRecord, error) {
	return m.byMaster[masterID], nil
}

type mockPolicyRepo struct {
	policy *domain.BookingPolicy
	err    error
}

func (m *mockPolicyRepo) GetWithHierarchy(ctx context.Context, salonID int64, masterID *int64) (*domain.BookingPolicy, error) {
	return m.policy, m.err
}

type mockStaffClient struct {
	masters map[int64]*staffservice.Master
	roster  []*staffservice.Master
}

func (m *mockStaffClient) GetMaster(ctx context.Context, masterID int64) (*staffservice.Master, error) {
	master, ok := m.masters[masterID]
	if !ok {
		return nil, staffservice.ErrMasterNotFound
	}
	return master, nil
}

func (m *mockStaffClient) ListMasters(ctx context.Context, salonID int64) ([]*staffservice.Master, error) {
	return m.roster, nil
}

func workingMaster(id int64, name, specialty string) *staffservice.Master {
	return &staffservice.Master{
		ID:        id,
		SalonID:   1,
		Name:      name,
		Specialty: specialty,
		IsActive:  true,
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
func at(hour, min int) time.Time {
	return time.Date(2026, 9, 15, hour, min, 0, 0, time.UTC)
}

func confirmedAt(id string, masterID int64, start, end time.Time) *domain.ReservationRecord {
	return &domain.ReservationRecord{
		ID:       id,
		MasterID: masterID,
		Status:   domain.StatusConfirmed,
		Interval: domain.Interval{Start: start, End: end},
	}
}

func TestExecute_SameMasterSortedByProximity(t *testing.T) {
	// Запрошенный интервал 14:00-15:00 занят, соседние тоже: 13:00-14:00 свободен
	store := &mockCalendarStore{byMaster: map[int64][]*domain.ReservationRecord{
		10: {
			confirmedAt("busy", 10, at(14, 0), at(15, 0)),
		},
	}}

	anna := workingMaster(10, "Анна", "парикмахер")
	uc := NewUseCase(
		store,
		&mockPolicyRepo{err: policyRepo.ErrPolicyNotFound},
		&mockStaffClient{masters: map[int64]*staffservice.Master{10: anna}, roster: []*staffservice.Master{anna}},
		nopLogger{},
	).WithTimeProvider(&fixedTimeProvider{now: at(8, 0)})

	resp, err := uc.Execute(context.Background(), Request{
		MasterID:        10,
		SalonID:         1,
		Start:           at(14, 0),
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	// Дефолтный лимит 3; кандидаты 13:30 и 15:00 пересекаются с занятым 14:00-15:00?
	// 13:30+60=14:30 пересекается, 14:30 тоже; 13:00 и 15:00 граничат - свободны
	require.Len(t, resp.SameMaster, domain.DefaultSuggestLimit)
	assert.Equal(t, at(13, 0), resp.SameMaster[0].Start)
	assert.Equal(t, at(15, 0), resp.SameMaster[1].Start)
	assert.Equal(t, at(12, 30), resp.SameMaster[2].Start)
}

func TestExecute_SameMasterCandidatesFollowWorkingGrid(t *testing.T) {
	// Запрос не выровнен по сетке (14:10), но кандидаты идут по сетке
	// рабочего окна 09:00 с шагом 30, а не от запрошенного начала
	store := &mockCalendarStore{byMaster: map[int64][]*domain.ReservationRecord{
		10: {
			confirmedAt("busy", 10, at(14, 0), at(15, 0)),
		},
	}}

	anna := workingMaster(10, "Анна", "парикмахер")
	uc := NewUseCase(
		store,
		&mockPolicyRepo{err: policyRepo.ErrPolicyNotFound},
		&mockStaffClient{masters: map[int64]*staffservice.Master{10: anna}, roster: []*staffservice.Master{anna}},
		nopLogger{},
	).WithTimeProvider(&fixedTimeProvider{now: at(8, 0)})

	resp, err := uc.Execute(context.Background(), Request{
		MasterID:        10,
		SalonID:         1,
		Start:           at(14, 10),
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	// Свободные слоты сетки в окне +-120 минут: 12:30, 13:00, 15:00, 15:30, 16:00;
	// ближайшие к 14:10 - 15:00 (50 мин), 13:00 (70 мин), 15:30 (80 мин)
	require.Len(t, resp.SameMaster, domain.DefaultSuggestLimit)
	assert.Equal(t, at(15, 0), resp.SameMaster[0].Start)
	assert.Equal(t, at(13, 0), resp.SameMaster[1].Start)
	assert.Equal(t, at(15, 30), resp.SameMaster[2].Start)
	for _, slot := range resp.SameMaster {
		assert.Zero(t, slot.Start.Minute()%30)
	}
}

func TestExecute_SameMasterSkipsPastCandidates(t *testing.T) {
	store := &mockCalendarStore{byMaster: map[int64][]*domain.ReservationRecord{}}

	anna := workingMaster(10, "Анна", "парикмахер")
	uc := NewUseCase(
		store,
		&mockPolicyRepo{err: policyRepo.ErrPolicyNotFound},
		&mockStaffClient{masters: map[int64]*staffservice.Master{10: anna}, roster: []*staffservice.Master{anna}},
		nopLogger{},
	).WithTimeProvider(&fixedTimeProvider{now: at(14, 0)})

	resp, err := uc.Execute(context.Background(), Request{
		MasterID:        10,
		SalonID:         1,
		Start:           at(14, 0),
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	for _, slot := range resp.SameMaster {
		assert.False(t, slot.Start.Before(at(14, 0)), "slot %s is in the past", slot.Start)
	}
	// Сам запрошенный старт в альтернативы не попадает
	for _, slot := range resp.SameMaster {
		assert.NotEqual(t, at(14, 0), slot.Start)
	}
}

func TestExecute_SameTimeFindsFreeColleagues(t *testing.T) {
	// Боря свободен в 14:00-15:00, Вера занята, Гриша неактивен
	boris := workingMaster(11, "Борис", "парикмахер")
	vera := workingMaster(12, "Вера", "колорист")
	grisha := workingMaster(13, "Гриша", "парикмахер")
	grisha.IsActive = false

	anna := workingMaster(10, "Анна", "парикмахер")
	store := &mockCalendarStore{byMaster: map[int64][]*domain.ReservationRecord{
		10: {confirmedAt("busy", 10, at(14, 0), at(15, 0))},
		12: {confirmedAt("vera-busy", 12, at(14, 30), at(15, 30))},
	}}

	uc := NewUseCase(
		store,
		&mockPolicyRepo{err: policyRepo.ErrPolicyNotFound},
		&mockStaffClient{
			masters: map[int64]*staffservice.Master{10: anna},
			roster:  []*staffservice.Master{anna, boris, vera, grisha},
		},
		nopLogger{},
	).WithTimeProvider(&fixedTimeProvider{now: at(8, 0)})

	resp, err := uc.Execute(context.Background(), Request{
		MasterID:        10,
		SalonID:         1,
		Start:           at(14, 0),
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	require.Len(t, resp.SameTime, 1)
	assert.Equal(t, int64(11), resp.SameTime[0].MasterID)
	assert.Equal(t, "Борис", resp.SameTime[0].Name)
	assert.Equal(t, "парикмахер", resp.SameTime[0].Specialty)
}

func TestExecute_DayOffGivesNoSameMasterSlots(t *testing.T) {
	anna := workingMaster(10, "Анна", "парикмахер")
	anna.WorkingHours.Tuesday = staffservice.DaySchedule{IsWorking: false}

	uc := NewUseCase(
		&mockCalendarStore{byMaster: map[int64][]*domain.ReservationRecord{}},
		&mockPolicyRepo{err: policyRepo.ErrPolicyNotFound},
		&mockStaffClient{masters: map[int64]*staffservice.Master{10: anna}, roster: []*staffservice.Master{anna}},
		nopLogger{},
	).WithTimeProvider(&fixedTimeProvider{now: at(8, 0)})

	resp, err := uc.Execute(context.Background(), Request{
		MasterID:        10,
		SalonID:         1,
		Start:           at(14, 0),
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.SameMaster)
}

func TestExecute_MasterNotFound(t *testing.T) {
	uc := NewUseCase(
		&mockCalendarStore{byMaster: map[int64][]*domain.ReservationRecord{}},
		&mockPolicyRepo{err: policyRepo.ErrPolicyNotFound},
		&mockStaffClient{masters: map[int64]*staffservice.Master{}},
		nopLogger{},
	).WithTimeProvider(&fixedTimeProvider{now: at(8, 0)})

	_, err := uc.Execute(context.Background(), Request{
		MasterID:        99,
		SalonID:         1,
		Start:           at(14, 0),
		DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrMasterNotFound)
}

func TestExecute_SuggestLimitFromPolicy(t *testing.T) {
	policy := domain.DefaultPolicy(1)
	policy.SuggestLimit = 1

	anna := workingMaster(10, "Анна", "парикмахер")
	uc := NewUseCase(
		&mockCalendarStore{byMaster: map[int64][]*domain.ReservationRecord{}},
		&mockPolicyRepo{policy: policy},
		&mockStaffClient{masters: map[int64]*staffservice.Master{10: anna}, roster: []*staffservice.Master{anna}},
		nopLogger{},
	).WithTimeProvider(&fixedTimeProvider{now: at(8, 0)})

	resp, err := uc.Execute(context.Background(), Request{
		MasterID:        10,
		SalonID:         1,
		Start:           at(14, 0),
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Len(t, resp.SameMaster, 1)
}
