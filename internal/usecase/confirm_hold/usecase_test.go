package confirm_hold

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	"github.com/katiabooking/KB-BookingService/internal/infra/storage/calendarmem"
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

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 15, hour, min, 0, 0, time.UTC)
}

func seedHold(t *testing.T, store *calendarmem.Store, id string, clientID int64, expiresAt time.Time) *domain.ReservationRecord {
	t.Helper()
	rec := &domain.ReservationRecord{
		ID:        id,
		MasterID:  10,
		SalonID:   1,
		ClientID:  clientID,
		Interval:  domain.Interval{Start: at(14, 0), End: at(15, 0)},
		Status:    domain.StatusTempHold,
		ExpiresAt: &expiresAt,
	}
	require.NoError(t, store.Append(context.Background(), rec.MasterID, rec.Interval.Start, rec))
	return rec
}

func TestExecute_ConfirmsLiveHold(t *testing.T) {
	clock := &fixedTimeProvider{now: at(12, 0)}
	store := calendarmem.NewStoreWithTimeProvider(clock)
	uc := NewUseCase(store, nopLogger{}).WithTimeProvider(clock)

	seedHold(t, store, "h1", 100, clock.now.Add(5*time.Minute))

	resp, err := uc.Execute(context.Background(), Request{
		HoldID:    "h1",
		ClientID:  100,
		BookingID: ptr.Ptr(int64(555)),
		ChargeRef: ptr.Ptr("charge-abc"),
	})
	require.NoError(t, err)

	rec := resp.Record
	assert.Equal(t, domain.StatusConfirmed, rec.Status)
	assert.Nil(t, rec.ExpiresAt)
	require.NotNil(t, rec.BookingID)
	assert.Equal(t, int64(555), *rec.BookingID)
	require.NotNil(t, rec.ChargeRef)
	assert.Equal(t, "charge-abc", *rec.ChargeRef)

	// Запись в хранилище тоже подтверждена
	stored, err := store.GetByID(context.Background(), "h1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
	assert.Nil(t, stored.ExpiresAt)
}

func TestExecute_ExpiredHold(t *testing.T) {
	clock := &fixedTimeProvider{now: at(12, 0)}
	store := calendarmem.NewStoreWithTimeProvider(clock)
	uc := NewUseCase(store, nopLogger{}).WithTimeProvider(clock)

	seedHold(t, store, "h1", 100, clock.now.Add(5*time.Minute))

	// TTL истекает между чтением и подтверждением
	clock.now = clock.now.Add(10 * time.Minute)

	_, err := uc.Execute(context.Background(), Request{HoldID: "h1", ClientID: 100})
	assert.ErrorIs(t, err, ErrHoldExpired)
}

func TestExecute_HoldNotFound(t *testing.T) {
	clock := &fixedTimeProvider{now: at(12, 0)}
	store := calendarmem.NewStoreWithTimeProvider(clock)
	uc := NewUseCase(store, nopLogger{}).WithTimeProvider(clock)

	_, err := uc.Execute(context.Background(), Request{HoldID: "missing", ClientID: 100})
	assert.ErrorIs(t, err, ErrHoldNotFound)
}

func TestExecute_NotAHold(t *testing.T) {
	clock := &fixedTimeProvider{now: at(12, 0)}
	store := calendarmem.NewStoreWithTimeProvider(clock)
	uc := NewUseCase(store, nopLogger{}).WithTimeProvider(clock)

	rec := &domain.ReservationRecord{
		ID:       "r1",
		MasterID: 10,
		SalonID:  1,
		ClientID: 100,
		Interval: domain.Interval{Start: at(14, 0), End: at(15, 0)},
		Status:   domain.StatusConfirmed,
	}
	require.NoError(t, store.Append(context.Background(), rec.MasterID, rec.Interval.Start, rec))

	_, err := uc.Execute(context.Background(), Request{HoldID: "r1", ClientID: 100})
	assert.ErrorIs(t, err, ErrNotAHold)
}

func TestExecute_AccessDenied(t *testing.T) {
	clock := &fixedTimeProvider{now: at(12, 0)}
	store := calendarmem.NewStoreWithTimeProvider(clock)
	uc := NewUseCase(store, nopLogger{}).WithTimeProvider(clock)

	seedHold(t, store, "h1", 100, clock.now.Add(5*time.Minute))

	_, err := uc.Execute(context.Background(), Request{HoldID: "h1", ClientID: 200})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_Validation(t *testing.T) {
	clock := &fixedTimeProvider{now: at(12, 0)}
	uc := NewUseCase(calendarmem.NewStoreWithTimeProvider(clock), nopLogger{}).WithTimeProvider(clock)

	_, err := uc.Execute(context.Background(), Request{HoldID: "", ClientID: 100})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), Request{HoldID: "h1", ClientID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
