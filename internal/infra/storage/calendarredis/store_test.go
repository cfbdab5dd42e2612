package calendarredis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	storage "github.com/katiabooking/KB-BookingService/internal/infra/storage/calendar"
)

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 15, hour, min, 0, 0, time.UTC)
}

func newTestStore(t *testing.T, clock TimeProvider) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStoreWithTimeProvider(client, clock)
}

func record(id string, status domain.ReservationStatus, expiresAt *time.Time) *domain.ReservationRecord {
	return &domain.ReservationRecord{
		ID:        id,
		MasterID:  10,
		SalonID:   1,
		ClientID:  100,
		Interval:  domain.Interval{Start: at(14, 0), End: at(15, 0)},
		Status:    status,
		ExpiresAt: expiresAt,
	}
}

func TestStore_AppendAndGet(t *testing.T) {
	clock := &fixedTimeProvider{now: at(12, 0)}
	store := newTestStore(t, clock)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, 10, at(14, 0), record("r1", domain.StatusConfirmed, nil)))

	got, err := store.Get(ctx, 10, at(14, 0))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, domain.StatusConfirmed, got[0].Status)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestStore_GetEmptyCalendar(t *testing.T) {
	clock := &fixedTimeProvider{now: at(12, 0)}
	store := newTestStore(t, clock)

	got, err := store.Get(context.Background(), 10, at(14, 0))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_GetFiltersExpiredHolds(t *testing.T) {
	clock := &fixedTimeProvider{now: at(12, 0)}
	store := newTestStore(t, clock)
	ctx := context.Background()

	live := clock.now.Add(5 * time.Minute)
	expired := clock.now.Add(-5 * time.Minute)
	require.NoError(t, store.Append(ctx, 10, at(14, 0), record("live", domain.StatusTempHold, &live)))
	require.NoError(t, store.Append(ctx, 10, at(14, 0), record("dead", domain.StatusTempHold, &expired)))

	got, err := store.Get(ctx, 10, at(14, 0))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "live", got[0].ID)
}

func TestStore_UpdateCompactsExpiredHolds(t *testing.T) {
	clock := &fixedTimeProvider{now: at(12, 0)}
	store := newTestStore(t, clock)
	ctx := context.Background()

	expired := clock.now.Add(-5 * time.Minute)
	require.NoError(t, store.Append(ctx, 10, at(14, 0), record("dead", domain.StatusTempHold, &expired)))

	var seen int
	err := store.Update(ctx, 10, at(14, 0), func(recs []*domain.ReservationRecord) ([]*domain.ReservationRecord, error) {
		seen = len(recs)
		return recs, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, seen)
}

func TestStore_UpdatePreservesCreatedAt(t *testing.T) {
	clock := &fixedTimeProvider{now: at(12, 0)}
	store := newTestStore(t, clock)
	ctx := context.Background()

	rec := record("r1", domain.StatusConfirmed, nil)
	require.NoError(t, store.Append(ctx, 10, at(14, 0), rec))
	createdAt := rec.CreatedAt

	clock.now = at(12, 30)
	err := store.Update(ctx, 10, at(14, 0), func(recs []*domain.ReservationRecord) ([]*domain.ReservationRecord, error) {
		return recs, nil
	})
	require.NoError(t, err)

	got, err := store.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(createdAt))
	assert.True(t, got.UpdatedAt.Equal(at(12, 30)))
}

func TestStore_UpdateErrorLeavesCalendarUntouched(t *testing.T) {
	clock := &fixedTimeProvider{now: at(12, 0)}
	store := newTestStore(t, clock)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, 10, at(14, 0), record("r1", domain.StatusConfirmed, nil)))

	boom := errors.New("boom")
	err := store.Update(ctx, 10, at(14, 0), func(recs []*domain.ReservationRecord) ([]*domain.ReservationRecord, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Get(ctx, 10, at(14, 0))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStore_UpdateMutatesExistingRecord(t *testing.T) {
	clock := &fixedTimeProvider{now: at(12, 0)}
	store := newTestStore(t, clock)
	ctx := context.Background()

	live := clock.now.Add(10 * time.Minute)
	require.NoError(t, store.Append(ctx, 10, at(14, 0), record("h1", domain.StatusTempHold, &live)))

	err := store.Update(ctx, 10, at(14, 0), func(recs []*domain.ReservationRecord) ([]*domain.ReservationRecord, error) {
		require.Len(t, recs, 1)
		recs[0].Status = domain.StatusConfirmed
		recs[0].ExpiresAt = nil
		return recs, nil
	})
	require.NoError(t, err)

	got, err := store.GetByID(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.Nil(t, got.ExpiresAt)
}

func TestStore_GetByID(t *testing.T) {
	clock := &fixedTimeProvider{now: at(12, 0)}
	store := newTestStore(t, clock)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, 10, at(14, 0), record("r1", domain.StatusConfirmed, nil)))

	got, err := store.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ID)
	assert.Equal(t, int64(10), got.MasterID)
	assert.Equal(t, at(14, 0), got.Interval.Start)

	_, err = store.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestStore_GetByIDStaleIndex(t *testing.T) {
	clock := &fixedTimeProvider{now: at(12, 0)}
	store := newTestStore(t, clock)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, 10, at(14, 0), record("r1", domain.StatusConfirmed, nil)))

	// Replace вычищает запись из календаря, но индекс остается
	require.NoError(t, store.Replace(ctx, 10, at(14, 0), []*domain.ReservationRecord{}))

	_, err := store.GetByID(ctx, "r1")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestStore_CalendarsAreIsolatedByMasterAndDate(t *testing.T) {
	clock := &fixedTimeProvider{now: at(12, 0)}
	store := newTestStore(t, clock)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, 10, at(14, 0), record("r1", domain.StatusConfirmed, nil)))

	other := record("r2", domain.StatusConfirmed, nil)
	other.MasterID = 20
	require.NoError(t, store.Append(ctx, 20, at(14, 0), other))

	got, err := store.Get(ctx, 10, at(14, 0))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)

	otherDay := time.Date(2026, 9, 16, 14, 0, 0, 0, time.UTC)
	got, err = store.Get(ctx, 10, otherDay)
	require.NoError(t, err)
	assert.Empty(t, got)
}
