package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func holdRecord(id string, iv Interval, expiresAt time.Time) *ReservationRecord {
	return &ReservationRecord{
		ID:        id,
		MasterID:  10,
		SalonID:   1,
		ClientID:  100,
		Interval:  iv,
		Status:    StatusTempHold,
		ExpiresAt: &expiresAt,
	}
}

func confirmedRecord(id string, iv Interval) *ReservationRecord {
	return &ReservationRecord{
		ID:       id,
		MasterID: 10,
		SalonID:  1,
		ClientID: 100,
		Interval: iv,
		Status:   StatusConfirmed,
	}
}

func TestReservationRecord_IsOccupying(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	iv := mustInterval(t, "2026-09-15T14:00:00Z", "2026-09-15T15:00:00Z")

	t.Run("confirmed always occupies", func(t *testing.T) {
		assert.True(t, confirmedRecord("r1", iv).IsOccupying(now))
	})

	t.Run("live hold occupies", func(t *testing.T) {
		rec := holdRecord("h1", iv, now.Add(5*time.Minute))
		assert.True(t, rec.IsOccupying(now))
	})

	t.Run("expired hold does not occupy", func(t *testing.T) {
		rec := holdRecord("h1", iv, now.Add(-time.Second))
		assert.False(t, rec.IsOccupying(now))
		assert.True(t, rec.IsExpiredHold(now))
	})

	t.Run("hold expiring exactly now does not occupy", func(t *testing.T) {
		rec := holdRecord("h1", iv, now)
		assert.False(t, rec.IsOccupying(now))
		assert.True(t, rec.IsExpiredHold(now))
	})

	t.Run("cancelled never occupies", func(t *testing.T) {
		rec := confirmedRecord("r1", iv)
		rec.Status = StatusCancelled
		assert.False(t, rec.IsOccupying(now))
	})
}

func TestReservationRecord_Transitions(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	iv := mustInterval(t, "2026-09-15T14:00:00Z", "2026-09-15T15:00:00Z")

	t.Run("live hold can be confirmed and cancelled", func(t *testing.T) {
		rec := holdRecord("h1", iv, now.Add(time.Minute))
		assert.True(t, rec.CanBeConfirmed(now))
		assert.True(t, rec.CanBeCancelled(now))
	})

	t.Run("expired hold can be neither", func(t *testing.T) {
		rec := holdRecord("h1", iv, now.Add(-time.Minute))
		assert.False(t, rec.CanBeConfirmed(now))
		assert.False(t, rec.CanBeCancelled(now))
	})

	t.Run("confirmed cannot be confirmed again but can be cancelled", func(t *testing.T) {
		rec := confirmedRecord("r1", iv)
		assert.False(t, rec.CanBeConfirmed(now))
		assert.True(t, rec.CanBeCancelled(now))
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		rec := confirmedRecord("r1", iv)
		rec.Status = StatusCancelled
		assert.False(t, rec.CanBeConfirmed(now))
		assert.False(t, rec.CanBeCancelled(now))
	})
}

func TestFindConflict(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	records := []*ReservationRecord{
		confirmedRecord("r1", mustInterval(t, "2026-09-15T14:00:00Z", "2026-09-15T15:00:00Z")),
		holdRecord("h1", mustInterval(t, "2026-09-15T16:00:00Z", "2026-09-15T17:00:00Z"), now.Add(-time.Minute)),
		holdRecord("h2", mustInterval(t, "2026-09-15T18:00:00Z", "2026-09-15T19:00:00Z"), now.Add(10*time.Minute)),
	}

	t.Run("confirmed booking conflicts", func(t *testing.T) {
		conflict := FindConflict(records, mustInterval(t, "2026-09-15T14:30:00Z", "2026-09-15T15:30:00Z"), now)
		require.NotNil(t, conflict)
		assert.Equal(t, "r1", conflict.ID)
	})

	t.Run("expired hold does not conflict", func(t *testing.T) {
		conflict := FindConflict(records, mustInterval(t, "2026-09-15T16:00:00Z", "2026-09-15T17:00:00Z"), now)
		assert.Nil(t, conflict)
	})

	t.Run("live hold conflicts", func(t *testing.T) {
		conflict := FindConflict(records, mustInterval(t, "2026-09-15T18:30:00Z", "2026-09-15T19:30:00Z"), now)
		require.NotNil(t, conflict)
		assert.Equal(t, "h2", conflict.ID)
	})

	t.Run("touching interval does not conflict", func(t *testing.T) {
		conflict := FindConflict(records, mustInterval(t, "2026-09-15T15:00:00Z", "2026-09-15T16:00:00Z"), now)
		assert.Nil(t, conflict)
	})
}

func TestOccupiedIntervals(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	records := []*ReservationRecord{
		confirmedRecord("r1", mustInterval(t, "2026-09-15T14:00:00Z", "2026-09-15T15:00:00Z")),
		holdRecord("h1", mustInterval(t, "2026-09-15T16:00:00Z", "2026-09-15T17:00:00Z"), now.Add(-time.Minute)),
		holdRecord("h2", mustInterval(t, "2026-09-15T18:00:00Z", "2026-09-15T19:00:00Z"), now.Add(10*time.Minute)),
	}

	occupied := OccupiedIntervals(records, now)
	require.Len(t, occupied, 2)
	assert.Equal(t, mustInterval(t, "2026-09-15T14:00:00Z", "2026-09-15T15:00:00Z"), occupied[0])
	assert.Equal(t, mustInterval(t, "2026-09-15T18:00:00Z", "2026-09-15T19:00:00Z"), occupied[1])
}
