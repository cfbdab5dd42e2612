package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInterval(t *testing.T, start, end string) Interval {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)
	e, err := time.Parse(time.RFC3339, end)
	require.NoError(t, err)
	iv, err := NewInterval(s, e)
	require.NoError(t, err)
	return iv
}

func TestNewInterval_Invalid(t *testing.T) {
	now := time.Now()

	_, err := NewInterval(now, now)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewInterval(now.Add(time.Hour), now)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestInterval_Overlaps(t *testing.T) {
	base := mustInterval(t, "2026-09-15T11:30:00Z", "2026-09-15T12:00:00Z")

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{
			name:  "partial overlap from the left",
			other: mustInterval(t, "2026-09-15T11:20:00Z", "2026-09-15T11:40:00Z"),
			want:  true,
		},
		{
			name:  "partial overlap from the right",
			other: mustInterval(t, "2026-09-15T11:50:00Z", "2026-09-15T12:20:00Z"),
			want:  true,
		},
		{
			name:  "other fully inside",
			other: mustInterval(t, "2026-09-15T11:40:00Z", "2026-09-15T11:50:00Z"),
			want:  true,
		},
		{
			name:  "base fully inside other",
			other: mustInterval(t, "2026-09-15T11:00:00Z", "2026-09-15T13:00:00Z"),
			want:  true,
		},
		{
			name:  "touching on the left is not a conflict",
			other: mustInterval(t, "2026-09-15T11:00:00Z", "2026-09-15T11:30:00Z"),
			want:  false,
		},
		{
			name:  "touching on the right is not a conflict",
			other: mustInterval(t, "2026-09-15T12:00:00Z", "2026-09-15T12:30:00Z"),
			want:  false,
		},
		{
			name:  "fully disjoint",
			other: mustInterval(t, "2026-09-15T14:00:00Z", "2026-09-15T15:00:00Z"),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestInterval_Contains(t *testing.T) {
	window := mustInterval(t, "2026-09-15T09:00:00Z", "2026-09-15T19:00:00Z")

	assert.True(t, window.Contains(mustInterval(t, "2026-09-15T09:00:00Z", "2026-09-15T10:00:00Z")))
	assert.True(t, window.Contains(mustInterval(t, "2026-09-15T18:00:00Z", "2026-09-15T19:00:00Z")))
	assert.True(t, window.Contains(window))
	assert.False(t, window.Contains(mustInterval(t, "2026-09-15T08:30:00Z", "2026-09-15T09:30:00Z")))
	assert.False(t, window.Contains(mustInterval(t, "2026-09-15T18:30:00Z", "2026-09-15T19:30:00Z")))
}

func TestSubtract(t *testing.T) {
	window := mustInterval(t, "2026-09-15T09:00:00Z", "2026-09-15T13:00:00Z")

	t.Run("empty occupied returns whole window", func(t *testing.T) {
		free := Subtract(window, nil)
		require.Len(t, free, 1)
		assert.Equal(t, window, free[0])
	})

	t.Run("one booking in the middle splits the window", func(t *testing.T) {
		occ := []Interval{mustInterval(t, "2026-09-15T10:00:00Z", "2026-09-15T11:00:00Z")}
		free := Subtract(window, occ)
		require.Len(t, free, 2)
		assert.Equal(t, mustInterval(t, "2026-09-15T09:00:00Z", "2026-09-15T10:00:00Z"), free[0])
		assert.Equal(t, mustInterval(t, "2026-09-15T11:00:00Z", "2026-09-15T13:00:00Z"), free[1])
	})

	t.Run("unsorted overlapping occupied is merged before subtraction", func(t *testing.T) {
		occ := []Interval{
			mustInterval(t, "2026-09-15T11:00:00Z", "2026-09-15T12:00:00Z"),
			mustInterval(t, "2026-09-15T10:00:00Z", "2026-09-15T11:30:00Z"),
		}
		free := Subtract(window, occ)
		require.Len(t, free, 2)
		assert.Equal(t, mustInterval(t, "2026-09-15T09:00:00Z", "2026-09-15T10:00:00Z"), free[0])
		assert.Equal(t, mustInterval(t, "2026-09-15T12:00:00Z", "2026-09-15T13:00:00Z"), free[1])
	})

	t.Run("occupied covering whole window leaves nothing", func(t *testing.T) {
		occ := []Interval{mustInterval(t, "2026-09-15T08:00:00Z", "2026-09-15T14:00:00Z")}
		free := Subtract(window, occ)
		assert.Empty(t, free)
	})

	t.Run("subtracting the same occupied set again changes nothing", func(t *testing.T) {
		occ := []Interval{mustInterval(t, "2026-09-15T10:00:00Z", "2026-09-15T11:00:00Z")}
		first := Subtract(window, occ)
		for _, free := range first {
			again := Subtract(free, occ)
			require.Len(t, again, 1)
			assert.Equal(t, free, again[0])
		}
	})

	t.Run("occupied outside window is ignored", func(t *testing.T) {
		occ := []Interval{mustInterval(t, "2026-09-15T14:00:00Z", "2026-09-15T15:00:00Z")}
		free := Subtract(window, occ)
		require.Len(t, free, 1)
		assert.Equal(t, window, free[0])
	})
}

func TestMergeIntervals(t *testing.T) {
	t.Run("touching intervals are merged into one block", func(t *testing.T) {
		merged := MergeIntervals([]Interval{
			mustInterval(t, "2026-09-15T10:00:00Z", "2026-09-15T11:00:00Z"),
			mustInterval(t, "2026-09-15T11:00:00Z", "2026-09-15T12:00:00Z"),
		})
		require.Len(t, merged, 1)
		assert.Equal(t, mustInterval(t, "2026-09-15T10:00:00Z", "2026-09-15T12:00:00Z"), merged[0])
	})

	t.Run("nested interval does not extend the block", func(t *testing.T) {
		merged := MergeIntervals([]Interval{
			mustInterval(t, "2026-09-15T10:00:00Z", "2026-09-15T13:00:00Z"),
			mustInterval(t, "2026-09-15T11:00:00Z", "2026-09-15T12:00:00Z"),
		})
		require.Len(t, merged, 1)
		assert.Equal(t, mustInterval(t, "2026-09-15T10:00:00Z", "2026-09-15T13:00:00Z"), merged[0])
	})

	t.Run("disjoint intervals stay separate and sorted", func(t *testing.T) {
		merged := MergeIntervals([]Interval{
			mustInterval(t, "2026-09-15T14:00:00Z", "2026-09-15T15:00:00Z"),
			mustInterval(t, "2026-09-15T10:00:00Z", "2026-09-15T11:00:00Z"),
		})
		require.Len(t, merged, 2)
		assert.True(t, merged[0].Start.Before(merged[1].Start))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, MergeIntervals(nil))
	})
}
