package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidInterval возвращается для интервала с start >= end
var ErrInvalidInterval = errors.New("invalid interval: start must be before end")

// Interval полуоткрытый временной интервал [Start, End)
// Неизменяемый value type: все операции возвращают новые значения
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval создает интервал с проверкой инварианта Start < End
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, fmt.Errorf("%w: [%s, %s)", ErrInvalidInterval,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// Duration возвращает длительность интервала
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// IsZero сообщает, что интервал не задан
func (i Interval) IsZero() bool {
	return i.Start.IsZero() && i.End.IsZero()
}

// Overlaps проверяет пересечение двух интервалов
// Полуоткрытая семантика: соприкасающиеся границы (a.End == b.Start) пересечением НЕ считаются
//
// Примеры:
// - [11:30, 12:00) и [11:20, 11:40) → пересекаются (11:30-11:40)
// - [11:30, 12:00) и [11:00, 11:30) → не пересекаются (граничат)
// - [11:30, 12:00) и [12:00, 12:30) → не пересекаются (граничат)
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains проверяет, что other целиком лежит внутри интервала
func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// Subtract вычитает занятые интервалы из окна и возвращает свободные участки
// в хронологическом порядке.
//
// Входной occupied может быть неотсортированным и содержать пересекающиеся
// интервалы: перед вычитанием он сортируется и сливается, поэтому двойного
// вычитания и отрицательных по длине результатов не бывает.
func Subtract(window Interval, occupied []Interval) []Interval {
	merged := MergeIntervals(occupied)

	free := make([]Interval, 0, len(merged)+1)
	cursor := window.Start

	for _, occ := range merged {
		if !occ.Overlaps(window) {
			continue
		}
		if occ.Start.After(cursor) {
			free = append(free, Interval{Start: cursor, End: occ.Start})
		}
		if occ.End.After(cursor) {
			cursor = occ.End
		}
	}

	if cursor.Before(window.End) {
		free = append(free, Interval{Start: cursor, End: window.End})
	}

	return free
}

// MergeIntervals сортирует интервалы по началу и сливает пересекающиеся
// и соприкасающиеся в непрерывные участки
func MergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := make([]Interval, 0, len(sorted))
	current := sorted[0]

	for _, next := range sorted[1:] {
		// Соприкасающиеся участки тоже сливаем: для вычитания это один занятый блок
		if !next.Start.After(current.End) {
			if next.End.After(current.End) {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}

	return append(merged, current)
}
