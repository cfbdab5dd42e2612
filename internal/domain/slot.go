package domain

import "time"

// TimeSlot кандидат на начало бронирования в сетке слотов
type TimeSlot struct {
	Start           time.Time
	DurationMinutes int
}

// End возвращает конец интервала слота
func (s TimeSlot) End() time.Time {
	return s.Start.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// AsInterval возвращает слот как полуоткрытый интервал [Start, End)
func (s TimeSlot) AsInterval() Interval {
	return Interval{Start: s.Start, End: s.End()}
}
