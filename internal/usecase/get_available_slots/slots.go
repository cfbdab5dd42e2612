package get_available_slots

import (
	"fmt"
	"time"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	"github.com/katiabooking/KB-BookingService/internal/integrations/staffservice"
)

// generateCandidates генерирует кандидатов на начало бронирования внутри
// рабочего окна с фиксированным шагом stepMinutes.
//
// Кандидат, чей интервал [start, start+duration) выходит за конец рабочего
// окна, невалиден независимо от занятости и не попадает в результат.
func generateCandidates(window domain.Interval, durationMinutes, stepMinutes int) []domain.TimeSlot {
	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(stepMinutes) * time.Minute

	candidates := make([]domain.TimeSlot, 0)
	for cursor := window.Start; cursor.Before(window.End); cursor = cursor.Add(step) {
		if cursor.Add(duration).After(window.End) {
			break
		}
		candidates = append(candidates, domain.TimeSlot{
			Start:           cursor,
			DurationMinutes: durationMinutes,
		})
	}

	return candidates
}

// filterFree оставляет кандидатов, чей интервал не пересекается ни с одним
// занятым интервалом. Та же проверка Overlaps используется Reservation Guard
// на пути записи - движок доступности и guard не могут разойтись в семантике
func filterFree(candidates []domain.TimeSlot, occupied []domain.Interval) []domain.TimeSlot {
	free := make([]domain.TimeSlot, 0, len(candidates))

	for _, slot := range candidates {
		interval := slot.AsInterval()

		conflicts := false
		for _, occ := range occupied {
			if interval.Overlaps(occ) {
				conflicts = true
				break
			}
		}

		if !conflicts {
			free = append(free, slot)
		}
	}

	return free
}

// dropPastSlots убирает кандидатов, начинающихся раньше now
// Применяется только когда запрошенная дата - сегодня
func dropPastSlots(candidates []domain.TimeSlot, now time.Time) []domain.TimeSlot {
	upcoming := make([]domain.TimeSlot, 0, len(candidates))
	for _, slot := range candidates {
		if !slot.Start.Before(now) {
			upcoming = append(upcoming, slot)
		}
	}
	return upcoming
}

// workingWindowForDay возвращает рабочее окно мастера на указанную дату
// как интервал. Второе значение false означает выходной день
func workingWindowForDay(master *staffservice.Master, date time.Time) (domain.Interval, bool, error) {
	schedule := scheduleForWeekday(master.WorkingHours, date.Weekday())
	if !schedule.IsWorking || schedule.StartTime == nil || schedule.EndTime == nil {
		return domain.Interval{}, false, nil
	}

	start, err := timeOnDate(date, *schedule.StartTime)
	if err != nil {
		return domain.Interval{}, false, fmt.Errorf("parse working hours start: %w", err)
	}

	end, err := timeOnDate(date, *schedule.EndTime)
	if err != nil {
		return domain.Interval{}, false, fmt.Errorf("parse working hours end: %w", err)
	}

	window, err := domain.NewInterval(start, end)
	if err != nil {
		return domain.Interval{}, false, err
	}

	return window, true, nil
}

// scheduleForWeekday возвращает расписание мастера на день недели
func scheduleForWeekday(week staffservice.WeekSchedule, weekday time.Weekday) staffservice.DaySchedule {
	switch weekday {
	case time.Monday:
		return week.Monday
	case time.Tuesday:
		return week.Tuesday
	case time.Wednesday:
		return week.Wednesday
	case time.Thursday:
		return week.Thursday
	case time.Friday:
		return week.Friday
	case time.Saturday:
		return week.Saturday
	case time.Sunday:
		return week.Sunday
	default:
		return staffservice.DaySchedule{IsWorking: false}
	}
}

// timeOnDate строит момент времени из даты и строки "HH:MM"
func timeOnDate(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse(domain.TimeFormat, hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
