package reserve_slot

import (
	"time"

	"github.com/katiabooking/KB-BookingService/internal/domain"
	"github.com/katiabooking/KB-BookingService/internal/integrations/staffservice"
)

// workingWindowForDay возвращает рабочее окно мастера на заданную дату.
// Если день нерабочий, возвращает ok=false.
func workingWindowForDay(master *staffservice.Master, date time.Time) (domain.Interval, bool, error) {
	day := scheduleForWeekday(master.WorkingHours, date.Weekday())
	if !day.IsWorking || day.StartTime == nil || day.EndTime == nil {
		return domain.Interval{}, false, nil
	}

	start, err := timeOnDate(date, *day.StartTime)
	if err != nil {
		return domain.Interval{}, false, err
	}
	end, err := timeOnDate(date, *day.EndTime)
	if err != nil {
		return domain.Interval{}, false, err
	}

	window, err := domain.NewInterval(start, end)
	if err != nil {
		return domain.Interval{}, false, err
	}

	return window, true, nil
}

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

// timeOnDate собирает момент времени из даты и строки формата "15:04"
func timeOnDate(date time.Time, hhmm string) (time.Time, error) {
	parsed, err := time.Parse(domain.TimeFormat, hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		date.Location(),
	), nil
}
