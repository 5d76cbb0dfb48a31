package billing

import "time"

// Periods начала стандартных отчётных периодов относительно момента now.
type Periods struct {
	Today time.Time
	Week  time.Time
	Month time.Time
	Year  time.Time
}

// PeriodStarts возвращает начала дня, недели (с понедельника), месяца и года в часовом поясе now.
func PeriodStarts(now time.Time) Periods {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	sinceMonday := int(today.Weekday()) - int(time.Monday)
	if sinceMonday < 0 {
		sinceMonday = 6
	}

	return Periods{
		Today: today,
		Week:  today.AddDate(0, 0, -sinceMonday),
		Month: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc),
		Year:  time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc),
	}
}

// DayRange превращает календарные даты в полуоткрытый интервал [from 00:00, to+1 00:00).
// Нулевые границы остаются нулевыми.
func DayRange(from, to time.Time) (time.Time, time.Time) {
	var start, end time.Time
	if !from.IsZero() {
		start = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	}
	if !to.IsZero() {
		end = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)
	}
	return start, end
}
