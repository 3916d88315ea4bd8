package sensor

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// DateRange включающий интервал календарных дат. Значимы только год, месяц и день.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: dateOf(start), End: dateOf(end)}
	if dayKey(r.End) < dayKey(r.Start) {
		return DateRange{}, fmt.Errorf("%w: %s is before %s", ErrInvalidRange,
			r.End.Format(DateLayout), r.Start.Format(DateLayout))
	}
	return r, nil
}

// WeekOf неделя с понедельника по воскресенье, содержащая d.
func WeekOf(d time.Time) DateRange {
	day := dateOf(d)
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return DateRange{Start: start, End: start.AddDate(0, 0, 6)}
}

// MonthOf с первого по последний день месяца, содержащего d.
func MonthOf(d time.Time) DateRange {
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	return DateRange{Start: start, End: start.AddDate(0, 1, -1)}
}

func RangeFor(p Period, d time.Time) (DateRange, error) {
	switch p {
	case PeriodWeek:
		return WeekOf(d), nil
	case PeriodMonth:
		return MonthOf(d), nil
	default:
		return DateRange{}, fmt.Errorf("%w: unknown period %q", ErrInvalidRange, p)
	}
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	return t, nil
}

// Contains сообщает, попадает ли момент t, переведённый в loc, в интервал.
func (r DateRange) Contains(t time.Time, loc *time.Location) bool {
	k := dayKey(t.In(loc))
	return k >= dayKey(r.Start) && k <= dayKey(r.End)
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
