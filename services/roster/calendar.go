package roster

import (
	"fmt"
	"time"

	"rosterly/models"
)

// BuildCalendar derives the ordered list of days for one month, with the
// weekday index (0 = Sunday) and weekend flag of each day. Pure and
// deterministic for a given (year, month).
func BuildCalendar(year, month int) ([]models.CalendarDay, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: %04d-%02d", ErrInvalidMonth, year, month)
	}

	// Day zero of the next month is the last day of this one.
	last := time.Date(year, time.Month(month+1), 0, 0, 0, 0, 0, time.UTC)
	count := last.Day()
	if count < 28 || count > 31 {
		return nil, fmt.Errorf("%w: %04d-%02d has %d days", ErrInvalidMonth, year, month, count)
	}

	days := make([]models.CalendarDay, count)
	for i := range days {
		d := i + 1
		wd := int(time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC).Weekday())
		days[i] = models.CalendarDay{
			Day:       d,
			Weekday:   wd,
			IsWeekend: wd == 0 || wd == 6,
		}
	}
	return days, nil
}

// ParseMonth parses a "YYYY-MM" month key into its year and month parts.
func ParseMonth(month string) (int, int, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	return t.Year(), int(t.Month()), nil
}

// weekWindow buckets a day-of-month into its rolling 7-day window, aligned
// to the weekday of the month's first day. Used only by the part-time cap.
func weekWindow(day, firstWeekday int) int {
	return (day + firstWeekday - 1) / 7
}
