package util

import "time"

// CalculateActualDate returns the actual date for a target day in a given month,
// handling months with fewer days (e.g., day 31 in February returns Feb 28/29)
func CalculateActualDate(year int, month time.Month, targetDay int) time.Time {
	// Get last day of month by going to day 0 of next month
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	actualDay := targetDay
	if actualDay > lastDay {
		actualDay = lastDay
	}

	return time.Date(year, month, actualDay, 0, 0, 0, 0, time.UTC)
}

// AddMonths adds n calendar months to t in UTC, clamping the day to the end
// of the target month instead of overflowing (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	t = t.UTC()
	total := int(t.Month()) - 1 + n
	year := t.Year() + total/12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}
	day := CalculateActualDate(year, time.Month(month+1), t.Day())
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// MonthsUntil returns the number of calendar months from `from` until `to`,
// rounded up so a partial month counts as one. It returns 0 once `to` has passed.
func MonthsUntil(from, to time.Time) int {
	from, to = from.UTC(), to.UTC()
	if !from.Before(to) {
		return 0
	}

	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if AddMonths(from, months).Before(to) {
		months++
	}
	for months > 1 && !AddMonths(from, months-1).Before(to) {
		months--
	}
	return months
}
