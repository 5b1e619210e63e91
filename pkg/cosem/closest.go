package cosem

import "time"

// searchYears bounds the forward search for dates with an unspecified year.
// The Gregorian calendar repeats weekdays and leap years every 400 years.
const searchYears = 400

// ClosestFutureDate returns the first calendar day on or after from that
// satisfies every specified field of d. The result is midnight in from's
// location. It returns false when no such day exists, e.g. a fixed year in
// the past or February 29 in a fixed non-leap year.
//
// Month wildcards for daylight saving begin/end are treated as unspecified.
func (d Date) ClosestFutureDate(from time.Time) (time.Time, bool) {
	loc := from.Location()
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)

	firstYear, lastYear := start.Year(), start.Year()+searchYears
	if d.Year != YearNotSpecified {
		if int(d.Year) < start.Year() {
			return time.Time{}, false
		}
		firstYear, lastYear = int(d.Year), int(d.Year)
	}

	for year := firstYear; year <= lastYear; year++ {
		firstMonth := time.January
		if year == start.Year() {
			firstMonth = start.Month()
		}

		for month := firstMonth; month <= time.December; month++ {
			if !d.matchesMonth(month) {
				continue
			}

			firstDay := 1
			if year == start.Year() && month == start.Month() {
				firstDay = start.Day()
			}

			if day, ok := d.dayIn(year, month, firstDay); ok {
				return time.Date(year, month, day, 0, 0, 0, 0, loc), true
			}
		}
	}

	return time.Time{}, false
}

// ClosestPastDate is not implemented and always reports no match.
// TODO: define the backward search together with the schedule owners before
// relying on it; callers must treat false as "unknown", not "never".
func (d Date) ClosestPastDate(from time.Time) (time.Time, bool) {
	return time.Time{}, false
}

// Matches reports whether the calendar day of t satisfies d.
func (d Date) Matches(t time.Time) bool {
	if d.Year != YearNotSpecified && int(d.Year) != t.Year() {
		return false
	}
	if !d.matchesMonth(t.Month()) {
		return false
	}
	day, ok := d.dayIn(t.Year(), t.Month(), t.Day())
	return ok && day == t.Day()
}

func (d Date) matchesMonth(m time.Month) bool {
	switch d.Month {
	case MonthNotSpecified, MonthDSTBegin, MonthDSTEnd:
		return true
	default:
		return time.Month(d.Month) == m
	}
}

// dayIn returns the first day >= from in the given month that satisfies the
// day-of-month and day-of-week fields.
func (d Date) dayIn(year int, month time.Month, from int) (int, bool) {
	last := daysIn(year, month)

	switch d.DayOfMonth {
	case DayNotSpecified:
		for day := from; day <= last; day++ {
			if d.matchesWeekday(year, month, day) {
				return day, true
			}
		}
		return 0, false
	case DayLast:
		return d.pinnedDay(year, month, last, from)
	case DaySecondLast:
		return d.pinnedDay(year, month, last-1, from)
	default:
		if d.DayOfMonth < 1 || int(d.DayOfMonth) > last {
			return 0, false
		}
		return d.pinnedDay(year, month, int(d.DayOfMonth), from)
	}
}

func (d Date) pinnedDay(year int, month time.Month, day, from int) (int, bool) {
	if day < from || !d.matchesWeekday(year, month, day) {
		return 0, false
	}
	return day, true
}

func (d Date) matchesWeekday(year int, month time.Month, day int) bool {
	if d.DayOfWeek == DayOfWeekNotSpecified {
		return true
	}
	if d.DayOfWeek < 1 || d.DayOfWeek > 7 {
		return false
	}
	wd := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()
	return dayOfWeek(wd) == d.DayOfWeek
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
