package timespan

import "time"

// RFC3339Milli is RFC 3339 with millisecond precision. Day bounds must be
// transmitted with it: the plain RFC 3339 layout drops the fractional second
// and would move an end bound from 23:59:59.999 back to 23:59:59.
const RFC3339Milli = "2006-01-02T15:04:05.999Z07:00"

// StartOfDayUTC returns UTC midnight of the calendar day the given time falls on.
// The calendar day is taken from the time's own location, so a viewer's selected
// day maps to the same UTC bounds regardless of their timezone.
func StartOfDayUTC(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// EndOfDayUTC returns the last representable millisecond (23:59:59.999 UTC) of
// the calendar day the given time falls on
func EndOfDayUTC(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), time.UTC)
}

// DayBounds normalizes a date range filter to UTC day boundaries:
// the start date becomes UTC midnight of its calendar day and the end date
// becomes UTC 23:59:59.999 of its calendar day
func DayBounds(start, end time.Time) (time.Time, time.Time) {
	return StartOfDayUTC(start), EndOfDayUTC(end)
}
