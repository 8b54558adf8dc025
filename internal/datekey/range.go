package datekey

import "time"

// Period names accepted by PeriodRange.
const (
	PeriodPast30    = "past-30"
	PeriodThisMonth = "this-month"
	PeriodLastMonth = "last-month"
	PeriodToday     = "today"
)

// Range is an inclusive span of calendar days.
type Range struct {
	Start Key
	End   Key
}

// NewRange builds a range from the calendar days of two instants.
func NewRange(start, end time.Time) Range {
	return Range{Start: FromTime(start), End: FromTime(end)}
}

// Each calls fn for every day in the range, oldest first. An inverted range
// visits nothing, as does one with a malformed bound.
func (r Range) Each(fn func(Key)) {
	if !r.Start.Valid() || !r.End.Valid() {
		return
	}
	for k := r.Start; k <= r.End; k = k.AddDays(1) {
		fn(k)
	}
}

// Keys lists every day in the range.
func (r Range) Keys() []Key {
	var keys []Key
	r.Each(func(k Key) { keys = append(keys, k) })
	return keys
}

// Contains reports whether k lies within the range.
func (r Range) Contains(k Key) bool {
	return k >= r.Start && k <= r.End
}

// Days is the number of calendar days covered.
func (r Range) Days() int {
	if r.End < r.Start {
		return 0
	}
	return KeyDaysBetween(r.Start, r.End) + 1
}

// StartTime is local midnight of the first day.
func (r Range) StartTime() time.Time { return r.Start.Time() }

// EndTime is the last instant of the final day.
func (r Range) EndTime() time.Time {
	return r.End.AddDays(1).Time().Add(-time.Nanosecond)
}

// MonthRange returns the whole calendar month offset months away from now's.
func MonthRange(offset int, now time.Time) Range {
	first := time.Date(now.Year(), now.Month()+time.Month(offset), 1, 0, 0, 0, 0, now.Location())
	last := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, now.Location())
	return NewRange(first, last)
}

// MonthToDate runs from the first of now's month through today.
func MonthToDate(now time.Time) Range {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return NewRange(first, now)
}

// Trailing covers the n days ending today.
func Trailing(n int, now time.Time) Range {
	end := FromTime(now)
	return Range{Start: end.AddDays(-(n - 1)), End: end}
}

// PeriodRange resolves a named reporting period. Unknown names mean today.
func PeriodRange(period string, now time.Time) Range {
	switch period {
	case PeriodPast30:
		return Trailing(30, now)
	case PeriodThisMonth:
		return MonthToDate(now)
	case PeriodLastMonth:
		return MonthRange(-1, now)
	default:
		return NewRange(now, now)
	}
}

// YearRange spans 1 January to 31 December of year.
func YearRange(year int) Range {
	return NewRange(
		time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local),
	)
}
