// Package datekey maps instants onto local calendar days.
//
// A Key is the YYYY-MM-DD rendering of a time in its own location, so keys
// sort lexicographically in chronological order. Every ledger in pomotrack
// is indexed by Key.
package datekey

import (
	"fmt"
	"math"
	"time"
)

const layout = "2006-01-02"

const day = 24 * time.Hour

// Key identifies one local calendar day.
type Key string

// FromTime returns the key of the calendar day t falls on in t's location.
func FromTime(t time.Time) Key {
	return Key(t.Format(layout))
}

// Today returns the key for the current local day.
func Today() Key {
	return FromTime(time.Now())
}

// Parse validates s and returns it as a Key.
func Parse(s string) (Key, error) {
	if _, err := time.Parse(layout, s); err != nil {
		return "", fmt.Errorf("parse date key %q: %w", s, err)
	}
	return Key(s), nil
}

func (k Key) String() string { return string(k) }

// Valid reports whether k is a well-formed date.
func (k Key) Valid() bool {
	_, err := time.Parse(layout, string(k))
	return err == nil
}

// Time returns local midnight of the day. Invalid keys yield the zero time.
func (k Key) Time() time.Time {
	t, err := time.ParseInLocation(layout, string(k), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// utc anchors the key at UTC midnight, where every day is exactly 24h long.
func (k Key) utc() time.Time {
	t, _ := time.Parse(layout, string(k))
	return t
}

// Year returns the calendar year of the key, or 0 if the key is invalid.
func (k Key) Year() int {
	return k.utc().Year()
}

// Weekday returns the calendar weekday of the key.
func (k Key) Weekday() time.Weekday {
	return k.utc().Weekday()
}

// AddDays returns the key n calendar days after k.
func (k Key) AddDays(n int) Key {
	return Key(k.utc().AddDate(0, 0, n).Format(layout))
}

// DaysBetween returns floor((b-a) / 24h) over absolute instants. Partial
// negative days round toward negative infinity.
func DaysBetween(a, b time.Time) int {
	return int(math.Floor(float64(b.Sub(a)) / float64(day)))
}

// KeyDaysBetween is the calendar distance from a to b.
func KeyDaysBetween(a, b Key) int {
	return DaysBetween(a.utc(), b.utc())
}

// DaysBetweenISO parses two timestamps and applies DaysBetween.
func DaysBetweenISO(startISO, endISO string) (int, error) {
	start, err := ParseTimestamp(startISO)
	if err != nil {
		return 0, err
	}
	end, err := ParseTimestamp(endISO)
	if err != nil {
		return 0, err
	}
	return DaysBetween(start, end), nil
}

// ParseTimestamp accepts RFC 3339 (with or without fractional seconds) and
// zone-less local timestamps.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q: unrecognised format", s)
}

// Midnight returns the start of t's calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatDDMM renders t as DD/MM.
func FormatDDMM(t time.Time) string {
	return t.Format("02/01")
}
