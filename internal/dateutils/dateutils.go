// Package dateutils provides the calendar-date helpers used by the workbook readers
// and the allocation engine. A calendar date is a time.Time at midnight UTC.
package dateutils

import (
	"fmt"
	"time"
)

// Common date layouts
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
)

// Day is the length of one calendar day.
const Day = 24 * time.Hour

// DateFromParts builds a calendar date and rejects values time.Date would normalize,
// such as February 30th or month 13.
func DateFromParts(year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range", month)
	}
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("day %d out of range", day)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("invalid date %04d-%02d-%02d", year, month, day)
	}
	return t, nil
}

// MustDate is DateFromParts for literals known to be valid. It panics otherwise.
func MustDate(year, month, day int) time.Time {
	t, err := DateFromParts(year, month, day)
	if err != nil {
		panic(err)
	}
	return t
}

// Normalize strips the time of day and location, keeping the calendar date as seen in t's location.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from start to end (negative when end is before start).
// Days are counted on Unix seconds, so spans beyond time.Duration's range of about 292 years stay exact.
func DaysBetween(start, end time.Time) int {
	return int((Normalize(end).Unix() - Normalize(start).Unix()) / int64(Day/time.Second))
}

// AddDays moves a calendar date by n days.
func AddDays(date time.Time, n int) time.Time {
	return Normalize(date).AddDate(0, 0, n)
}

// CompareDates compares two dates ignoring the time of day and returns:
//
//	-1 if date1 is before date2
//	 0 if date1 is equal to date2
//	 1 if date1 is after date2
func CompareDates(date1, date2 time.Time) int {
	date1 = Normalize(date1)
	date2 = Normalize(date2)

	switch {
	case date1.Before(date2):
		return -1
	case date1.After(date2):
		return 1
	default:
		return 0
	}
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}
