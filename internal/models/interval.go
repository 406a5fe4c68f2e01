package models

import (
	"fmt"
	"time"

	"fjacquet/kitchen-account/internal/dateutils"
)

// Interval is an inclusive range of calendar dates.
type Interval struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// NewInterval normalizes both bounds to calendar dates.
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: dateutils.Normalize(start), End: dateutils.Normalize(end)}
}

// Contains reports whether Start <= day <= End.
func (iv Interval) Contains(day time.Time) bool {
	day = dateutils.Normalize(day)
	return !day.Before(dateutils.Normalize(iv.Start)) && !day.After(dateutils.Normalize(iv.End))
}

// Days returns End - Start in whole days.
func (iv Interval) Days() int {
	return dateutils.DaysBetween(iv.Start, iv.End)
}

// Validate fails when Start is after End.
func (iv Interval) Validate() error {
	if dateutils.CompareDates(iv.Start, iv.End) > 0 {
		return fmt.Errorf("interval start %s is after end %s",
			dateutils.ToISODate(iv.Start), dateutils.ToISODate(iv.End))
	}
	return nil
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s..%s", dateutils.ToISODate(iv.Start), dateutils.ToISODate(iv.End))
}
