package allocation

import (
	"errors"
	"fmt"
	"time"

	"fjacquet/kitchen-account/internal/dateutils"
	"fjacquet/kitchen-account/internal/models"
)

// Sentinels for errors.Is. Both are division-by-zero conditions: the engine
// refuses them instead of producing infinite or NaN shares.
var (
	ErrInvalidPeriod = errors.New("invalid period")
	ErrUnoccupiedDay = errors.New("unoccupied day")
)

// InvalidPeriodError is returned when the full period does not span at least one day.
type InvalidPeriodError struct {
	Period models.Interval
}

func (e *InvalidPeriodError) Error() string {
	return fmt.Sprintf("invalid period %s: end must be after start", e.Period)
}

func (e *InvalidPeriodError) Unwrap() error {
	return ErrInvalidPeriod
}

// UnoccupiedDayError is returned when a day of the period has no resident to carry its cost.
type UnoccupiedDayError struct {
	Day time.Time
}

func (e *UnoccupiedDayError) Error() string {
	return fmt.Sprintf("no resident on %s: cannot allocate its share of spending", dateutils.ToISODate(e.Day))
}

func (e *UnoccupiedDayError) Unwrap() error {
	return ErrUnoccupiedDay
}
