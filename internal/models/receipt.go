package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TimeOfDay is the optional purchase time recorded on a receipt.
type TimeOfDay struct {
	Hour   int `json:"hour" yaml:"hour"`
	Minute int `json:"minute" yaml:"minute"`
}

// Validate checks the clock ranges.
func (t TimeOfDay) Validate() error {
	if t.Hour < 0 || t.Hour > 23 {
		return fmt.Errorf("hour %d out of range", t.Hour)
	}
	if t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("minute %d out of range", t.Minute)
	}
	return nil
}

// Receipt is one purchase made on behalf of the kitchen fund.
type Receipt struct {
	Person Person          `json:"person" yaml:"person"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
	Date   *time.Time      `json:"date,omitempty" yaml:"date,omitempty"`
	Time   *TimeOfDay      `json:"time,omitempty" yaml:"time,omitempty"`
}
