package models

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseWhole converts a cell holding a whole number. Spreadsheet exports often
// render integers as floats ("12.0"), which are accepted; "12.5" is not.
func ParseWhole(cell string) (int, error) {
	value := strings.TrimSpace(cell)
	if value == "" {
		return 0, errors.New("empty value")
	}
	dec, err := decimal.NewFromString(value)
	if err != nil {
		return 0, fmt.Errorf("'%s' is not a number", cell)
	}
	if !dec.IsInteger() {
		return 0, fmt.Errorf("'%s' is not a whole number", cell)
	}
	if dec.LessThan(minWhole) || dec.GreaterThan(maxWhole) {
		return 0, fmt.Errorf("'%s' is out of range", cell)
	}
	return int(dec.IntPart()), nil
}

var (
	minWhole = decimal.NewFromInt(math.MinInt)
	maxWhole = decimal.NewFromInt(math.MaxInt)
)
