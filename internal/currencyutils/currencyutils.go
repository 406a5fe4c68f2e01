// Package currencyutils parses and formats the monetary amounts found in kitchen
// account sheets.
package currencyutils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrEmptyAmount is returned by ParseAmount for blank cells.
var ErrEmptyAmount = errors.New("empty amount")

var currencyMarkers = regexp.MustCompile(`(?i)dkk|chf|eur|kr\.?|[€$£\s\x{00a0}]`)

// ParseAmount parses a cell into a decimal amount. Blank cells return ErrEmptyAmount
// so callers decide whether blank means zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, ErrEmptyAmount
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount converts the formats spreadsheets produce into one that
// decimal.NewFromString accepts. Handles patterns like "kr 1.234,56", "1 234,56",
// "1'234.56", "1,234.56" and "DKK 12,5".
func StandardizeAmount(amountStr string) string {
	amountStr = currencyMarkers.ReplaceAllString(amountStr, "")

	// Remove apostrophes used as thousand separators (1'234.56)
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	switch {
	case strings.Contains(amountStr, ",") && strings.Contains(amountStr, "."):
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// European format (1.234,56)
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case strings.Contains(amountStr, ","):
		// A comma followed by at most two digits is a decimal separator (1234,56),
		// otherwise a thousand separator (1,234)
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			amountStr = strings.Replace(amountStr, ",", ".", 1)
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	return amountStr
}

// FormatAmount renders an amount with two decimal places and no thousands separators.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
