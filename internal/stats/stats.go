// Package stats summarizes kitchen spending by month, weekday and hour of purchase.
package stats

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"fjacquet/kitchen-account/internal/currencyutils"
	"fjacquet/kitchen-account/internal/models"

	"github.com/shopspring/decimal"
)

// Dimension selects how spending is grouped.
type Dimension string

const (
	ByMonth   Dimension = "month"
	ByWeekday Dimension = "weekday"
	ByHour    Dimension = "hour"
	All       Dimension = "all"
)

// ParseDimension validates a grouping name, case-insensitively.
func ParseDimension(name string) (Dimension, error) {
	switch d := Dimension(strings.ToLower(strings.TrimSpace(name))); d {
	case ByMonth, ByWeekday, ByHour, All:
		return d, nil
	case "":
		return All, nil
	default:
		return "", fmt.Errorf("unsupported statistics grouping: %s", name)
	}
}

// Bucket is the spending of one group.
type Bucket struct {
	Label  string
	Amount decimal.Decimal
}

// Table is a titled list of buckets in display order.
type Table struct {
	Title   string
	Buckets []Bucket
}

// Total sums the buckets.
func (t Table) Total() decimal.Decimal {
	total := decimal.Zero
	for _, b := range t.Buckets {
		total = total.Add(b.Amount)
	}
	return total
}

// Compute builds the tables for a dimension; All yields month, weekday and hour tables.
func Compute(ledger *models.Ledger, dim Dimension) ([]Table, error) {
	switch dim {
	case ByMonth:
		return []Table{Monthly(ledger.SpendingByDate)}, nil
	case ByWeekday:
		return []Table{Weekly(ledger.SpendingByDate)}, nil
	case ByHour:
		return []Table{Hourly(ledger.Receipts)}, nil
	case All:
		return []Table{
			Monthly(ledger.SpendingByDate),
			Weekly(ledger.SpendingByDate),
			Hourly(ledger.Receipts),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported statistics grouping: %s", dim)
	}
}

// Monthly groups dated spending by month of the year, in calendar order. Months
// without spending are left out.
func Monthly(byDate models.DateSpendingTable) Table {
	sums := make(map[time.Month]decimal.Decimal)
	for date, amount := range byDate {
		sums[date.Month()] = sums[date.Month()].Add(amount)
	}

	months := make([]time.Month, 0, len(sums))
	for m := range sums {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })

	table := Table{Title: "Spending per month"}
	for _, m := range months {
		table.Buckets = append(table.Buckets, Bucket{Label: m.String(), Amount: sums[m]})
	}
	return table
}

// Weekly groups dated spending by weekday, Monday first. Weekdays without spending
// are left out.
func Weekly(byDate models.DateSpendingTable) Table {
	var sums [7]decimal.Decimal
	var seen [7]bool
	for date, amount := range byDate {
		i := mondayIndex(date.Weekday())
		sums[i] = sums[i].Add(amount)
		seen[i] = true
	}

	table := Table{Title: "Spending per weekday"}
	for i := range sums {
		if !seen[i] {
			continue
		}
		day := time.Weekday((i + 1) % 7)
		table.Buckets = append(table.Buckets, Bucket{Label: day.String(), Amount: sums[i]})
	}
	return table
}

func mondayIndex(day time.Weekday) int {
	return (int(day) + 6) % 7
}

// Hourly groups timed receipts by hour of purchase. Every hour between the earliest
// and the latest one observed gets a bucket, zero when nothing was bought.
// Receipts without a time are ignored.
func Hourly(receipts []models.Receipt) Table {
	table := Table{Title: "Spending per hour"}

	var sums [24]decimal.Decimal
	minHour, maxHour := 24, -1
	for _, r := range receipts {
		if r.Time == nil {
			continue
		}
		h := r.Time.Hour
		sums[h] = sums[h].Add(r.Amount)
		minHour = min(minHour, h)
		maxHour = max(maxHour, h)
	}

	for h := minHour; h <= maxHour; h++ {
		table.Buckets = append(table.Buckets, Bucket{Label: fmt.Sprintf("%02d", h), Amount: sums[h]})
	}
	return table
}

// WriteTable renders a table as two left-justified columns followed by a total line.
func WriteTable(w io.Writer, table Table) error {
	width := len("Total")
	for _, b := range table.Buckets {
		width = max(width, utf8.RuneCountInString(b.Label))
	}
	width += 2

	var sb strings.Builder
	sb.WriteString(table.Title + "\n")
	if len(table.Buckets) == 0 {
		sb.WriteString("(no data)\n")
	}
	for _, b := range table.Buckets {
		fmt.Fprintf(&sb, "%-*s%s\n", width, b.Label, currencyutils.FormatAmount(b.Amount))
	}
	if len(table.Buckets) > 0 {
		fmt.Fprintf(&sb, "%-*s%s\n", width, "Total", currencyutils.FormatAmount(table.Total()))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteTables renders tables separated by blank lines.
func WriteTables(w io.Writer, tables []Table) error {
	for i, table := range tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := WriteTable(w, table); err != nil {
			return err
		}
	}
	return nil
}
