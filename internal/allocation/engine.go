// Package allocation prorates the kitchen fund's total spending over the residents of a period.
//
// Every day of the period costs total/days. That daily amount is split evenly between
// the persons resident on the day, so a person's share depends only on how many days
// they lived in, and on how many others shared those days with them.
package allocation

import (
	"sort"

	"fjacquet/kitchen-account/internal/currencyutils"
	"fjacquet/kitchen-account/internal/dateutils"
	"fjacquet/kitchen-account/internal/logging"
	"fjacquet/kitchen-account/internal/models"

	"github.com/shopspring/decimal"
)

// TotalSpending sums the accumulated spending of every person.
func TotalSpending(spending models.SpendingTable) decimal.Decimal {
	return spending.Total()
}

// Allocate splits total over the residents of period, day by day.
//
// The period's end date is exclusive: a period from the 1st to the 11th covers ten
// days. Residency intervals are inclusive on both ends. Persons who are never resident
// during the period get no entry in the result.
//
// Days are tallied per person by occupancy (how many residents shared the day), and each
// tally is converted to money with a single division: count * total / (days * occupancy).
// This is the same sum as adding total/days/occupancy for every day, with one rounding
// per tally instead of two per day, so a sole resident receives exactly total.
//
// Allocate is a pure function and is safe to call concurrently.
func Allocate(total decimal.Decimal, residency models.ResidencyTable, period models.Interval) (models.PaymentsTable, error) {
	days := period.Days()
	if days <= 0 {
		return nil, &InvalidPeriodError{Period: period}
	}

	persons := models.SortedKeys(residency)
	tallies := make(map[models.Person]map[int]int64)

	occupants := make([]models.Person, 0, len(persons))
	for i := 0; i < days; i++ {
		day := dateutils.AddDays(period.Start, i)

		occupants = occupants[:0]
		for _, p := range persons {
			if residency[p].Contains(day) {
				occupants = append(occupants, p)
			}
		}
		if len(occupants) == 0 {
			return nil, &UnoccupiedDayError{Day: day}
		}

		for _, p := range occupants {
			tally, ok := tallies[p]
			if !ok {
				tally = make(map[int]int64)
				tallies[p] = tally
			}
			tally[len(occupants)]++
		}
	}

	payments := make(models.PaymentsTable, len(tallies))
	for _, p := range persons {
		tally, ok := tallies[p]
		if !ok {
			continue
		}
		payments[p] = share(total, days, tally)
	}
	return payments, nil
}

// share converts one person's occupancy tally into money, smallest occupancy first.
func share(total decimal.Decimal, days int, tally map[int]int64) decimal.Decimal {
	occupancies := make([]int, 0, len(tally))
	for n := range tally {
		occupancies = append(occupancies, n)
	}
	sort.Ints(occupancies)

	amount := decimal.Zero
	for _, n := range occupancies {
		divisor := decimal.NewFromInt(int64(days) * int64(n))
		amount = amount.Add(total.Mul(decimal.NewFromInt(tally[n])).Div(divisor))
	}
	return amount
}

// Engine runs Allocate and logs the run.
type Engine struct {
	logger logging.Logger
}

// NewEngine creates an Engine. A nil logger falls back to an info-level text logger.
func NewEngine(logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Engine{logger: logger.WithField(logging.FieldComponent, "allocation")}
}

// Allocate splits the ledger's total spending over its residents.
func (e *Engine) Allocate(ledger *models.Ledger) (models.PaymentsTable, error) {
	total := TotalSpending(ledger.Spending)
	e.logger.Debug("Allocating spending",
		logging.F(logging.FieldTotal, currencyutils.FormatAmount(total)),
		logging.F(logging.FieldDays, ledger.Period.Days()),
		logging.F(logging.FieldCount, len(ledger.Residency)))

	payments, err := Allocate(total, ledger.Residency, ledger.Period)
	if err != nil {
		e.logger.WithError(err).Error("Allocation failed")
		return nil, err
	}

	e.logger.Info("Allocated spending",
		logging.F(logging.FieldTotal, currencyutils.FormatAmount(payments.Total())),
		logging.F(logging.FieldCount, len(payments)))
	return payments, nil
}
