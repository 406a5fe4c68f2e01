// Package settlement turns fair shares into what each resident pays into, or receives
// from, the kitchen account.
package settlement

import (
	"fjacquet/kitchen-account/internal/models"

	"github.com/shopspring/decimal"
)

// Line is one resident's settlement.
type Line struct {
	Person    models.Person
	FromLast  decimal.Decimal // remainder carried over from the previous period
	BoughtFor decimal.Decimal // own purchases for the fund
	PerPerson decimal.Decimal // fair share of total spending
	ToPay     decimal.Decimal // positive: pay the account, negative: receive from it
}

// Statement is the settlement of one period.
type Statement struct {
	Period models.Interval
	// Total is the sum of all fair shares ("In total spent").
	Total decimal.Decimal
	Lines []Line
	// Unallocated lists persons with spending or a remainder but no residency.
	// They have no line.
	Unallocated []models.Person
}

// ToPay computes fairShare - ownSpending + carryOver.
func ToPay(fairShare, ownSpending, carryOver decimal.Decimal) decimal.Decimal {
	return fairShare.Sub(ownSpending).Add(carryOver)
}

// Settle builds one line per person of the residency table, ordered by room then name.
// Residents without a payment (never present during the period) get a zero share.
func Settle(payments models.PaymentsTable, ledger *models.Ledger) Statement {
	statement := Statement{
		Period:      ledger.Period,
		Total:       payments.Total(),
		Unallocated: ledger.Unallocated(),
	}

	for _, p := range models.SortedKeys(ledger.Residency) {
		line := Line{
			Person:    p,
			FromLast:  ledger.Remainders.Get(p),
			BoughtFor: ledger.Spending.Get(p),
			PerPerson: payments.Get(p),
		}
		line.ToPay = ToPay(line.PerPerson, line.BoughtFor, line.FromLast)
		statement.Lines = append(statement.Lines, line)
	}

	return statement
}

// Balance is the sum of every line's ToPay: the residents' remainders plus the spending
// of unallocated persons, who are never reimbursed.
func (s Statement) Balance() decimal.Decimal {
	balance := decimal.Zero
	for _, line := range s.Lines {
		balance = balance.Add(line.ToPay)
	}
	return balance
}
