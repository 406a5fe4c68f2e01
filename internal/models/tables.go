package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResidencyTable maps each person to the single interval they were part of the fund.
type ResidencyTable map[Person]Interval

// Insert stores iv for p unless p already has an interval. The first entry wins;
// it returns false when the entry was ignored as a duplicate.
func (t ResidencyTable) Insert(p Person, iv Interval) bool {
	if _, exists := t[p]; exists {
		return false
	}
	t[p] = iv
	return true
}

// SpendingTable accumulates receipt amounts per person.
type SpendingTable map[Person]decimal.Decimal

// Add accumulates amount onto p's total.
func (t SpendingTable) Add(p Person, amount decimal.Decimal) {
	t[p] = t.Get(p).Add(amount)
}

// Get returns p's total, zero when absent.
func (t SpendingTable) Get(p Person) decimal.Decimal {
	if v, ok := t[p]; ok {
		return v
	}
	return decimal.Zero
}

// Total sums every person's spending.
func (t SpendingTable) Total() decimal.Decimal {
	return sumInOrder(t)
}

// DateSpendingTable accumulates receipt amounts per calendar date.
type DateSpendingTable map[time.Time]decimal.Decimal

// Add accumulates amount onto date's total.
func (t DateSpendingTable) Add(date time.Time, amount decimal.Decimal) {
	if v, ok := t[date]; ok {
		t[date] = v.Add(amount)
		return
	}
	t[date] = amount
}

// RemainderTable holds the signed balance each person carries over from the previous period.
type RemainderTable map[Person]decimal.Decimal

// Add accumulates a remainder row onto p's balance.
func (t RemainderTable) Add(p Person, amount decimal.Decimal) {
	t[p] = t.Get(p).Add(amount)
}

// Get returns p's remainder, zero when absent.
func (t RemainderTable) Get(p Person) decimal.Decimal {
	if v, ok := t[p]; ok {
		return v
	}
	return decimal.Zero
}

// PaymentsTable is the fair share of total spending each resident owes for the period.
type PaymentsTable map[Person]decimal.Decimal

// Get returns p's share, zero when absent.
func (t PaymentsTable) Get(p Person) decimal.Decimal {
	if v, ok := t[p]; ok {
		return v
	}
	return decimal.Zero
}

// Total sums every share.
func (t PaymentsTable) Total() decimal.Decimal {
	return sumInOrder(t)
}

func sumInOrder(m map[Person]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, p := range SortedKeys(m) {
		total = total.Add(m[p])
	}
	return total
}
