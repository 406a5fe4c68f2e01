package models

// Ledger is everything read from one kitchen workbook.
type Ledger struct {
	Receipts       []Receipt
	Spending       SpendingTable
	SpendingByDate DateSpendingTable
	Residency      ResidencyTable
	Period         Interval
	Remainders     RemainderTable

	// Skipped holds residency rows left out of the allocation, one message per row.
	Skipped []string
	// Duplicates lists persons with more than one residency row; only the first was kept.
	Duplicates []Person
}

// NewLedger returns a Ledger with empty tables.
func NewLedger() *Ledger {
	return &Ledger{
		Spending:       SpendingTable{},
		SpendingByDate: DateSpendingTable{},
		Residency:      ResidencyTable{},
		Remainders:     RemainderTable{},
	}
}

// AddReceipt records a receipt and accumulates it into the spending tables.
func (l *Ledger) AddReceipt(r Receipt) {
	l.Receipts = append(l.Receipts, r)
	l.Spending.Add(r.Person, r.Amount)
	if r.Date != nil {
		l.SpendingByDate.Add(*r.Date, r.Amount)
	}
}

// Unallocated returns persons with spending or a remainder but no residency, sorted.
func (l *Ledger) Unallocated() []Person {
	seen := map[Person]struct{}{}
	for p := range l.Spending {
		if _, ok := l.Residency[p]; !ok {
			seen[p] = struct{}{}
		}
	}
	for p := range l.Remainders {
		if _, ok := l.Residency[p]; !ok {
			seen[p] = struct{}{}
		}
	}
	return SortedKeys(seen)
}
