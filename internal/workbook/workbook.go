// Package workbook reads the kitchen account workbook: the Receipts, People and
// From Last sheets. Sheets come from a Source as raw cell grids and are decoded
// into a models.Ledger.
package workbook

import (
	"context"
	"errors"
	"fmt"

	"fjacquet/kitchen-account/internal/logging"
	"fjacquet/kitchen-account/internal/models"

	"golang.org/x/sync/errgroup"
)

// Source provides the raw cells of a named sheet, header row first.
type Source interface {
	// Name identifies the source in logs and errors, e.g. a directory or spreadsheet ID.
	Name() string
	// Records returns every row of the sheet. It returns a *parsererror.MissingSheetError
	// when the sheet does not exist.
	Records(ctx context.Context, sheet string) ([][]string, error)
}

// SheetNames configures the sheet names and the label of the full-period row.
type SheetNames struct {
	Receipts    string
	People      string
	FromLast    string
	PeriodLabel string
}

// DefaultSheetNames returns the names used by the kitchen account template.
func DefaultSheetNames() SheetNames {
	return SheetNames{
		Receipts:    "Receipts",
		People:      "People",
		FromLast:    "From Last",
		PeriodLabel: "Period start",
	}
}

// Loader reads a workbook from a Source.
type Loader struct {
	source Source
	names  SheetNames
	logger logging.Logger
}

// NewLoader creates a Loader. Empty sheet names fall back to the defaults.
func NewLoader(source Source, names SheetNames, logger logging.Logger) *Loader {
	defaults := DefaultSheetNames()
	if names.Receipts == "" {
		names.Receipts = defaults.Receipts
	}
	if names.People == "" {
		names.People = defaults.People
	}
	if names.FromLast == "" {
		names.FromLast = defaults.FromLast
	}
	if names.PeriodLabel == "" {
		names.PeriodLabel = defaults.PeriodLabel
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Loader{
		source: source,
		names:  names,
		logger: logger.WithField(logging.FieldSource, source.Name()),
	}
}

// Load fetches the three sheets concurrently and decodes them into a Ledger.
//
// Cell errors in the Receipts and From Last sheets and structural errors in any sheet
// fail the load; all of them are reported together via errors.Join. Malformed residency
// rows do not fail the load: the person is left out and listed in Ledger.Skipped.
func (l *Loader) Load(ctx context.Context) (*models.Ledger, error) {
	var receipts, people, remainders [][]string

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(sheet string, dst *[][]string) {
		g.Go(func() error {
			records, err := l.source.Records(gctx, sheet)
			if err != nil {
				return fmt.Errorf("error reading sheet '%s': %w", sheet, err)
			}
			l.logger.Debug("Fetched sheet",
				logging.F(logging.FieldSheet, sheet),
				logging.F(logging.FieldCount, len(records)))
			*dst = records
			return nil
		})
	}
	fetch(l.names.Receipts, &receipts)
	fetch(l.names.People, &people)
	fetch(l.names.FromLast, &remainders)
	if err := g.Wait(); err != nil {
		l.logger.WithError(err).Error("Failed to fetch workbook")
		return nil, err
	}

	ledger := models.NewLedger()
	errs := []error{
		l.readReceipts(receipts, ledger),
		l.readPeople(people, ledger),
		l.readRemainders(remainders, ledger),
	}
	if err := errors.Join(errs...); err != nil {
		l.logger.WithError(err).Error("Failed to decode workbook")
		return nil, err
	}

	l.logger.Info("Loaded workbook",
		logging.F("receipts", len(ledger.Receipts)),
		logging.F("residents", len(ledger.Residency)),
		logging.F("remainders", len(ledger.Remainders)),
		logging.F("period", ledger.Period.String()))
	return ledger, nil
}
