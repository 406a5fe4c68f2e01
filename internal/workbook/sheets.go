package workbook

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fjacquet/kitchen-account/internal/currencyutils"
	"fjacquet/kitchen-account/internal/dateutils"
	"fjacquet/kitchen-account/internal/logging"
	"fjacquet/kitchen-account/internal/models"
	"fjacquet/kitchen-account/internal/parsererror"

	"github.com/shopspring/decimal"
)

type receiptRow struct {
	Name    string `csv:"name"`
	Room    string `csv:"room"`
	Amount  string `csv:"amount"`
	Day     string `csv:"day"`
	Month   string `csv:"month"`
	Year    string `csv:"year"`
	Hours   string `csv:"hours"`
	Minutes string `csv:"minutes"`
}

type personRow struct {
	Name       string `csv:"name"`
	Room       string `csv:"room"`
	StartDay   string `csv:"start day"`
	StartMonth string `csv:"start month"`
	StartYear  string `csv:"start year"`
	EndDay     string `csv:"end day"`
	EndMonth   string `csv:"end month"`
	EndYear    string `csv:"end year"`
}

type remainderRow struct {
	Name      string `csv:"name"`
	Room      string `csv:"room"`
	Remainder string `csv:"remainder"`
}

var (
	receiptColumns   = []string{"name", "room", "amount"}
	personColumns    = []string{"name", "room", "start day", "start month", "start year", "end day", "end month", "end year"}
	remainderColumns = []string{"name", "room", "remainder"}
)

// readReceipts decodes the Receipts sheet. Date and time columns are optional.
func (l *Loader) readReceipts(records [][]string, ledger *models.Ledger) error {
	sheet := l.names.Receipts
	rows, err := decodeRows[receiptRow](sheet, records, receiptColumns)
	if err != nil {
		return err
	}

	var errs []error
	for i, row := range rows {
		receipt, err := parseReceipt(sheet, sheetRow(i), row)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if receipt == nil {
			continue
		}
		ledger.AddReceipt(*receipt)
	}
	return errors.Join(errs...)
}

// parseReceipt returns nil without error for rows with a blank name.
func parseReceipt(sheet string, rowNum int, row receiptRow) (*models.Receipt, error) {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return nil, nil
	}

	room, err := models.ParseWhole(row.Room)
	if err != nil {
		return nil, &parsererror.ParseError{Sheet: sheet, Row: rowNum, Column: "room", Value: row.Room, Err: err}
	}
	amount, err := currencyutils.ParseAmount(row.Amount)
	if err != nil {
		return nil, &parsererror.ParseError{Sheet: sheet, Row: rowNum, Column: "amount", Value: row.Amount, Err: err}
	}

	receipt := &models.Receipt{Person: models.NewPerson(name, room), Amount: amount}

	if !isBlank(row.Day, row.Month, row.Year) {
		date, err := parseDate(row.Year, row.Month, row.Day)
		if err != nil {
			value := fmt.Sprintf("%s/%s/%s", row.Day, row.Month, row.Year)
			return nil, &parsererror.ParseError{Sheet: sheet, Row: rowNum, Column: "date", Value: value, Err: err}
		}
		receipt.Date = &date
	}

	if !isBlank(row.Hours, row.Minutes) {
		tod, err := parseTimeOfDay(row.Hours, row.Minutes)
		if err != nil {
			value := fmt.Sprintf("%s:%s", row.Hours, row.Minutes)
			return nil, &parsererror.ParseError{Sheet: sheet, Row: rowNum, Column: "time", Value: value, Err: err}
		}
		receipt.Time = &tod
	}

	return receipt, nil
}

// readPeople decodes the People sheet: the full period row and one residency per person.
func (l *Loader) readPeople(records [][]string, ledger *models.Ledger) error {
	sheet := l.names.People
	rows, err := decodeRows[personRow](sheet, records, personColumns)
	if err != nil {
		return err
	}

	periodFound := false
	label := strings.ToLower(strings.TrimSpace(l.names.PeriodLabel))
	for i, row := range rows {
		rowNum := sheetRow(i)
		name := strings.TrimSpace(row.Name)

		if strings.ToLower(name) == label {
			if periodFound {
				l.logger.Warn("Ignoring repeated period row",
					logging.F(logging.FieldSheet, sheet), logging.F(logging.FieldRow, rowNum))
				continue
			}
			period, err := parseInterval(row)
			if err != nil {
				return &parsererror.ValidationError{Sheet: sheet, Reason: fmt.Sprintf("invalid '%s' row %d: %v", l.names.PeriodLabel, rowNum, err)}
			}
			ledger.Period = period
			periodFound = true
			continue
		}
		if name == "" {
			continue
		}

		person, iv, malformed := parseResidency(sheet, rowNum, name, row)
		if malformed != nil {
			ledger.Skipped = append(ledger.Skipped, malformed.Error())
			l.logger.WithError(malformed).Warn("Leaving person out of the allocation",
				logging.F(logging.FieldSheet, sheet),
				logging.F(logging.FieldRow, rowNum),
				logging.F(logging.FieldPerson, name))
			continue
		}
		if !ledger.Residency.Insert(person, iv) {
			ledger.Duplicates = append(ledger.Duplicates, person)
			l.logger.Warn("Ignoring duplicate residency row, the first one is kept",
				logging.F(logging.FieldSheet, sheet),
				logging.F(logging.FieldRow, rowNum),
				logging.F(logging.FieldPerson, person.String()))
		}
	}

	if !periodFound {
		return &parsererror.ValidationError{Sheet: sheet, Reason: fmt.Sprintf("no '%s' row", l.names.PeriodLabel)}
	}
	return nil
}

func parseResidency(sheet string, rowNum int, name string, row personRow) (models.Person, models.Interval, *parsererror.MalformedIntervalError) {
	malformed := &parsererror.MalformedIntervalError{Sheet: sheet, Row: rowNum, Name: name, Room: row.Room}

	room, err := models.ParseWhole(row.Room)
	if err != nil {
		malformed.Reason = "invalid room"
		malformed.Err = err
		return models.Person{}, models.Interval{}, malformed
	}
	iv, err := parseInterval(row)
	if err != nil {
		malformed.Reason = "invalid interval"
		malformed.Err = err
		return models.Person{}, models.Interval{}, malformed
	}
	return models.NewPerson(name, room), iv, nil
}

func parseInterval(row personRow) (models.Interval, error) {
	start, err := parseDate(row.StartYear, row.StartMonth, row.StartDay)
	if err != nil {
		return models.Interval{}, fmt.Errorf("start date: %w", err)
	}
	end, err := parseDate(row.EndYear, row.EndMonth, row.EndDay)
	if err != nil {
		return models.Interval{}, fmt.Errorf("end date: %w", err)
	}
	iv := models.Interval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return models.Interval{}, err
	}
	return iv, nil
}

// readRemainders decodes the From Last sheet. A blank remainder cell counts as zero.
func (l *Loader) readRemainders(records [][]string, ledger *models.Ledger) error {
	sheet := l.names.FromLast
	rows, err := decodeRows[remainderRow](sheet, records, remainderColumns)
	if err != nil {
		return err
	}

	var errs []error
	for i, row := range rows {
		rowNum := sheetRow(i)
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}

		room, err := models.ParseWhole(row.Room)
		if err != nil {
			errs = append(errs, &parsererror.ParseError{Sheet: sheet, Row: rowNum, Column: "room", Value: row.Room, Err: err})
			continue
		}
		remainder, err := currencyutils.ParseAmount(row.Remainder)
		if errors.Is(err, currencyutils.ErrEmptyAmount) {
			remainder, err = decimal.Zero, nil
		}
		if err != nil {
			errs = append(errs, &parsererror.ParseError{Sheet: sheet, Row: rowNum, Column: "remainder", Value: row.Remainder, Err: err})
			continue
		}
		ledger.Remainders.Add(models.NewPerson(name, room), remainder)
	}
	return errors.Join(errs...)
}

func parseDate(year, month, day string) (time.Time, error) {
	y, err := models.ParseWhole(year)
	if err != nil {
		return time.Time{}, fmt.Errorf("year: %w", err)
	}
	m, err := models.ParseWhole(month)
	if err != nil {
		return time.Time{}, fmt.Errorf("month: %w", err)
	}
	d, err := models.ParseWhole(day)
	if err != nil {
		return time.Time{}, fmt.Errorf("day: %w", err)
	}
	return dateutils.DateFromParts(y, m, d)
}

func parseTimeOfDay(hours, minutes string) (models.TimeOfDay, error) {
	h, err := models.ParseWhole(hours)
	if err != nil {
		return models.TimeOfDay{}, fmt.Errorf("hours: %w", err)
	}
	m := 0
	if !isBlank(minutes) {
		if m, err = models.ParseWhole(minutes); err != nil {
			return models.TimeOfDay{}, fmt.Errorf("minutes: %w", err)
		}
	}
	tod := models.TimeOfDay{Hour: h, Minute: m}
	return tod, tod.Validate()
}
