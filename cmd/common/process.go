// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"
	"strings"

	"fjacquet/kitchen-account/internal/container"
	"fjacquet/kitchen-account/internal/currencyutils"
	"fjacquet/kitchen-account/internal/logging"
	"fjacquet/kitchen-account/internal/models"
	"fjacquet/kitchen-account/internal/report"
	"fjacquet/kitchen-account/internal/settlement"
	"fjacquet/kitchen-account/internal/stats"
	"fjacquet/kitchen-account/internal/workbook"
)

// Options selects the workbook and the report destination.
type Options struct {
	Input       string
	Spreadsheet string
	Output      string
	Format      string
}

// LoadLedger opens the workbook named by opts and reads it.
func LoadLedger(ctx context.Context, c *container.Container, opts Options) (*models.Ledger, error) {
	src, err := c.OpenSource(ctx, opts.Input, opts.Spreadsheet)
	if err != nil {
		return nil, err
	}
	return LoadFrom(ctx, c, src)
}

// LoadFrom reads the workbook from src.
func LoadFrom(ctx context.Context, c *container.Container, src workbook.Source) (*models.Ledger, error) {
	ledger, err := c.NewLoader(src).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading workbook %s: %w", src.Name(), err)
	}
	return ledger, nil
}

// Settle allocates the ledger's spending and settles every resident.
func Settle(c *container.Container, ledger *models.Ledger) (settlement.Statement, error) {
	payments, err := c.GetEngine().Allocate(ledger)
	if err != nil {
		return settlement.Statement{}, err
	}

	statement := settlement.Settle(payments, ledger)
	if len(statement.Unallocated) > 0 {
		names := make([]string, len(statement.Unallocated))
		for i, p := range statement.Unallocated {
			names[i] = p.String()
		}
		c.GetLogger().Warn("Spending or remainders of persons without residency are not settled",
			logging.F(logging.FieldCount, len(names)),
			logging.F("persons", strings.Join(names, ", ")))
	}
	c.GetLogger().Info("Settled kitchen account",
		logging.F(logging.FieldCount, len(statement.Lines)),
		logging.F(logging.FieldTotal, currencyutils.FormatAmount(statement.Total)),
		logging.F(logging.FieldBalance, currencyutils.FormatAmount(statement.Balance())))
	return statement, nil
}

// ResolveFormat picks the flag value when set, otherwise the configured format.
func ResolveFormat(c *container.Container, flag string) (report.Format, error) {
	if flag == "" {
		flag = c.GetConfig().Report.Format
	}
	return report.ParseFormat(flag)
}

// WriteReport renders the statement to opts.Output, or to stdout when no output is set.
func WriteReport(c *container.Container, statement settlement.Statement, opts Options, stdout io.Writer) error {
	format, err := ResolveFormat(c, opts.Format)
	if err != nil {
		return err
	}

	generator := c.GetReportGenerator()
	if opts.Output != "" {
		return generator.WriteFile(statement, format, opts.Output)
	}

	data, err := generator.Generate(statement, format)
	if err != nil {
		return err
	}
	_, err = stdout.Write(data)
	return err
}

// WriteStats prints the spending tables for a grouping.
func WriteStats(w io.Writer, ledger *models.Ledger, by string) error {
	dim, err := stats.ParseDimension(by)
	if err != nil {
		return err
	}
	tables, err := stats.Compute(ledger, dim)
	if err != nil {
		return err
	}
	return stats.WriteTables(w, tables)
}

// Problems lists what a workbook check reports besides load errors, such as left-out
// or duplicate residency rows and persons who cannot be settled.
func Problems(ledger *models.Ledger) []string {
	var problems []string
	if ledger.Period.Days() <= 0 {
		problems = append(problems, fmt.Sprintf("period %s is empty: end must be after start", ledger.Period))
	}
	for _, msg := range ledger.Skipped {
		problems = append(problems, "skipped residency: "+msg)
	}
	for _, p := range ledger.Duplicates {
		problems = append(problems, "duplicate residency ignored for "+p.String())
	}
	for _, p := range ledger.Unallocated() {
		problems = append(problems, "no residency for "+p.String()+": spending and remainder are not settled")
	}
	return problems
}
