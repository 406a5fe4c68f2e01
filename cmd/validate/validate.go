// Package validate implements the validate command.
package validate

import (
	"context"
	"fmt"

	"fjacquet/kitchen-account/cmd/common"
	"fjacquet/kitchen-account/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the workbook without settling",
	Long: `Validate reads the workbook and reports missing sheets or columns, cells that
cannot be parsed, residency rows left out, duplicate residency rows and persons
with spending or a remainder but no residency. Nothing is allocated.`,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ledger, err := common.LoadLedger(ctx, c, common.Options{
		Input:       root.SharedFlags.Input,
		Spreadsheet: root.SharedFlags.Spreadsheet,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Period %s: %d receipts, %d residents, %d remainders\n",
		ledger.Period, len(ledger.Receipts), len(ledger.Residency), len(ledger.Remainders))

	problems := common.Problems(ledger)
	for _, p := range problems {
		fmt.Fprintf(out, "warning: %s\n", p)
	}
	if len(problems) == 0 {
		fmt.Fprintln(out, "Workbook is valid.")
	}
	return nil
}
