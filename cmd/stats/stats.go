// Package stats implements the stats command.
package stats

import (
	"context"

	"fjacquet/kitchen-account/cmd/common"
	"fjacquet/kitchen-account/cmd/root"

	"github.com/spf13/cobra"
)

var by string

// Cmd represents the stats command
var Cmd = &cobra.Command{
	Use:   "stats",
	Short: "Print spending per month, weekday or hour",
	Long: `Stats reads the Receipts sheet and prints spending tables. Receipts need day,
month and year columns to count per month and weekday, and an hours column to
count per hour; receipts without them are left out of that table.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVar(&by, "by", "all", "Grouping: month, weekday, hour or all")
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
	return common.WriteStats(cmd.OutOrStdout(), ledger, by)
}
