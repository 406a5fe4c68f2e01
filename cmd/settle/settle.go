// Package settle implements the settle command.
package settle

import (
	"context"
	"fmt"

	"fjacquet/kitchen-account/cmd/common"
	"fjacquet/kitchen-account/cmd/root"

	"github.com/spf13/cobra"
)

var withStats bool

// Cmd represents the settle command
var Cmd = &cobra.Command{
	Use:   "settle",
	Short: "Share the period's spending among residents and report what each pays",
	Long: `Settle reads the workbook, shares the total spending of the period among the
residents by the days they lived in, and writes the kitchen account report:
for every resident the remainder from last time, what they bought for the fund,
their fair share and what they pay ("To pay"). A negative amount is paid out
by the kitchen account.`,
	RunE: run,
}

func init() {
	Cmd.Flags().BoolVar(&withStats, "stats", false, "Also print spending per month, weekday and hour")
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

	opts := common.Options{
		Input:       root.SharedFlags.Input,
		Spreadsheet: root.SharedFlags.Spreadsheet,
		Output:      root.SharedFlags.Output,
		Format:      root.SharedFlags.Format,
	}

	ledger, err := common.LoadLedger(ctx, c, opts)
	if err != nil {
		return err
	}
	statement, err := common.Settle(c, ledger)
	if err != nil {
		return fmt.Errorf("error settling kitchen account: %w", err)
	}
	if err := common.WriteReport(c, statement, opts, cmd.OutOrStdout()); err != nil {
		return err
	}

	if withStats {
		if _, err := fmt.Fprintln(cmd.OutOrStdout()); err != nil {
			return err
		}
		return common.WriteStats(cmd.OutOrStdout(), ledger, "all")
	}
	return nil
}
