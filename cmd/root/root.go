// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/kitchen-account/internal/config"
	"fjacquet/kitchen-account/internal/container"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	Input       string
	Output      string
	Format      string
	Spreadsheet string
	ConfigFile  string
	LogLevel    string
}

var (
	// AppConfig is the configuration loaded before any subcommand runs.
	AppConfig *config.Config

	// AppContainer holds the wired dependencies for subcommands.
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "kitchen-account",
		Short: "Settle a shared kitchen fund from a receipts and residency workbook.",
		Long: `kitchen-account reads a workbook with three sheets (Receipts, People and From Last),
shares the period's spending among residents by the days they lived in, and reports
what each person pays into or receives from the kitchen account.

The workbook is either a directory of CSV files, one per sheet (--input), or a
Google Sheets spreadsheet (--spreadsheet).`,
		SilenceUsage:      true,
		PersistentPreRunE: initialize,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				_ = AppContainer.Close()
			}
		},
	}

	// SharedFlags holds the persistent flags accessible to all commands
	SharedFlags = CommonFlags{}

	initOnce sync.Once
)

// Init registers the persistent flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Directory holding one CSV file per sheet")
		flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: standard output)")
		flags.StringVarP(&SharedFlags.Format, "format", "f", "", "Report format: text, csv, json or yaml (default from config)")
		flags.StringVar(&SharedFlags.Spreadsheet, "spreadsheet", "", "Google Sheets spreadsheet ID to read instead of --input")
		flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Configuration file (default: config.yaml in $HOME/.kitchen-account, .kitchen-account or .)")
		flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level override: debug, info, warn or error")
	})
}

// initialize loads the configuration and wires the container before a subcommand runs.
func initialize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	if SharedFlags.LogLevel != "" {
		if err := cfg.OverrideLogLevel(SharedFlags.LogLevel); err != nil {
			return err
		}
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	return nil
}

// GetContainer returns the application container, or an error when commands run
// without the root pre-run hook.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("container not initialized")
	}
	return AppContainer, nil
}
