// Package container provides dependency injection for the kitchen-account application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fjacquet/kitchen-account/internal/allocation"
	"fjacquet/kitchen-account/internal/config"
	"fjacquet/kitchen-account/internal/fileutils"
	"fjacquet/kitchen-account/internal/logging"
	"fjacquet/kitchen-account/internal/report"
	"fjacquet/kitchen-account/internal/workbook"
	"fjacquet/kitchen-account/internal/workbook/gsheets"

	"google.golang.org/api/option"
)

// ErrNoWorkbook is returned when neither an input directory nor a spreadsheet ID is set.
var ErrNoWorkbook = errors.New("no workbook given: set an input directory or a spreadsheet ID")

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	engine    *allocation.Engine
	generator *report.Generator
	names     workbook.SheetNames

	sheetsOptions []option.ClientOption
}

// Option customizes a Container at construction.
type Option func(*Container)

// WithSheetsClientOptions passes extra Google API client options, such as an endpoint
// or an HTTP client, to the Google Sheets source.
func WithSheetsClientOptions(opts ...option.ClientOption) Option {
	return func(c *Container) {
		c.sheetsOptions = append(c.sheetsOptions, opts...)
	}
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg)), opts...)
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	c := &Container{
		logger:    logger,
		config:    cfg,
		engine:    allocation.NewEngine(logger),
		generator: report.NewGenerator(logger, cfg.DelimiterRune()),
		names: workbook.SheetNames{
			Receipts:    cfg.Sheets.Receipts,
			People:      cfg.Sheets.People,
			FromLast:    cfg.Sheets.FromLast,
			PeriodLabel: cfg.Sheets.PeriodLabel,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	logger.Debug("Container initialized successfully",
		logging.F("receipts_sheet", c.names.Receipts),
		logging.F("people_sheet", c.names.People),
		logging.F("from_last_sheet", c.names.FromLast))
	return c, nil
}

// OpenSource returns the workbook source: the Google spreadsheet when a spreadsheet ID
// is given (argument first, then configuration), otherwise the CSV directory input.
func (c *Container) OpenSource(ctx context.Context, input, spreadsheetID string) (workbook.Source, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		spreadsheetID = c.config.Google.SpreadsheetID
	}

	if strings.TrimSpace(spreadsheetID) != "" {
		src, err := gsheets.New(ctx, spreadsheetID, c.config.Google.CredentialsFile, c.sheetsOptions...)
		if err != nil {
			return nil, fmt.Errorf("error opening spreadsheet %s: %w", spreadsheetID, err)
		}
		c.logger.Debug("Using Google Sheets workbook", logging.F(logging.FieldSource, spreadsheetID))
		return src, nil
	}

	if input == "" {
		return nil, ErrNoWorkbook
	}
	if !fileutils.DirectoryExists(input) {
		return nil, fmt.Errorf("workbook directory does not exist: %s", input)
	}
	c.logger.Debug("Using CSV workbook directory",
		logging.F(logging.FieldSource, input),
		logging.F(logging.FieldDelimiter, c.config.CSV.Delimiter))
	return workbook.NewDirSource(input, c.config.DelimiterRune()), nil
}

// NewLoader returns a workbook loader for src using the configured sheet names.
func (c *Container) NewLoader(src workbook.Source) *workbook.Loader {
	return workbook.NewLoader(src, c.names, c.logger)
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetEngine returns the allocation engine.
func (c *Container) GetEngine() *allocation.Engine {
	return c.engine
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.generator
}

// GetSheetNames returns the configured sheet names.
func (c *Container) GetSheetNames() workbook.SheetNames {
	return c.names
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
