// Package report renders a settlement statement as the fixed-width kitchen account
// table, or as CSV, JSON or YAML with the same rows.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"fjacquet/kitchen-account/internal/currencyutils"
	"fjacquet/kitchen-account/internal/dateutils"
	"fjacquet/kitchen-account/internal/fileutils"
	"fjacquet/kitchen-account/internal/logging"
	"fjacquet/kitchen-account/internal/models"
	"fjacquet/kitchen-account/internal/settlement"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name, case-insensitively. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", name)
	}
}

// Preamble heads the text report.
const Preamble = "'To pay' is the amount to pay.\n" +
	"Negative means you get money from the kitchen account.\n" +
	"Positive means you need to pay the kitchen account.\n"

// Row is one statement line with amounts rendered to two decimals.
type Row struct {
	Name      string `csv:"name" json:"name" yaml:"name"`
	Room      int    `csv:"room" json:"room" yaml:"room"`
	FromLast  string `csv:"from_last" json:"from_last" yaml:"from_last"`
	BoughtFor string `csv:"bought_for" json:"bought_for" yaml:"bought_for"`
	PerPerson string `csv:"per_person" json:"per_person" yaml:"per_person"`
	ToPay     string `csv:"to_pay" json:"to_pay" yaml:"to_pay"`
}

// Document is the JSON and YAML shape of a statement.
type Document struct {
	PeriodStart string          `json:"period_start" yaml:"period_start"`
	PeriodEnd   string          `json:"period_end" yaml:"period_end"`
	TotalSpent  string          `json:"total_spent" yaml:"total_spent"`
	Lines       []Row           `json:"lines" yaml:"lines"`
	Unallocated []models.Person `json:"unallocated,omitempty" yaml:"unallocated,omitempty"`
}

// Rows converts the statement lines, keeping their order.
func Rows(statement settlement.Statement) []Row {
	rows := make([]Row, 0, len(statement.Lines))
	for _, line := range statement.Lines {
		rows = append(rows, Row{
			Name:      line.Person.Name,
			Room:      line.Person.Room,
			FromLast:  currencyutils.FormatAmount(line.FromLast),
			BoughtFor: currencyutils.FormatAmount(line.BoughtFor),
			PerPerson: currencyutils.FormatAmount(line.PerPerson),
			ToPay:     currencyutils.FormatAmount(line.ToPay),
		})
	}
	return rows
}

// Generator renders statements.
type Generator struct {
	logger    logging.Logger
	delimiter rune
}

// NewGenerator creates a Generator. delimiter is used by the CSV format; zero means comma.
func NewGenerator(logger logging.Logger, delimiter rune) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Generator{
		logger:    logger.WithField(logging.FieldComponent, "report"),
		delimiter: delimiter,
	}
}

// Generate renders the statement in the given format.
func (g *Generator) Generate(statement settlement.Statement, format Format) ([]byte, error) {
	switch format {
	case FormatText:
		var buf bytes.Buffer
		if err := WriteText(&buf, statement); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatCSV:
		return g.generateCSV(statement)
	case FormatJSON:
		return g.generateJSON(statement)
	case FormatYAML:
		return g.generateYAML(statement)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteFile renders the statement and writes it to path, creating parent directories.
func (g *Generator) WriteFile(statement settlement.Statement, format Format, path string) error {
	data, err := g.Generate(statement, format)
	if err != nil {
		return err
	}
	if err := fileutils.WriteFile(path, data, 0600); err != nil {
		g.logger.WithError(err).Error("Failed to write report",
			logging.F(logging.FieldOutputFile, path))
		return fmt.Errorf("error writing report: %w", err)
	}
	g.logger.Info("Wrote report",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldFormat, string(format)),
		logging.F(logging.FieldCount, len(statement.Lines)))
	return nil
}

var (
	columnHeaders = [6]string{"Name", "Room", "From last", "Bought for", "Per person", "To pay"}
	columnWidths  = [6]int{6, 6, 11, 12, 12, 8}
)

// WriteText writes the fixed-width table. Every column is left-justified to the larger
// of its default width and its longest value plus two.
func WriteText(w io.Writer, statement settlement.Statement) error {
	rows := Rows(statement)

	cells := make([][6]string, len(rows))
	widths := columnWidths
	for i, row := range rows {
		cells[i] = [6]string{row.Name, strconv.Itoa(row.Room), row.FromLast, row.BoughtFor, row.PerPerson, row.ToPay}
		for c, cell := range cells[i] {
			widths[c] = max(widths[c], utf8.RuneCountInString(cell)+2)
		}
	}

	var b strings.Builder
	b.WriteString(Preamble)
	fmt.Fprintf(&b, "In total spent = %s\n", currencyutils.FormatAmount(statement.Total))
	writeTextRow(&b, columnHeaders, widths)
	for _, row := range cells {
		writeTextRow(&b, row, widths)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTextRow(b *strings.Builder, cells [6]string, widths [6]int) {
	for c, cell := range cells {
		fmt.Fprintf(b, "%-*s", widths[c], cell)
	}
	b.WriteByte('\n')
}

func (g *Generator) generateCSV(statement settlement.Statement) ([]byte, error) {
	var buf bytes.Buffer
	csvWriter := csv.NewWriter(&buf)
	csvWriter.Comma = g.delimiter

	if err := gocsv.MarshalCSV(Rows(statement), gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		g.logger.WithError(err).Error("Failed to marshal CSV report")
		return nil, fmt.Errorf("failed to marshal CSV report: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) generateJSON(statement settlement.Statement) ([]byte, error) {
	out, err := json.MarshalIndent(document(statement), "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

func (g *Generator) generateYAML(statement settlement.Statement) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(document(statement)); err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return buf.Bytes(), nil
}

func document(statement settlement.Statement) Document {
	return Document{
		PeriodStart: dateutils.ToISODate(statement.Period.Start),
		PeriodEnd:   dateutils.ToISODate(statement.Period.End),
		TotalSpent:  currencyutils.FormatAmount(statement.Total),
		Lines:       Rows(statement),
		Unallocated: statement.Unallocated,
	}
}
