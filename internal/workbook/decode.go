package workbook

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"fjacquet/kitchen-account/internal/parsererror"

	"github.com/gocarina/gocsv"
)

// normalizeHeader makes column lookup case-insensitive. Row struct tags are lower case.
func normalizeHeader(cell string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff")))
}

// decodeRows checks the required columns of a sheet and decodes its body into rows of T.
// Element i of the result is sheet row i+2 (row 1 is the header).
func decodeRows[T any](sheet string, records [][]string, required []string) ([]T, error) {
	if len(records) == 0 {
		return nil, &parsererror.ValidationError{Sheet: sheet, Reason: "sheet is empty"}
	}

	header := make([]string, len(records[0]))
	present := make(map[string]bool, len(header))
	for i, cell := range records[0] {
		header[i] = normalizeHeader(cell)
		present[header[i]] = true
	}
	for _, column := range required {
		if !present[column] {
			return nil, &parsererror.MissingColumnError{Sheet: sheet, Column: column}
		}
	}

	// Sources may return ragged rows (trailing empty cells are often omitted),
	// so every row is squared to the header before decoding.
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("error encoding sheet '%s': %w", sheet, err)
	}
	row := make([]string, len(header))
	for _, record := range records[1:] {
		for i := range row {
			row[i] = ""
			if i < len(record) {
				row[i] = record[i]
			}
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("error encoding sheet '%s': %w", sheet, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("error encoding sheet '%s': %w", sheet, err)
	}

	var rows []T
	if err := gocsv.UnmarshalBytes(buf.Bytes(), &rows); err != nil {
		return nil, fmt.Errorf("error decoding sheet '%s': %w", sheet, err)
	}
	return rows, nil
}

// sheetRow converts a decoded row index to the 1-based spreadsheet row number.
func sheetRow(index int) int {
	return index + 2
}

func isBlank(cells ...string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
