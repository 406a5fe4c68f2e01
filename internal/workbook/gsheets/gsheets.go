// Package gsheets reads the kitchen account workbook from a Google Sheets spreadsheet.
package gsheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"fjacquet/kitchen-account/internal/parsererror"
	"fjacquet/kitchen-account/internal/workbook"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Source fetches sheets through the Sheets API values endpoint.
type Source struct {
	svc           *sheets.Service
	spreadsheetID string
}

var _ workbook.Source = (*Source)(nil)

// New creates a Source for the spreadsheet. When credentialsFile is empty the
// application default credentials are used. Extra options are appended last.
func New(ctx context.Context, spreadsheetID, credentialsFile string, opts ...option.ClientOption) (*Source, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}

	clientOpts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsReadonlyScope)}
	if credentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credentialsFile))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Source{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Name returns the spreadsheet ID.
func (s *Source) Name() string {
	return s.spreadsheetID
}

// Records reads every populated cell of the sheet. Trailing empty cells are
// omitted by the API, so rows may be shorter than the header.
func (s *Source) Records(ctx context.Context, sheet string) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, sheetRange(sheet)).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest &&
			strings.Contains(apiErr.Message, "Unable to parse range") {
			return nil, &parsererror.MissingSheetError{Sheet: sheet, Source: s.spreadsheetID}
		}
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return toRecords(resp.Values), nil
}

// sheetRange quotes a sheet name for A1 notation; the whole sheet is selected.
func sheetRange(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

func toRecords(values [][]interface{}) [][]string {
	records := make([][]string, len(values))
	for i, row := range values {
		record := make([]string, len(row))
		for j, cell := range row {
			record[j] = cellString(cell)
		}
		records[i] = record
	}
	return records
}

// cellString renders an unformatted cell. Numbers never use exponent notation.
func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
