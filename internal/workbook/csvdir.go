package workbook

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/kitchen-account/internal/fileutils"
	"fjacquet/kitchen-account/internal/parsererror"
)

// DirSource reads each sheet from a CSV file in a directory, as exported from a
// spreadsheet program: "Receipts.csv", "People.csv", "From Last.csv".
type DirSource struct {
	dir       string
	delimiter rune
}

var _ Source = (*DirSource)(nil)

// NewDirSource creates a DirSource. A zero delimiter means comma.
func NewDirSource(dir string, delimiter rune) *DirSource {
	if delimiter == 0 {
		delimiter = ','
	}
	return &DirSource{dir: dir, delimiter: delimiter}
}

// Name returns the directory.
func (s *DirSource) Name() string {
	return s.dir
}

// Path returns the CSV file holding sheet. It tries the sheet name as is, lower case,
// and lower case with spaces replaced by underscores or dashes.
func (s *DirSource) Path(sheet string) (string, error) {
	lower := strings.ToLower(sheet)
	candidates := []string{
		sheet,
		lower,
		strings.ReplaceAll(lower, " ", "_"),
		strings.ReplaceAll(lower, " ", "-"),
	}
	for _, candidate := range candidates {
		path := filepath.Join(s.dir, candidate+".csv")
		if fileutils.FileExists(path) {
			return path, nil
		}
	}
	return "", &parsererror.MissingSheetError{Sheet: sheet, Source: s.dir}
}

// Records reads the sheet's CSV file.
func (s *DirSource) Records(ctx context.Context, sheet string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.Path(sheet)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path) // #nosec G304 -- path is built from the configured workbook directory
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = s.delimiter
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing CSV file %s: %w", path, err)
	}
	return records, nil
}
