package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/kitchen-account/internal/dateutils"
	"fjacquet/kitchen-account/internal/logging"
	"fjacquet/kitchen-account/internal/models"
	"fjacquet/kitchen-account/internal/settlement"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleStatement() settlement.Statement {
	return settlement.Statement{
		Period: models.NewInterval(dateutils.MustDate(2016, 1, 1), dateutils.MustDate(2016, 1, 5)),
		Total:  d("40"),
		Lines: []settlement.Line{
			{Person: models.NewPerson("Alice", 1), FromLast: d("-5"), BoughtFor: d("40"), PerPerson: d("30"), ToPay: d("-15")},
			{Person: models.NewPerson("Bob", 12), FromLast: d("0"), BoughtFor: d("0"), PerPerson: d("10"), ToPay: d("10")},
		},
		Unallocated: []models.Person{models.NewPerson("Zed", 9)},
	}
}

func TestWriteText(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteText(&b, sampleStatement()))

	want := Preamble +
		"In total spent = 40.00\n" +
		"Name   Room  From last  Bought for  Per person  To pay  \n" +
		"Alice  1     -5.00      40.00       30.00       -15.00  \n" +
		"Bob    12    0.00       0.00        10.00       10.00   \n"
	assert.Equal(t, want, b.String())
}

func TestWriteText_WidensColumns(t *testing.T) {
	statement := settlement.Statement{
		Total: d("1234567.5"),
		Lines: []settlement.Line{
			{Person: models.NewPerson("Bartholomew", 1), PerPerson: d("1234567.5"), ToPay: d("1234567.5")},
		},
	}

	var b strings.Builder
	require.NoError(t, WriteText(&b, statement))

	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	header := lines[len(lines)-2]
	row := lines[len(lines)-1]

	// Name is 11 runes, so its column is 13 wide; Per person is 10 runes, so 12.
	assert.True(t, strings.HasPrefix(header, "Name         Room"))
	assert.True(t, strings.HasPrefix(row, "Bartholomew  1     "))
	assert.Contains(t, row, "1234567.50  1234567.50  ")
	assert.Contains(t, b.String(), "In total spent = 1234567.50\n")
}

func TestWriteText_NoLines(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteText(&b, settlement.Statement{}))
	assert.True(t, strings.HasSuffix(b.String(), "In total spent = 0.00\nName  Room  From last  Bought for  Per person  To pay  \n"))
}

func TestGenerator_CSV(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger(), ';')

	out, err := g.Generate(sampleStatement(), FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name;room;from_last;bought_for;per_person;to_pay", lines[0])
	assert.Equal(t, "Alice;1;-5.00;40.00;30.00;-15.00", lines[1])
	assert.Equal(t, "Bob;12;0.00;0.00;10.00;10.00", lines[2])
}

func TestGenerator_JSON(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger(), 0)

	out, err := g.Generate(sampleStatement(), FormatJSON)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "2016-01-01", doc.PeriodStart)
	assert.Equal(t, "2016-01-05", doc.PeriodEnd)
	assert.Equal(t, "40.00", doc.TotalSpent)
	require.Len(t, doc.Lines, 2)
	assert.Equal(t, Row{Name: "Alice", Room: 1, FromLast: "-5.00", BoughtFor: "40.00", PerPerson: "30.00", ToPay: "-15.00"}, doc.Lines[0])
	assert.Equal(t, []models.Person{models.NewPerson("Zed", 9)}, doc.Unallocated)
}

func TestGenerator_YAML(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger(), 0)

	out, err := g.Generate(sampleStatement(), FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(out), "total_spent: \"40.00\"")

	var doc Document
	require.NoError(t, yaml.Unmarshal(out, &doc))
	require.Len(t, doc.Lines, 2)
	assert.Equal(t, "Bob", doc.Lines[1].Name)
	assert.Equal(t, "10.00", doc.Lines[1].ToPay)
}

func TestGenerator_UnsupportedFormat(t *testing.T) {
	g := NewGenerator(nil, 0)
	_, err := g.Generate(sampleStatement(), Format("xml"))
	assert.EqualError(t, err, "unsupported report format: xml")
}

func TestGenerator_WriteFile(t *testing.T) {
	logger := logging.NewMockLogger()
	g := NewGenerator(logger, 0)
	path := filepath.Join(t.TempDir(), "out", "account.txt")

	require.NoError(t, g.WriteFile(sampleStatement(), FormatText, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), Preamble))
	assert.True(t, logger.HasEntry("INFO", "Wrote report"))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"TEXT", FormatText, false},
		{"csv", FormatCSV, false},
		{" json ", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"xlsx", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
