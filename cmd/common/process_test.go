package common_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/kitchen-account/cmd/common"
	"fjacquet/kitchen-account/internal/allocation"
	"fjacquet/kitchen-account/internal/config"
	"fjacquet/kitchen-account/internal/container"
	"fjacquet/kitchen-account/internal/dateutils"
	"fjacquet/kitchen-account/internal/logging"
	"fjacquet/kitchen-account/internal/models"
	"fjacquet/kitchen-account/internal/settlement"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const workbookDir = "../../testdata/workbook"

// MockSource implements workbook.Source for testing
type MockSource struct {
	mock.Mock
}

func (m *MockSource) Name() string {
	return "mock"
}

func (m *MockSource) Records(ctx context.Context, sheet string) ([][]string, error) {
	args := m.Called(ctx, sheet)
	records, _ := args.Get(0).([][]string)
	return records, args.Error(1)
}

func newContainer(t *testing.T) (*container.Container, *logging.MockLogger) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ","
	cfg.Sheets.Receipts = "Receipts"
	cfg.Sheets.People = "People"
	cfg.Sheets.FromLast = "From Last"
	cfg.Sheets.PeriodLabel = "Period start"
	cfg.Report.Format = "text"

	logger := logging.NewMockLogger()
	c, err := container.NewContainerWithLogger(cfg, logger)
	require.NoError(t, err)
	return c, logger
}

func TestLoadAndSettle(t *testing.T) {
	c, logger := newContainer(t)

	ledger, err := common.LoadLedger(context.Background(), c, common.Options{Input: workbookDir})
	require.NoError(t, err)

	statement, err := common.Settle(c, ledger)
	require.NoError(t, err)
	require.Len(t, statement.Lines, 2)

	alice, bob := statement.Lines[0], statement.Lines[1]
	assert.Equal(t, "Alice", alice.Person.Name)
	assert.True(t, alice.PerPerson.Equal(decimal.NewFromInt(30)))
	assert.True(t, alice.ToPay.Equal(decimal.NewFromInt(-5)))
	assert.True(t, bob.PerPerson.Equal(decimal.NewFromInt(10)))
	assert.True(t, bob.ToPay.Equal(decimal.NewFromInt(2)))
	assert.True(t, statement.Total.Equal(decimal.NewFromInt(40)))

	require.True(t, logger.HasEntry("INFO", "Settled kitchen account"))
	var balance interface{}
	for _, entry := range logger.GetEntriesByLevel("INFO") {
		for _, field := range entry.Fields {
			if entry.Message == "Settled kitchen account" && field.Key == logging.FieldBalance {
				balance = field.Value
			}
		}
	}
	assert.Equal(t, "-3.00", balance)
}

func TestWriteReport_Stdout(t *testing.T) {
	c, _ := newContainer(t)
	ledger, err := common.LoadLedger(context.Background(), c, common.Options{Input: workbookDir})
	require.NoError(t, err)
	statement, err := common.Settle(c, ledger)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, common.WriteReport(c, statement, common.Options{}, &out))

	assert.True(t, strings.HasSuffix(out.String(),
		"In total spent = 40.00\n"+
			"Name   Room  From last  Bought for  Per person  To pay  \n"+
			"Alice  1     -5.00      30.00       30.00       -5.00   \n"+
			"Bob    2     2.00       10.00       10.00       2.00    \n"))
}

func TestWriteReport_File(t *testing.T) {
	c, _ := newContainer(t)
	ledger, err := common.LoadLedger(context.Background(), c, common.Options{Input: workbookDir})
	require.NoError(t, err)
	statement, err := common.Settle(c, ledger)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report", "account.csv")
	var out bytes.Buffer
	require.NoError(t, common.WriteReport(c, statement, common.Options{Output: path, Format: "csv"}, &out))
	assert.Empty(t, out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name,room,from_last,bought_for,per_person,to_pay\n"+
		"Alice,1,-5.00,30.00,30.00,-5.00\n"+
		"Bob,2,2.00,10.00,10.00,2.00\n", string(data))
}

func TestWriteReport_BadFormat(t *testing.T) {
	c, _ := newContainer(t)
	err := common.WriteReport(c, settlement.Statement{}, common.Options{Format: "pdf"}, &bytes.Buffer{})
	assert.EqualError(t, err, "unsupported report format: pdf")
}

func TestLoadFrom_MockSource(t *testing.T) {
	c, _ := newContainer(t)

	src := &MockSource{}
	src.On("Records", mock.Anything, "Receipts").Return([][]string{
		{"name", "room", "amount"},
		{"Alice", "1", "8"},
		{"Carol", "3", "4"},
	}, nil)
	src.On("Records", mock.Anything, "People").Return([][]string{
		{"name", "room", "start day", "start month", "start year", "end day", "end month", "end year"},
		{"Period start", "", "1", "1", "2016", "3", "1", "2016"},
		{"Alice", "1", "1", "1", "2016", "3", "1", "2016"},
	}, nil)
	src.On("Records", mock.Anything, "From Last").Return([][]string{
		{"name", "room", "remainder"},
	}, nil)

	ledger, err := common.LoadFrom(context.Background(), c, src)
	require.NoError(t, err)
	src.AssertExpectations(t)

	statement, err := common.Settle(c, ledger)
	require.NoError(t, err)
	require.Len(t, statement.Lines, 1)
	assert.True(t, statement.Lines[0].PerPerson.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, []models.Person{models.NewPerson("Carol", 3)}, statement.Unallocated)
}

func TestSettle_WarnsAboutUnallocated(t *testing.T) {
	c, logger := newContainer(t)

	ledger := models.NewLedger()
	ledger.Period = models.NewInterval(dateutils.MustDate(2016, 1, 1), dateutils.MustDate(2016, 1, 2))
	ledger.Residency.Insert(models.NewPerson("Alice", 1), ledger.Period)
	ledger.Remainders.Add(models.NewPerson("Zed", 9), decimal.NewFromInt(3))

	_, err := common.Settle(c, ledger)
	require.NoError(t, err)
	assert.True(t, logger.HasEntry("WARN", "Spending or remainders of persons without residency are not settled"))
}

func TestSettle_UnoccupiedDay(t *testing.T) {
	c, _ := newContainer(t)

	ledger := models.NewLedger()
	ledger.Period = models.NewInterval(dateutils.MustDate(2016, 1, 1), dateutils.MustDate(2016, 1, 5))
	ledger.Residency.Insert(models.NewPerson("Alice", 1),
		models.NewInterval(dateutils.MustDate(2016, 1, 1), dateutils.MustDate(2016, 1, 2)))
	ledger.AddReceipt(models.Receipt{Person: models.NewPerson("Alice", 1), Amount: decimal.NewFromInt(10)})

	_, err := common.Settle(c, ledger)
	assert.ErrorIs(t, err, allocation.ErrUnoccupiedDay)
}

func TestWriteStats(t *testing.T) {
	c, _ := newContainer(t)
	ledger, err := common.LoadLedger(context.Background(), c, common.Options{Input: workbookDir})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, common.WriteStats(&out, ledger, "weekday"))
	assert.Equal(t, "Spending per weekday\n"+
		"Monday    10.00\n"+
		"Saturday  30.00\n"+
		"Total     40.00\n", out.String())

	assert.Error(t, common.WriteStats(&out, ledger, "fortnight"))
}

func TestProblems(t *testing.T) {
	ledger := models.NewLedger()
	ledger.Period = models.NewInterval(dateutils.MustDate(2016, 1, 5), dateutils.MustDate(2016, 1, 5))
	ledger.Skipped = []string{"People row 4: invalid residency"}
	ledger.Duplicates = []models.Person{models.NewPerson("Alice", 1)}
	ledger.AddReceipt(models.Receipt{Person: models.NewPerson("Zed", 9), Amount: decimal.NewFromInt(1)})

	assert.Equal(t, []string{
		"period 2016-01-05..2016-01-05 is empty: end must be after start",
		"skipped residency: People row 4: invalid residency",
		"duplicate residency ignored for Alice (room 1)",
		"no residency for Zed (room 9): spending and remainder are not settled",
	}, common.Problems(ledger))
}
