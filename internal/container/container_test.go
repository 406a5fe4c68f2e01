package container

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/kitchen-account/internal/config"
	"fjacquet/kitchen-account/internal/logging"
	"fjacquet/kitchen-account/internal/parsererror"
	"fjacquet/kitchen-account/internal/workbook"
	"fjacquet/kitchen-account/internal/workbook/gsheets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ";"
	cfg.Sheets.Receipts = "Bons"
	cfg.Sheets.People = "People"
	cfg.Sheets.FromLast = "From Last"
	cfg.Sheets.PeriodLabel = "Period start"
	cfg.Report.Format = "text"
	return cfg
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "valid config",
			config: testConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container, err := NewContainer(tt.config)

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, container)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, container)

			assert.NotNil(t, container.GetLogger())
			assert.Same(t, tt.config, container.GetConfig())
			assert.NotNil(t, container.GetEngine())
			assert.NotNil(t, container.GetReportGenerator())
			assert.Equal(t, workbook.SheetNames{
				Receipts:    "Bons",
				People:      "People",
				FromLast:    "From Last",
				PeriodLabel: "Period start",
			}, container.GetSheetNames())
			assert.NoError(t, container.Close())
		})
	}
}

func TestNewContainerWithLogger_NilLogger(t *testing.T) {
	_, err := NewContainerWithLogger(testConfig(), nil)
	assert.EqualError(t, err, "logger cannot be nil")
}

func TestOpenSource_Directory(t *testing.T) {
	c, err := NewContainerWithLogger(testConfig(), logging.NewMockLogger())
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Bons.csv"), []byte("name;room;amount\nAlice;1;12,50\n"), 0600))

	src, err := c.OpenSource(context.Background(), dir, "")
	require.NoError(t, err)
	require.IsType(t, &workbook.DirSource{}, src)
	assert.Equal(t, dir, src.Name())

	records, err := src.Records(context.Background(), "Bons")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "1", "12,50"}, records[1])
}

func TestOpenSource_Errors(t *testing.T) {
	c, err := NewContainerWithLogger(testConfig(), logging.NewMockLogger())
	require.NoError(t, err)

	_, err = c.OpenSource(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrNoWorkbook)

	_, err = c.OpenSource(context.Background(), filepath.Join(t.TempDir(), "missing"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workbook directory does not exist")
}

func TestOpenSource_Spreadsheet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"values": [["name", "room", "remainder"], ["Alice", 1, 3]]}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Google.SpreadsheetID = "from-config"
	c, err := NewContainerWithLogger(cfg, logging.NewMockLogger(), WithSheetsClientOptions(
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
		option.WithoutAuthentication(),
	))
	require.NoError(t, err)

	src, err := c.OpenSource(context.Background(), t.TempDir(), "")
	require.NoError(t, err)
	require.IsType(t, &gsheets.Source{}, src)
	assert.Equal(t, "from-config", src.Name())

	src, err = c.OpenSource(context.Background(), "", "from-flag")
	require.NoError(t, err)
	assert.Equal(t, "from-flag", src.Name())

	records, err := src.Records(context.Background(), "From Last")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "1", "3"}, records[1])
}

func TestNewLoader(t *testing.T) {
	c, err := NewContainerWithLogger(testConfig(), logging.NewMockLogger())
	require.NoError(t, err)

	loader := c.NewLoader(workbook.NewDirSource(t.TempDir(), ';'))
	require.NotNil(t, loader)

	_, err = loader.Load(context.Background())
	var missing *parsererror.MissingSheetError
	assert.ErrorAs(t, err, &missing)
}
