package root_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/kitchen-account/cmd/root"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "kitchen-account", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "kitchen fund")
	assert.Contains(t, root.Cmd.Long, "Receipts, People and From Last")
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
	assert.True(t, root.Cmd.SilenceUsage)
}

func TestInit_Flags(t *testing.T) {
	root.Init()
	root.Init()

	flags := root.Cmd.PersistentFlags()
	for name, shorthand := range map[string]string{
		"input":       "i",
		"output":      "o",
		"format":      "f",
		"spreadsheet": "",
		"config":      "",
		"log-level":   "",
	} {
		flag := flags.Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, shorthand, flag.Shorthand, name)
	}
}

func TestGetContainer_NotInitialized(t *testing.T) {
	original := root.AppContainer
	t.Cleanup(func() { root.AppContainer = original })
	root.AppContainer = nil

	_, err := root.GetContainer()
	assert.EqualError(t, err, "container not initialized")
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("KITCHEN_LOG_LEVEL", "")
	t.Setenv("KITCHEN_REPORT_FORMAT", "")
	t.Setenv("KITCHEN_SHEETS_RECEIPTS", "")

	originalFlags, originalConfig, originalContainer := root.SharedFlags, root.AppConfig, root.AppContainer
	t.Cleanup(func() {
		root.SharedFlags = originalFlags
		root.AppConfig = originalConfig
		root.AppContainer = originalContainer
	})
	return dir
}

func TestPersistentPreRun_BuildsContainer(t *testing.T) {
	dir := isolate(t)
	configFile := filepath.Join(dir, "kitchen.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("sheets:\n  receipts: Bons\n"), 0600))

	root.SharedFlags = root.CommonFlags{ConfigFile: configFile, LogLevel: "debug"}
	require.NoError(t, root.Cmd.PersistentPreRunE(root.Cmd, nil))

	require.NotNil(t, root.AppConfig)
	assert.Equal(t, "debug", root.AppConfig.Log.Level)

	c, err := root.GetContainer()
	require.NoError(t, err)
	assert.Equal(t, "Bons", c.GetSheetNames().Receipts)

	assert.NotPanics(t, func() { root.Cmd.PersistentPostRun(root.Cmd, nil) })
}

func TestPersistentPreRun_InvalidConfig(t *testing.T) {
	isolate(t)
	root.SharedFlags = root.CommonFlags{LogLevel: "loud"}

	err := root.Cmd.PersistentPreRunE(root.Cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level: loud")
}

func TestPersistentPreRun_MissingConfigFile(t *testing.T) {
	dir := isolate(t)
	root.SharedFlags = root.CommonFlags{ConfigFile: filepath.Join(dir, "nope.yaml")}

	err := root.Cmd.PersistentPreRunE(root.Cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
