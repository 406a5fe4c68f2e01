// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "KITCHEN"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Sheets struct {
		Receipts    string `mapstructure:"receipts" yaml:"receipts"`
		People      string `mapstructure:"people" yaml:"people"`
		FromLast    string `mapstructure:"from_last" yaml:"from_last"`
		PeriodLabel string `mapstructure:"period_label" yaml:"period_label"`
	} `mapstructure:"sheets" yaml:"sheets"`

	Report struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"report" yaml:"report"`

	Google struct {
		SpreadsheetID   string `mapstructure:"spreadsheet_id" yaml:"spreadsheet_id"`
		CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`
	} `mapstructure:"google" yaml:"google"`
}

// DelimiterRune returns the CSV delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// OverrideLogLevel replaces the configured log level, e.g. from a command-line flag.
func (c *Config) OverrideLogLevel(level string) error {
	if _, err := logrus.ParseLevel(level); err != nil {
		return fmt.Errorf("invalid log level: %s", level)
	}
	c.Log.Level = level
	return nil
}

// Load reads the configuration. When configFile is empty, config.yaml is searched
// in $HOME/.kitchen-account, .kitchen-account and the working directory; a missing
// file is not an error. An explicit configFile must exist.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.kitchen-account")
		v.AddConfigPath(".kitchen-account")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case configFile != "":
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		case !errors.As(err, &notFound):
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. Standard Google credentials variable, not prefixed
	if err := v.BindEnv("google.credentials_file", EnvPrefix+"_GOOGLE_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind GOOGLE_APPLICATION_CREDENTIALS environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	// Sheet names of the kitchen account template
	v.SetDefault("sheets.receipts", "Receipts")
	v.SetDefault("sheets.people", "People")
	v.SetDefault("sheets.from_last", "From Last")
	v.SetDefault("sheets.period_label", "Period start")

	v.SetDefault("report.format", "text")

	v.SetDefault("google.spreadsheet_id", "")
	v.SetDefault("google.credentials_file", "")
}

var reportFormats = map[string]bool{"text": true, "txt": true, "csv": true, "json": true, "yaml": true, "yml": true}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	for key, name := range map[string]string{
		"sheets.receipts":     config.Sheets.Receipts,
		"sheets.people":       config.Sheets.People,
		"sheets.from_last":    config.Sheets.FromLast,
		"sheets.period_label": config.Sheets.PeriodLabel,
	} {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}

	if !reportFormats[strings.ToLower(config.Report.Format)] {
		return fmt.Errorf("invalid report format: %s (must be 'text', 'csv', 'json' or 'yaml')", config.Report.Format)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
