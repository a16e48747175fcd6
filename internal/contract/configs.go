package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/hotelpulse/schema"
)

// Default values for configuration.
const (
	DefaultPrecision   = 1
	DefaultChartWidth  = 1024
	DefaultChartHeight = 560
	DefaultLabelGap    = 0.07
	DefaultChartDir    = "charts"
	MaxChartDimension  = 8192
	MinChartDimension  = 200
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the dashboard.
// This struct remains the "final, validated" config.
type Config struct {
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	ChartDir    string
	ImageFormat schema.ImageFormat
	ChartWidth  int
	ChartHeight int

	DatasetPath string  // Optional external dataset file
	LabelGap    float64 // Relative label separation (0 = disabled)

	Env      string
	LogLevel string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Output         string  `mapstructure:"output"`
	OutputFile     string  `mapstructure:"output-file"`
	Precision      int     `mapstructure:"precision"`
	Width          int     `mapstructure:"width"`
	Color          string  `mapstructure:"color"`
	StoreBackend   string  `mapstructure:"store-backend"`
	StoreDBConnect string  `mapstructure:"store-db-connect"`
	ChartDir       string  `mapstructure:"chart-dir"`
	ImageFormat    string  `mapstructure:"image-format"`
	ChartWidth     int     `mapstructure:"chart-width"`
	ChartHeight    int     `mapstructure:"chart-height"`
	Dataset        string  `mapstructure:"dataset"`
	LabelGap       float64 `mapstructure:"label-gap"`
	Env            string  `mapstructure:"env"`
	LogLevel       string  `mapstructure:"log-level"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateOutputInputs(cfg, input); err != nil {
		return err
	}
	if err := validateStoreConfig(cfg, input); err != nil {
		return err
	}
	if err := validateChartInputs(cfg, input); err != nil {
		return err
	}
	cfg.Env = strings.ToLower(strings.TrimSpace(input.Env))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateOutputInputs processes the output related fields.
func validateOutputInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet, markdown, html", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	if cfg.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", cfg.Width)
	}
	return nil
}

// validateStoreConfig validates the position store backend configuration.
func validateStoreConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// validateChartInputs validates rendering and label layout settings.
func validateChartInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.ChartDir = strings.TrimSpace(input.ChartDir)
	if cfg.ChartDir == "" {
		cfg.ChartDir = DefaultChartDir
	}

	cfg.ImageFormat = schema.ImageFormat(strings.ToLower(input.ImageFormat))
	if _, ok := schema.ValidImageFormats[cfg.ImageFormat]; !ok {
		return fmt.Errorf("invalid image format '%s'. must be svg, png", input.ImageFormat)
	}

	for _, dim := range []struct {
		name  string
		value int
	}{{"chart-width", input.ChartWidth}, {"chart-height", input.ChartHeight}} {
		if dim.value < MinChartDimension || dim.value > MaxChartDimension {
			return fmt.Errorf("%s must be between %d and %d (received %d)", dim.name, MinChartDimension, MaxChartDimension, dim.value)
		}
	}
	cfg.ChartWidth = input.ChartWidth
	cfg.ChartHeight = input.ChartHeight

	if input.LabelGap < 0 || input.LabelGap > 1 {
		return fmt.Errorf("label-gap must be between 0 and 1 (received %g)", input.LabelGap)
	}
	cfg.LabelGap = input.LabelGap
	cfg.DatasetPath = strings.TrimSpace(input.Dataset)
	return nil
}
