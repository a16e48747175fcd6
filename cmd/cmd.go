// Package cmd defines the command-line interface for hotelpulse.
package cmd

import (
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(totalsCmd)
	rootCmd.AddCommand(annotationsCmd)
	rootCmd.AddCommand(interpretCmd)
	rootCmd.AddCommand(dragCmd)
	rootCmd.AddCommand(kpiCmd)
	rootCmd.AddCommand(positionsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the kpi subcommands to the parent kpi command
	kpiCmd.AddCommand(kpiAdsCmd)
	kpiCmd.AddCommand(kpiFunnelCmd)

	// Add the positions subcommands to the parent positions command
	positionsCmd.AddCommand(positionsStatusCmd)
	positionsCmd.AddCommand(positionsListCmd)
	positionsCmd.AddCommand(positionsResetCmd)
	positionsCmd.AddCommand(positionsClearCmd)
	positionsCmd.AddCommand(positionsExportCmd)
	positionsCmd.AddCommand(positionsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet or markdown or html")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored variations in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Position store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("chart-dir", contract.DefaultChartDir, "Directory rendered charts are written to")
	rootCmd.PersistentFlags().String("image-format", string(schema.SVGImage), "Chart image format: svg or png")
	rootCmd.PersistentFlags().Int("chart-width", contract.DefaultChartWidth, "Chart width in pixels")
	rootCmd.PersistentFlags().Int("chart-height", contract.DefaultChartHeight, "Chart height in pixels")
	rootCmd.PersistentFlags().String("dataset", "", "Optional dataset file (.yaml, .json or .xlsx) replacing the built-in data")
	rootCmd.PersistentFlags().Float64("label-gap", contract.DefaultLabelGap, "Minimum relative gap between labels of one period (0 disables separation)")
	rootCmd.PersistentFlags().String("env", "development", "Runtime environment: development or production")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of renderCmd to Viper
	renderCmd.Flags().Bool("all", false, "Render every section")
	if err := viper.BindPFlags(renderCmd.Flags()); err != nil {
		contract.LogFatal("Error binding render flags", err)
	}

	// Bind all flags of totalsCmd to Viper
	totalsCmd.Flags().IntP("limit", "l", 0, "Keep only the top and bottom N series (0 = all)")
	if err := viper.BindPFlags(totalsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding totals flags", err)
	}

	// Bind all flags of dragCmd to Viper
	dragCmd.Flags().Int("index", -1, "Index of the label to move")
	dragCmd.Flags().String("to", "", "Target data position as x,y")
	dragCmd.Flags().StringArray("via", nil, "Intermediate data positions as x,y (repeatable)")
	if err := viper.BindPFlags(dragCmd.Flags()); err != nil {
		contract.LogFatal("Error binding drag flags", err)
	}

	// Bind all flags of kpiFunnelCmd to Viper
	kpiFunnelCmd.Flags().String("period", "", "Funnel period, e.g. W45 (defaults to the latest)")
	if err := viper.BindPFlags(kpiFunnelCmd.Flags()); err != nil {
		contract.LogFatal("Error binding funnel flags", err)
	}

	// Bind all flags of positionsMigrateCmd to Viper
	positionsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(positionsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding positions migrate flags", err)
	}
}
