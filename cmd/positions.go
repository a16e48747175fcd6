package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/hotelpulse/core"
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/internal/iocache"
	"github.com/huangsam/hotelpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store maintenance.
// Maintenance commands skip chart and output validation.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	cfg.DatasetPath = viper.GetString("dataset")
	return nil
}

// storeSetupWrapper opens the store after the minimal setup.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	if err := storeSetup(); err != nil {
		return err
	}
	if err := iocache.InitStores(cfg.StoreBackend, cfg.StoreDBConnect, contract.Logger()); err != nil {
		return fmt.Errorf("failed to initialize position store: %w", err)
	}
	return nil
}

// positionsCmd focused on saved label positions.
//
// Note: clear and migrate use storeSetup without opening the store, so they
// work on a fresh or broken database.
var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "Manage saved label positions",
	Long: `Manage the label positions saved by drag gestures.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (in-memory)

Subcommands:
  status  - Show store statistics and connection info
  list    - Print every saved position
  reset   - Drop the positions of one chart
  clear   - Remove every saved position
  export  - Write every saved position to a parquet file
  migrate - Run database migrations

Examples:
  hotelpulse positions list --output csv
  hotelpulse positions reset web`,
}

// positionsStatusCmd shows store status.
var positionsStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display store statistics and connection details",
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.Positions()
		if store == nil {
			contract.LogFatal("Failed to get store status", errors.New("position store is not initialized"))
		}
		status, err := store.Status()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iocache.PrintStoreStatus(os.Stdout, status)
	},
}

// positionsListCmd prints every override.
var positionsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Print every saved label position",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePositionsList(rootCtx, cfg, positionStore()); err != nil {
			contract.LogFatal("Failed to list positions", err)
		}
	},
}

// positionsResetCmd drops the overrides of one chart.
var positionsResetCmd = &cobra.Command{
	Use:   "reset <chart>",
	Short: "Restore the default label layout of one chart",
	Long: `Drop every saved position of a chart so the next render uses the
computed label layout again. The chart can be named by chart id or section id.

Examples:
  hotelpulse positions reset web
  hotelpulse positions reset chart-general`,
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		chartID, err := core.ExecutePositionsReset(rootCtx, cfg, positionStore(), args[0])
		if err != nil {
			contract.LogFatal("Failed to reset positions", err)
		}
		fmt.Printf("Positions of %s reset.\n", chartID)
	},
}

// positionsClearCmd clears the store.
var positionsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every saved label position",
	Long: `Delete every saved position from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the positions table

Examples:
  # Clear the SQLite store (default)
  hotelpulse positions clear

  # Clear a MySQL store (set connection string via env variable)
  HOTELPULSE_STORE_BACKEND=mysql HOTELPULSE_STORE_DB_CONNECT="..." hotelpulse positions clear`,
	PreRunE: func(_ *cobra.Command, _ []string) error { return storeSetup() },
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearStore(cfg.StoreBackend, contract.GetDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear positions", err)
		}
		fmt.Println("Positions cleared successfully.")
	},
}

// positionsExportCmd writes every override to parquet.
var positionsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved positions to a parquet file",
	Long: `Write one row per saved position (chart_id, annotation_index, x, y,
exported_at) to the file given by --output-file.

Examples:
  hotelpulse positions export --output-file overrides.parquet`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecutePositionsExport(os.Stdout, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export positions", err)
		}
	},
}

// positionsMigrateCmd runs schema migrations.
var positionsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run position store migrations",
	Long: `Apply or roll back the position store schema.

Examples:
  # Migrate to the latest version
  hotelpulse positions migrate

  # Roll back every migration
  hotelpulse positions migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error { return storeSetup() },
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.MigrateStore(os.Stdout, cfg.StoreBackend, cfg.StoreDBConnect, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Failed to migrate position store", err)
		}
	},
}
