package iocache

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/hotelpulse/internal/parquet"
)

// ExecutePositionsExport writes every stored override to a Parquet file.
func ExecutePositionsExport(w io.Writer, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.Positions()
	if store == nil {
		return errors.New("position store is not initialized")
	}

	status, err := store.Status()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.TotalOverrides == 0 {
		return errors.New("no position overrides found to export")
	}

	rows, err := store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to read overrides: %w", err)
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	records := parquet.ConvertOverrideRecords(rows, time.Now())
	if err := parquet.WriteOverridesParquet(records, outputFile); err != nil {
		return fmt.Errorf("failed to write overrides: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d overrides across %d charts to: %s\n", len(records), status.TotalEntries, outputFile)
	return nil
}
