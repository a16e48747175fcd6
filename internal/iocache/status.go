package iocache

import (
	"fmt"
	"io"

	"github.com/huangsam/hotelpulse/schema"
)

// PrintStoreStatus prints position store status information.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected && status.TotalEntries == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "Charts With Overrides: %d\n", status.TotalEntries)
	_, _ = fmt.Fprintf(w, "Total Overrides: %d\n", status.TotalOverrides)
	if status.TotalEntries > 0 {
		_, _ = fmt.Fprintf(w, "Last Entry: %s\n", status.LastEntryTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Entry: %s\n", status.OldestEntryTime.Format("2006-01-02 15:04:05"))
	}
	if status.Connected {
		_, _ = fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)
	}
}
