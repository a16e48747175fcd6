package cmd

import (
	"github.com/huangsam/hotelpulse/core"
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/spf13/cobra"
)

// sectionsCmd lists the dashboard sections.
var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the dashboard sections.",
	Long: `List every section of the dashboard with its chart id, periods and series.

Sections come from the built-in dataset unless --dataset points to a
YAML, JSON or XLSX file.

Examples:
  # Show the built-in sections
  hotelpulse sections

  # Inspect a custom dataset as JSON
  hotelpulse sections --dataset weekly.yaml --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSections(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list sections", err)
		}
	},
}
