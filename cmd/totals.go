package cmd

import (
	"github.com/huangsam/hotelpulse/core"
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// totalsCmd aggregates one section.
var totalsCmd = &cobra.Command{
	Use:   "totals <section>",
	Short: "Show per-period and per-series totals of a section.",
	Long: `Aggregate a section into per-period totals, per-series totals ranked
by size and the variation between the first and last period.

Examples:
  # Channel ranking of the general section
  hotelpulse totals general

  # Top and bottom 3 countries
  hotelpulse totals countries --limit 3

  # Export the ranking to parquet
  hotelpulse totals general --output parquet --output-file general.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteTotals(rootCtx, cfg, positionStore(), args[0], viper.GetInt("limit")); err != nil {
			contract.LogFatal("Cannot aggregate section", err)
		}
	},
}
