package cmd

import (
	"github.com/huangsam/hotelpulse/core"
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// kpiCmd groups the marketing KPI reports.
var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "Show ad campaign and booking funnel KPIs",
	Long: `Report marketing KPIs that sit beside the production charts.

Subcommands:
  ads    - weekly spend, clicks, leads and revenue with CTR and ROAS
  funnel - stage counts and conversion of one week's booking funnel

Examples:
  hotelpulse kpi ads
  hotelpulse kpi funnel --period W45`,
}

// kpiAdsCmd prints the ad campaign KPIs.
var kpiAdsCmd = &cobra.Command{
	Use:     "ads",
	Short:   "Weekly CTR and ROAS of the ad campaign",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAdKPIs(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot compute ad KPIs", err)
		}
	},
}

// kpiFunnelCmd prints the booking funnel of one week.
var kpiFunnelCmd = &cobra.Command{
	Use:     "funnel",
	Short:   "Stage conversion of the booking funnel",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFunnel(rootCtx, cfg, viper.GetString("period")); err != nil {
			contract.LogFatal("Cannot compute funnel", err)
		}
	},
}
