package cmd

import (
	"errors"

	"github.com/huangsam/hotelpulse/core"
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// renderCmd draws section charts with their labels.
var renderCmd = &cobra.Command{
	Use:   "render [section...]",
	Short: "Render section charts with totals and variation labels.",
	Long: `Aggregate each section, lay out its labels, apply saved positions
and write the chart to --chart-dir as SVG or PNG.

Examples:
  # Render every section
  hotelpulse render --all

  # Render two sections as PNG
  hotelpulse render web otas --image-format png --chart-dir out`,
	Args: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if len(args) == 0 && !all {
			return errors.New("name at least one section or pass --all")
		}
		return nil
	},
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if viper.GetBool("all") {
			args = nil
		}
		if err := core.ExecuteRender(rootCtx, cfg, positionStore(), args); err != nil {
			contract.LogFatal("Cannot render charts", err)
		}
	},
}
