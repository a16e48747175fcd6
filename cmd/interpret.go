package cmd

import (
	"github.com/huangsam/hotelpulse/core"
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/spf13/cobra"
)

// interpretCmd prints the marketing reading of a section.
var interpretCmd = &cobra.Command{
	Use:   "interpret <section>",
	Short: "Explain a section's numbers with its marketing model.",
	Long: `Generate the Markdown interpretation of a section: totals, cancellation
rate, net variation, trend and the recommendations of the channel's model.

Examples:
  hotelpulse interpret otas
  hotelpulse interpret general --output html --output-file general.html`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteInterpret(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot interpret section", err)
		}
	},
}
