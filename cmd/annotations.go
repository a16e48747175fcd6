package cmd

import (
	"github.com/huangsam/hotelpulse/core"
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/spf13/cobra"
)

// annotationsCmd prints the labels of a section.
var annotationsCmd = &cobra.Command{
	Use:   "annotations <section>",
	Short: "Show the chart labels of a section after saved positions are applied.",
	Long: `Build the total, variation and triplet labels of a section, separate
crowded labels and apply positions saved by earlier drags.

Examples:
  hotelpulse annotations general
  hotelpulse annotations web --output csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteAnnotations(rootCtx, cfg, positionStore(), args[0]); err != nil {
			contract.LogFatal("Cannot build annotations", err)
		}
	},
}
