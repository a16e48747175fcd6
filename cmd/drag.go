package cmd

import (
	"errors"
	"fmt"

	"github.com/huangsam/hotelpulse/core"
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dragCmd moves one chart label and saves where it lands.
var dragCmd = &cobra.Command{
	Use:   "drag <chart>",
	Short: "Move a chart label and remember its position.",
	Long: `Replay a drag gesture on a rendered chart: press on the label, move
through each --via position, end at --to and release. The final position is
saved and applied on every later render until it is reset.

Positions are data coordinates: x is the period index (0 for the first
period) and y is the value axis.

Examples:
  # Lift the W45 total label of the general chart
  hotelpulse drag general --index 3 --to 3,250000

  # Drag through two intermediate positions
  hotelpulse drag chart-web --index 1 --via 1,90000 --via 1.2,95000 --to 1.4,99000`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		index, to, via, err := parseDragFlags(cmd)
		if err != nil {
			contract.LogFatal("Invalid drag flags", err)
		}
		if err := core.ExecuteDrag(rootCtx, cfg, positionStore(), args[0], index, to, via); err != nil {
			contract.LogFatal("Cannot drag label", err)
		}
	},
}

// parseDragFlags reads --index, --to and --via. Points keep their comma, so
// --via is read as a string array rather than through viper.
func parseDragFlags(cmd *cobra.Command) (int, schema.Position, []schema.Position, error) {
	index := viper.GetInt("index")
	if index < 0 {
		return 0, schema.Position{}, nil, errors.New("--index is required and must be zero or greater")
	}
	toStr := viper.GetString("to")
	if toStr == "" {
		return 0, schema.Position{}, nil, errors.New("--to is required")
	}
	x, y, err := contract.ParsePoint(toStr)
	if err != nil {
		return 0, schema.Position{}, nil, fmt.Errorf("invalid --to: %w", err)
	}

	viaStr, err := cmd.Flags().GetStringArray("via")
	if err != nil {
		return 0, schema.Position{}, nil, err
	}
	var via []schema.Position
	for _, s := range viaStr {
		vx, vy, err := contract.ParsePoint(s)
		if err != nil {
			return 0, schema.Position{}, nil, fmt.Errorf("invalid --via: %w", err)
		}
		via = append(via, schema.Position{X: vx, Y: vy})
	}
	return index, schema.Position{X: x, Y: y}, via, nil
}
