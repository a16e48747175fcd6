package outwriter

import (
	"os"

	"github.com/fatih/color"
	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/schema"
	"golang.org/x/term"
)

var (
	upColor   = color.New(color.FgGreen)
	downColor = color.New(color.FgRed, color.Bold)
)

// getMaxTextWidth calculates the maximum width for free-text columns in table
// output based on terminal width and the space the fixed columns take.
func getMaxTextWidth(cfg *contract.Config, reserved int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	available := termWidth - reserved
	if available < 12 {
		return 12
	}
	if available > 60 {
		return 60
	}
	return available
}

// colorDelta paints a signed change green or red in table output when colors
// are enabled.
func colorDelta(cfg *contract.Config, value float64, text string) string {
	if !cfg.UseColors || (cfg.Output != "" && cfg.Output != schema.TextOut) {
		return text
	}
	if value < 0 {
		return downColor.Sprint(text)
	}
	return upColor.Sprint(text)
}
