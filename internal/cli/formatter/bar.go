package formatter

import (
	"math"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBar draws value as a share of max, width cells wide. A zero max
// renders an empty bar.
func RenderBar(value, max float64, width int) string {
	if width < 1 {
		width = 1
	}
	filled := 0
	if max > 0 && value > 0 {
		filled = int(math.Round(value / max * float64(width)))
	}
	if filled > width {
		filled = width
	}
	return StyleBlue.Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
}
