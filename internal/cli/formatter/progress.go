package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pulseforge/pulseforge/internal/analytics"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a whole-number percentage as [████░░░░]  45%.
// Green from 66, yellow from 33, red below.
func RenderProgress(pct int, width int) string {
	pct = min(100, max(0, pct))
	width = max(2, width)

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct < 33:
		style = StyleRed
	case pct < 66:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}

// RenderDistribution renders one labelled bar per status.
func RenderDistribution(bars []analytics.Distribution, width int) string {
	labelWidth := 0
	for _, d := range bars {
		labelWidth = max(labelWidth, lipgloss.Width(d.Label))
	}
	var b strings.Builder
	for _, d := range bars {
		label := d.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(d.Label))
		fmt.Fprintf(&b, "%s  %s  %s\n", StyleFg.Render(label), RenderProgress(d.Percent, width), Dim(fmt.Sprintf("(%d)", d.Value)))
	}
	return b.String()
}
