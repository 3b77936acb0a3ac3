package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/pulseforge/pulseforge/internal/analytics"
)

// RenderPie draws the active-user ring as a segmented bar. The filled share
// is Dash over Circumference, as on the SVG ring.
func RenderPie(g analytics.PieGeometry, width int) string {
	width = max(4, width)
	share := 0.0
	if g.Circumference > 0 {
		share = g.Dash / g.Circumference
	}
	filled := int(math.Round(share * float64(width)))

	bar := StyleGreen.Render(strings.Repeat(filledBlock, filled)) + StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
	pct := int(math.Round(share * 100))
	return fmt.Sprintf("%s %s\n%s  %s",
		bar, Bold(fmt.Sprintf("%d%%", pct)),
		StyleGreen.Render(fmt.Sprintf("● Active %d", g.Active)),
		StyleDim.Render(fmt.Sprintf("○ Quiet %d", g.Quiet)),
	)
}

// RenderLine plots the line chart points on a rows-high character grid.
// Each point gets a fixed-width column labelled underneath.
func RenderLine(g analytics.LineGeometry, rows int) string {
	if len(g.Points) == 0 {
		return Dim("No organizations yet.")
	}
	rows = max(2, rows)
	const col = 10
	plotH := g.Height - 2*g.Padding

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", col*len(g.Points)))
	}
	for i, p := range g.Points {
		level := 0.0
		if plotH > 0 {
			level = (g.Height - g.Padding - p.Y) / plotH
		}
		r := rows - 1 - int(math.Round(level*float64(rows-1)))
		grid[r][i*col+col/2] = '●'
	}

	axis := len(fmt.Sprintf("%d", g.MaxY))
	var b strings.Builder
	for r, line := range grid {
		label := strings.Repeat(" ", axis)
		switch r {
		case 0:
			label = fmt.Sprintf("%*d", axis, g.MaxY)
		case rows - 1:
			label = fmt.Sprintf("%*d", axis, 0)
		}
		b.WriteString(Dim(label+" │") + StyleGreen.Render(strings.TrimRight(string(line), " ")) + "\n")
	}
	b.WriteString(Dim(strings.Repeat(" ", axis)+" └"+strings.Repeat("─", col*len(g.Points))) + "\n")

	labels := make([]string, 0, len(g.Points))
	for _, p := range g.Points {
		name := Truncate(p.Label, col-1)
		labels = append(labels, fmt.Sprintf("%-*s", col, name))
	}
	b.WriteString(strings.Repeat(" ", axis+2) + Dim(strings.TrimRight(strings.Join(labels, ""), " ")) + "\n")
	return b.String()
}
