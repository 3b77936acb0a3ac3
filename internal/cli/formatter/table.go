package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// Table is an aligned text table. Widths are measured on visible text, so
// cells may carry ANSI styling.
type Table struct {
	Headers []string
	Rows    [][]string
	// Empty is printed under the header when there are no rows.
	Empty string
	// Right lists column indexes aligned to the right.
	Right map[int]bool
}

// RenderTable renders headers and rows with no empty-state text.
func RenderTable(headers []string, rows [][]string) string {
	return Table{Headers: headers, Rows: rows}.Render()
}

func (t Table) Render() string {
	cols := len(t.Headers)
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	headers := make([]string, cols)
	rules := make([]string, cols)
	for i, h := range t.Headers {
		headers[i] = StyleHeader.Render(h)
		rules[i] = StyleDim.Render(strings.Repeat("─", widths[i]))
	}
	t.writeRow(&b, headers, widths)
	t.writeRow(&b, rules, widths)

	if len(t.Rows) == 0 && t.Empty != "" {
		b.WriteString(Dim(t.Empty) + "\n")
	}
	for _, row := range t.Rows {
		cells := make([]string, cols)
		copy(cells, row)
		t.writeRow(&b, cells, widths)
	}
	return b.String()
}

func (t Table) writeRow(b *strings.Builder, cells []string, widths []int) {
	last := len(cells) - 1
	for i, cell := range cells {
		pad := strings.Repeat(" ", max(0, widths[i]-lipgloss.Width(cell)))
		switch {
		case t.Right[i]:
			b.WriteString(pad + cell)
		case i < last:
			b.WriteString(cell + pad)
		default:
			b.WriteString(cell)
		}
		if i < last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
}
